package screen

import (
	"time"

	"netmonitor/internal/domain"
)

// Mode is the permission gate of the screen.
type Mode int

const (
	ModeLocked Mode = iota
	ModeActive
)

func (m Mode) String() string {
	switch m {
	case ModeActive:
		return "active"
	default:
		return "locked"
	}
}

// Trigger names what asked for a refresh.
type Trigger string

const (
	TriggerTimer    Trigger = "timer"
	TriggerManual   Trigger = "manual"
	TriggerPull     Trigger = "pull"
	TriggerExternal Trigger = "external"
)

// State is the complete screen state. It is a plain value: the transition
// functions below take a State and return the next one.
type State struct {
	Mode         Mode
	Current      domain.Sample
	Refreshing   bool
	HardwareMode bool
	Notice       string
	NoticeSeq    uint64
	Seq          uint64
}

// NewState returns a locked screen holding the sample captured at mount.
func NewState(initial domain.Sample) State {
	return State{Mode: ModeLocked, Current: initial}
}

// Grant unlocks the screen. There is no way back to ModeLocked.
func Grant(s State) State {
	s.Mode = ModeActive
	return s
}

// BeginRefresh marks a refresh as in flight. started is false when the screen
// is locked or a refresh is already running.
func BeginRefresh(s State) (next State, started bool) {
	if s.Mode != ModeActive || s.Refreshing {
		return s, false
	}
	s.Refreshing = true
	return s, true
}

// NeedsSample reports whether a completing refresh should synthesise data.
// Once hardware mode is engaged refreshes only animate.
func (s State) NeedsSample() bool {
	return s.Mode == ModeActive && !s.HardwareMode
}

// CompleteRefresh ends the in-flight refresh, replacing the current sample
// with next unless hardware mode took over in the meantime.
func CompleteRefresh(s State, next *domain.Sample) State {
	s.Refreshing = false
	if next != nil && s.NeedsSample() {
		s = replace(s, *next)
	}
	return s
}

// ApplyExternal makes an externally supplied sample current and engages
// hardware mode for good. The payload is trusted as-is apart from the receipt
// timestamp and origin tag.
func ApplyExternal(s State, sample domain.Sample, receivedAt time.Time) (next State, applied bool) {
	if s.Mode != ModeActive {
		return s, false
	}
	sample.CapturedAt = receivedAt
	sample.Origin = domain.OriginHardware
	s.HardwareMode = true
	return replace(s, sample), true
}

// ShowNotice displays a transient notice and returns the id to clear it with.
func ShowNotice(s State, text string) (State, uint64) {
	s.NoticeSeq++
	s.Notice = text
	return s, s.NoticeSeq
}

// ClearNotice hides the notice if it is still the one identified by id.
func ClearNotice(s State, id uint64) State {
	if s.NoticeSeq == id {
		s.Notice = ""
	}
	return s
}

func replace(s State, next domain.Sample) State {
	if next.CapturedAt.Before(s.Current.CapturedAt) {
		next.CapturedAt = s.Current.CapturedAt
	}
	s.Current = next
	s.Seq++
	return s
}
