package screen

import "netmonitor/internal/domain"

const (
	StatusLocked   = "Permission Required"
	StatusLive     = "Live Tracking"
	StatusHardware = "Hardware Active"

	NoticeCopied = "Data copied to clipboard"
)

// View is what a client renders. A locked view never carries a sample.
type View struct {
	Mode          string         `json:"mode"`
	Status        string         `json:"status"`
	Refreshing    bool           `json:"refreshing"`
	HardwareMode  bool           `json:"hardwareMode"`
	Sample        *domain.Sample `json:"sample,omitempty"`
	SignalPercent int            `json:"signalPercent"`
	Notice        string         `json:"notice,omitempty"`
	Seq           uint64         `json:"seq"`
}

// View projects the state onto what may be shown.
func (s State) View() View {
	if s.Mode != ModeActive {
		return View{Mode: s.Mode.String(), Status: StatusLocked}
	}

	status := StatusLive
	if s.HardwareMode {
		status = StatusHardware
	}

	sample := s.Current
	return View{
		Mode:          s.Mode.String(),
		Status:        status,
		Refreshing:    s.Refreshing,
		HardwareMode:  s.HardwareMode,
		Sample:        &sample,
		SignalPercent: sample.SignalPercent(),
		Notice:        s.Notice,
		Seq:           s.Seq,
	}
}

// Locked reports whether the view is still behind the permission gate.
func (v View) Locked() bool {
	return v.Mode != ModeActive.String()
}
