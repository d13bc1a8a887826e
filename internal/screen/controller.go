package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"netmonitor/internal/clipboard"
	"netmonitor/internal/domain"
	"netmonitor/internal/logging"
)

const (
	DefaultRefreshInterval = 5 * time.Second
	DefaultRefreshDelay    = 600 * time.Millisecond
	DefaultNoticeDuration  = 2 * time.Second

	subscriberBuffer = 16
)

var errAlreadyRunning = errors.New("screen controller already running")

// Recorder observes screen activity, typically for metrics.
type Recorder interface {
	RefreshStarted(trigger Trigger)
	SampleReplaced(sample domain.Sample)
	ExternalDropped()
	Exported(err error)
}

// Config describes refresh timing.
type Config struct {
	RefreshInterval time.Duration
	RefreshDelay    time.Duration
	NoticeDuration  time.Duration
}

type Option func(*Controller)

func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithClipboard(cb domain.Clipboard) Option {
	return func(c *Controller) { c.clipboard = cb }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithExternal feeds samples from a hardware bridge into the screen. Closing
// the channel detaches the bridge.
func WithExternal(ch <-chan domain.Sample) Option {
	return func(c *Controller) { c.external = ch }
}

func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

type result struct {
	view View
	err  error
}

type command struct {
	fn    func() (View, error)
	reply chan result
}

// Controller owns the screen state. Every transition runs on the goroutine
// executing Run; the exported methods post commands to it and wait.
type Controller struct {
	source    domain.SampleSource
	cfg       Config
	logger    *logging.Logger
	clipboard domain.Clipboard
	recorder  Recorder
	external  <-chan domain.Sample
	clock     func() time.Time

	commands      chan command
	refreshDone   chan struct{}
	noticeExpired chan uint64
	done          chan struct{}
	started       atomic.Bool

	subsMu  sync.Mutex
	subs    map[uint64]chan View
	nextSub uint64
	closed  bool

	// loop-owned
	state   State
	waiters []chan View
}

// New mounts a screen. It starts locked, holding one synthetic sample.
func New(source domain.SampleSource, cfg Config, opts ...Option) *Controller {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.RefreshDelay < 0 {
		cfg.RefreshDelay = 0
	}
	if cfg.NoticeDuration <= 0 {
		cfg.NoticeDuration = DefaultNoticeDuration
	}

	c := &Controller{
		source:        source,
		cfg:           cfg,
		recorder:      nopRecorder{},
		clock:         time.Now,
		commands:      make(chan command),
		refreshDone:   make(chan struct{}),
		noticeExpired: make(chan uint64),
		done:          make(chan struct{}),
		subs:          make(map[uint64]chan View),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clipboard == nil {
		c.clipboard = clipboard.NewMemory()
	}

	c.state = NewState(source.Generate())
	return c
}

// Run processes screen events until ctx is cancelled. The refresh timer is
// armed once the screen is unlocked and stopped when Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer c.shutdown()

	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	external := c.external
	c.logger.Info("screen mounted", "refreshInterval", c.cfg.RefreshInterval.String(), "refreshDelay", c.cfg.RefreshDelay.String())

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("screen torn down", "reason", ctx.Err().Error())
			return nil
		case cmd := <-c.commands:
			view, err := cmd.fn()
			cmd.reply <- result{view: view, err: err}
		case <-tick:
			c.startRefresh(TriggerTimer)
		case <-c.refreshDone:
			c.completeRefresh()
		case id := <-c.noticeExpired:
			c.state = ClearNotice(c.state, id)
			c.publish()
		case sample, ok := <-external:
			if !ok {
				c.logger.Info("external telemetry feed closed")
				external = nil
				continue
			}
			_, _ = c.applyExternal(sample)
		}

		if ticker == nil && c.state.Mode == ModeActive {
			ticker = time.NewTicker(c.cfg.RefreshInterval)
			tick = ticker.C
		}
	}
}

// Snapshot returns the current view.
func (c *Controller) Snapshot(ctx context.Context) (View, error) {
	return c.do(ctx, func() (View, error) {
		return c.state.View(), nil
	})
}

// Grant acknowledges the permission request and unlocks the screen.
func (c *Controller) Grant(ctx context.Context) (View, error) {
	return c.do(ctx, func() (View, error) {
		if c.state.Mode == ModeActive {
			return c.state.View(), nil
		}
		c.state = Grant(c.state)
		c.logger.Info("screen permission granted")
		return c.publish(), nil
	})
}

// Refresh is the manual refresh button. It returns as soon as the refresh is
// scheduled; a press during an in-flight refresh is ignored.
func (c *Controller) Refresh(ctx context.Context) (View, error) {
	return c.do(ctx, func() (View, error) {
		if c.state.Mode != ModeActive {
			return View{}, domain.ErrLocked
		}
		c.startRefresh(TriggerManual)
		return c.state.View(), nil
	})
}

// Pull is the pull-to-refresh gesture. It returns once the refresh it started,
// or the one already in flight, has completed.
func (c *Controller) Pull(ctx context.Context) (View, error) {
	var wait chan View
	_, err := c.do(ctx, func() (View, error) {
		if c.state.Mode != ModeActive {
			return View{}, domain.ErrLocked
		}
		c.startRefresh(TriggerPull)
		wait = make(chan View, 1)
		c.waiters = append(c.waiters, wait)
		return c.state.View(), nil
	})
	if err != nil {
		return View{}, err
	}

	select {
	case view := <-wait:
		return view, nil
	case <-c.done:
		return View{}, domain.ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Ingest delivers an external telemetry sample, as a hardware bridge would.
func (c *Controller) Ingest(ctx context.Context, sample domain.Sample) (View, error) {
	return c.do(ctx, func() (View, error) {
		return c.applyExternal(sample)
	})
}

// Export copies the current sample to the clipboard as indented JSON and
// shows the confirmation notice. It returns the copied text.
func (c *Controller) Export(ctx context.Context) (string, error) {
	var text string
	_, err := c.do(ctx, func() (View, error) {
		if c.state.Mode != ModeActive {
			return View{}, domain.ErrLocked
		}

		formatted, err := FormatExport(c.state.Current)
		if err != nil {
			return View{}, err
		}
		if err := c.clipboard.WriteAll(formatted); err != nil {
			c.recorder.Exported(err)
			c.logger.Error("clipboard write failed", logging.AttachError(err)...)
			return View{}, fmt.Errorf("copy to clipboard: %w", err)
		}
		c.recorder.Exported(nil)

		var id uint64
		c.state, id = ShowNotice(c.state, NoticeCopied)
		time.AfterFunc(c.cfg.NoticeDuration, func() {
			select {
			case c.noticeExpired <- id:
			case <-c.done:
			}
		})

		text = formatted
		return c.publish(), nil
	})
	return text, err
}

// Subscribe registers for view updates. Updates are dropped for a subscriber
// whose buffer is full. The channel is closed by cancel or when Run returns.
func (c *Controller) Subscribe() (<-chan View, func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	ch := make(chan View, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) do(ctx context.Context, fn func() (View, error)) (View, error) {
	reply := make(chan result, 1)

	select {
	case c.commands <- command{fn: fn, reply: reply}:
	case <-c.done:
		return View{}, domain.ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	// The loop always answers a command it accepted.
	r := <-reply
	return r.view, r.err
}

func (c *Controller) startRefresh(trigger Trigger) {
	next, started := BeginRefresh(c.state)
	if !started {
		return
	}
	c.state = next
	c.recorder.RefreshStarted(trigger)
	c.logger.Debug("refresh started", "trigger", string(trigger), "hardwareMode", c.state.HardwareMode)

	time.AfterFunc(c.cfg.RefreshDelay, func() {
		select {
		case c.refreshDone <- struct{}{}:
		case <-c.done:
		}
	})
	c.publish()
}

func (c *Controller) completeRefresh() {
	var next *domain.Sample
	if c.state.NeedsSample() {
		sample := c.source.Generate()
		next = &sample
	}

	before := c.state.Seq
	c.state = CompleteRefresh(c.state, next)
	if c.state.Seq != before {
		c.recorder.SampleReplaced(c.state.Current)
	}

	view := c.publish()
	for _, w := range c.waiters {
		w <- view
	}
	c.waiters = nil
}

func (c *Controller) applyExternal(sample domain.Sample) (View, error) {
	next, applied := ApplyExternal(c.state, sample, c.clock())
	if !applied {
		c.recorder.ExternalDropped()
		c.logger.Debug("external sample dropped while locked", "operator", sample.Operator)
		return View{}, domain.ErrLocked
	}

	if !c.state.HardwareMode {
		c.logger.Info("hardware mode engaged", "operator", sample.Operator)
	}
	c.state = next
	c.recorder.RefreshStarted(TriggerExternal)
	c.recorder.SampleReplaced(c.state.Current)
	return c.publish(), nil
}

func (c *Controller) publish() View {
	view := c.state.View()

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- view:
		default:
		}
	}
	return view
}

func (c *Controller) shutdown() {
	close(c.done)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

type nopRecorder struct{}

func (nopRecorder) RefreshStarted(Trigger)       {}
func (nopRecorder) SampleReplaced(domain.Sample) {}
func (nopRecorder) ExternalDropped()             {}
func (nopRecorder) Exported(error)               {}
