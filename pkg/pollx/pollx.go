package pollx

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
)

// StatusFunc reads the current status. ok=false means there is no status
// right now, which is not an error.
type StatusFunc func(ctx context.Context) (status string, ok bool, err error)

// ChangeFunc is called when the status changes from prev to next.
type ChangeFunc func(ctx context.Context, prev, next string) error

// Poller watches a status source and reports transitions.
type Poller struct {
	source StatusFunc
	notify ChangeFunc
	opts   Options

	mu      sync.Mutex
	current string
	has     bool
	running bool
}

// New creates a poller.
func New(source StatusFunc, notify ChangeFunc, options ...Option) *Poller {
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Poller{
		source: source,
		notify: notify,
		opts:   opts,
	}
}

// Current returns the last status seen, if any.
func (p *Poller) Current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.has
}

// Poll performs one step and reports whether notify was called.
//
// A status that differs from the current one (or any status when there is
// none) triggers notify and becomes current, even if notify fails. A missing
// status clears current. Source errors leave current untouched.
func (p *Poller) Poll(ctx context.Context) bool {
	status, ok, err := p.source(ctx)
	if err != nil {
		logx.WithError(err).Warn("pollx: status source failed")
		return false
	}

	p.mu.Lock()
	if !ok {
		p.current, p.has = "", false
		p.mu.Unlock()
		return false
	}
	if p.has && p.current == status {
		p.mu.Unlock()
		return false
	}
	prev := p.opts.InitialLabel
	if p.has {
		prev = p.current
	}
	p.current, p.has = status, true
	p.mu.Unlock()

	if err := p.notify(ctx, prev, status); err != nil {
		logx.WithError(err).WithFields(logx.Fields{
			"prev": prev,
			"next": status,
		}).Warn("pollx: change notification failed")
	}
	return true
}

// Run polls immediately and then on every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return pollxErrors.New(ErrAlreadyRunning)
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	logx.Debugf("pollx: polling every %s", p.opts.Interval)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		p.Poll(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
