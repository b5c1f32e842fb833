package pollx

import "time"

// Options configures a Poller.
type Options struct {
	Interval     time.Duration
	InitialLabel string
}

func defaultOptions() Options {
	return Options{
		Interval:     time.Second,
		InitialLabel: "nothing",
	}
}

// Option is a functional option for configuring the poller.
type Option func(*Options)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Interval = d
		}
	}
}

// WithInitialLabel sets the "previous" value reported for the first status
// seen after start or after the status disappeared.
func WithInitialLabel(label string) Option {
	return func(o *Options) {
		o.InitialLabel = label
	}
}
