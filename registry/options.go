package registry

import (
	"log/slog"
	"time"
)

// Default registry configuration values.
const (
	defaultGracePeriod = 100 * time.Millisecond
	defaultIdleTimeout = 1800 * time.Second
)

// Options holds resolved construction-time configuration for a Registry.
type Options struct {
	// GracePeriod is how long Terminate waits after sending the quit
	// directive before killing the process.
	GracePeriod time.Duration

	// IdleTimeout is the inactivity threshold used by Sweep.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent registrations. Zero means unlimited.
	MaxSessions int

	// Logger receives lifecycle events. Defaults to a discard logger.
	Logger *slog.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Option configures a Registry at construction time.
type Option func(*Options)

// WithGracePeriod sets the quit-to-kill delay. Negative values are ignored;
// zero kills immediately after the quit directive is queued.
func WithGracePeriod(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.GracePeriod = d
		}
	}
}

// WithIdleTimeout sets the Sweep threshold. Values <= 0 are ignored.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.IdleTimeout = d
		}
	}
}

// WithMaxSessions caps concurrent registrations. Values < 0 are ignored.
func WithMaxSessions(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxSessions = n
		}
	}
}

// WithLogger sets the structured logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock overrides the time source, for tests. Nil is ignored.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

func resolveOptions(opts ...Option) Options {
	o := Options{
		GracePeriod: defaultGracePeriod,
		IdleTimeout: defaultIdleTimeout,
		Logger:      slog.New(slog.DiscardHandler),
		Clock:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
