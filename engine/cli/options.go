package cli

import (
	"log/slog"
	"time"

	"github.com/dmora/agentcmd"
)

// Default launcher configuration values.
const (
	defaultScannerBuffer  = 1 << 20 // 1 MB
	defaultGracePeriod    = 5 * time.Second
	defaultPTYRows        = 32
	defaultPTYCols        = 120
	defaultSimulatorDelay = 500 * time.Millisecond
	defaultMaxSessions    = 10
	defaultInputBuffer    = 16
)

// LauncherOptions holds resolved construction-time configuration for a
// Launcher. Use NewLauncher with LauncherOption functions to customize them.
type LauncherOptions struct {
	// Resolver locates agent binaries. Defaults to agentcmd.NewExecResolver().
	Resolver agentcmd.Resolver

	// Settings supplies per-agent preferences. Nil means no preferences.
	Settings agentcmd.SettingsProvider

	// Logger receives launch diagnostics. Defaults to a discard logger.
	Logger *slog.Logger

	// ScannerBuffer is the maximum line size in bytes for piped output.
	ScannerBuffer int

	// GracePeriod is how long a canceled launch waits after SIGTERM before
	// sending SIGKILL to the process group.
	GracePeriod time.Duration

	// PTYRows and PTYCols set the pseudo-terminal geometry.
	PTYRows uint16
	PTYCols uint16

	// SimulatorDelay is the pause before each line of the test agent.
	SimulatorDelay time.Duration

	// MaxSessions caps concurrent launches. Zero means unlimited.
	MaxSessions int
}

// LauncherOption configures a Launcher at construction time.
type LauncherOption func(*LauncherOptions)

// WithResolver sets the executable resolver. Nil is ignored.
func WithResolver(r agentcmd.Resolver) LauncherOption {
	return func(o *LauncherOptions) {
		if r != nil {
			o.Resolver = r
		}
	}
}

// WithSettings sets the settings provider.
func WithSettings(p agentcmd.SettingsProvider) LauncherOption {
	return func(o *LauncherOptions) {
		o.Settings = p
	}
}

// WithLogger sets the structured logger. Nil is ignored.
func WithLogger(l *slog.Logger) LauncherOption {
	return func(o *LauncherOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithScannerBuffer sets the maximum line size in bytes for piped output.
// Values <= 0 are ignored.
func WithScannerBuffer(size int) LauncherOption {
	return func(o *LauncherOptions) {
		if size > 0 {
			o.ScannerBuffer = size
		}
	}
}

// WithGracePeriod sets the duration to wait after SIGTERM before sending SIGKILL.
// Values <= 0 are ignored.
func WithGracePeriod(d time.Duration) LauncherOption {
	return func(o *LauncherOptions) {
		if d > 0 {
			o.GracePeriod = d
		}
	}
}

// WithPTYSize sets the pseudo-terminal geometry. Zero dimensions are ignored.
func WithPTYSize(rows, cols uint16) LauncherOption {
	return func(o *LauncherOptions) {
		if rows > 0 && cols > 0 {
			o.PTYRows, o.PTYCols = rows, cols
		}
	}
}

// WithSimulatorDelay sets the per-line delay of the test agent.
// Negative values are ignored.
func WithSimulatorDelay(d time.Duration) LauncherOption {
	return func(o *LauncherOptions) {
		if d >= 0 {
			o.SimulatorDelay = d
		}
	}
}

// WithMaxSessions caps concurrent launches. Zero disables the limit;
// negative values are ignored.
func WithMaxSessions(n int) LauncherOption {
	return func(o *LauncherOptions) {
		if n >= 0 {
			o.MaxSessions = n
		}
	}
}

func resolveLauncherOptions(opts ...LauncherOption) LauncherOptions {
	o := LauncherOptions{
		Logger:         slog.New(slog.DiscardHandler),
		ScannerBuffer:  defaultScannerBuffer,
		GracePeriod:    defaultGracePeriod,
		PTYRows:        defaultPTYRows,
		PTYCols:        defaultPTYCols,
		SimulatorDelay: defaultSimulatorDelay,
		MaxSessions:    defaultMaxSessions,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Resolver == nil {
		o.Resolver = agentcmd.NewExecResolver()
	}
	return o
}
