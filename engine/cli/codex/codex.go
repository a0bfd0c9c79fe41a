package codex

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/internal/argutil"
	"github.com/dmora/agentcmd/stream"
)

// Mode is a Codex execution-mode tag.
type Mode string

const (
	// ModeChat runs with a read-only sandbox.
	ModeChat Mode = "chat"

	// ModeCollab runs with --full-auto (workspace writes, no approval prompts).
	ModeCollab Mode = "collab"

	// ModeFull runs with full disk access. Combined with a dangerous bypass
	// request it disables approvals and the sandbox entirely.
	ModeFull Mode = "full"
)

// Sandbox controls the sandbox policy via --sandbox.
type Sandbox string

const (
	SandboxReadOnly   Sandbox = "read-only"
	SandboxFullAccess Sandbox = "danger-full-access"
)

// CLI subcommand and flag constants (goconst).
const (
	subcmdExec    = "exec"
	flagModel     = "--model"
	flagSandbox   = "--sandbox"
	flagFullAuto  = "--full-auto"
	flagBypassAll = "--dangerously-bypass-approvals-and-sandbox"
	defaultBinary = "codex"
	quitDirective = "/exit"
	installHint   = "Install GitHub Copilot CLI: https://github.com/features/copilot\n"
)

// Backend is the Codex CLI backend. It implements cli.Backend and
// cli.Framer: codex exec output is framed by a stream.Accumulator rather
// than split on newlines.
type Backend struct {
	binary string
}

// Compile-time interface satisfaction checks.
var (
	_ cli.Backend = (*Backend)(nil)
	_ cli.Framer  = (*Backend)(nil)
)

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBinary overrides the Codex CLI binary path.
// Empty values are ignored; the default is "codex".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// New creates a Codex CLI backend with the given options.
// The default binary is "codex".
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Agent implements cli.Backend.
func (b *Backend) Agent() agentcmd.Agent { return agentcmd.AgentCodex }

// Binary implements cli.Backend.
func (b *Backend) Binary() string { return b.binary }

// QuitDirective implements cli.Backend.
func (b *Backend) QuitDirective() string { return quitDirective }

// InstallHint implements cli.Backend.
func (b *Backend) InstallHint() string { return installHint }

// NewAccumulator implements cli.Framer.
func (b *Backend) NewAccumulator() *stream.Accumulator { return stream.New() }

// Args builds: exec [--model <model>] [mode flags] [message].
func (b *Backend) Args(req agentcmd.ArgsRequest) []string {
	args := []string{subcmdExec}
	args = argutil.AppendFlag(args, flagModel, req.Settings.Model)
	args = append(args, modeFlags(Mode(req.ExecutionMode), req.DangerousBypass)...)
	return argutil.AppendMessage(args, req.Message)
}

// modeFlags maps an execution mode to its flags. Unknown modes emit
// nothing; bypass only has an effect in ModeFull.
func modeFlags(mode Mode, bypass bool) []string {
	switch mode {
	case ModeChat:
		return []string{flagSandbox, string(SandboxReadOnly)}
	case ModeCollab:
		return []string{flagFullAuto}
	case ModeFull:
		if bypass {
			return []string{flagBypassAll}
		}
		return []string{flagSandbox, string(SandboxFullAccess)}
	}
	return nil
}

// ValidMode reports whether m is a recognized execution mode.
func ValidMode(m string) bool {
	switch Mode(m) {
	case ModeChat, ModeCollab, ModeFull:
		return true
	}
	return false
}
