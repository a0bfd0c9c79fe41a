package claude

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/internal/argutil"
)

// PermissionMode controls Claude Code's permission behavior.
type PermissionMode string

const (
	// PermissionDefault uses Claude Code's default permission handling.
	PermissionDefault PermissionMode = "default"

	// PermissionAcceptEdits auto-accepts file edit operations.
	PermissionAcceptEdits PermissionMode = "acceptEdits"

	// PermissionBypassAll bypasses all permission prompts.
	// Maps to CLI flag value "bypassPermissions".
	PermissionBypassAll PermissionMode = "bypassAll"

	// PermissionPlan restricts Claude to plan-only mode.
	PermissionPlan PermissionMode = "plan"
)

const (
	defaultBinary = "claude"
	quitDirective = "/quit"
	installHint   = "Install Claude CLI: https://docs.anthropic.com/claude/docs/cli\n"
)

// Backend is the Claude Code CLI backend.
type Backend struct {
	binary string
}

// Compile-time interface satisfaction check.
var _ cli.Backend = (*Backend)(nil)

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBinary overrides the Claude CLI binary path.
// Empty values are ignored; the default is "claude".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// New creates a Claude Code CLI backend with the given options.
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Agent implements cli.Backend.
func (b *Backend) Agent() agentcmd.Agent { return agentcmd.AgentClaude }

// Binary implements cli.Backend.
func (b *Backend) Binary() string { return b.binary }

// QuitDirective implements cli.Backend.
func (b *Backend) QuitDirective() string { return quitDirective }

// InstallHint implements cli.Backend.
func (b *Backend) InstallHint() string { return installHint }

// Args builds: -p [message] --output-format stream-json --verbose
// [--permission-mode <mode>] [--model <model>].
//
// The message directly follows -p. Null-byte-containing values are
// silently omitted.
func (b *Backend) Args(req agentcmd.ArgsRequest) []string {
	args := []string{"-p"}
	args = argutil.AppendMessage(args, req.Message)
	args = append(args, "--output-format", "stream-json", "--verbose")
	args = argutil.AppendFlag(args, "--permission-mode", mapPermission(PermissionMode(req.PermissionMode)))
	args = argutil.AppendFlag(args, "--model", req.Settings.Model)
	return args
}

// mapPermission maps a PermissionMode to its Claude CLI flag value.
// The bypassAll shorthand expands to the CLI spelling; every other value
// is passed through verbatim.
func mapPermission(perm PermissionMode) string {
	if perm == PermissionBypassAll {
		return "bypassPermissions"
	}
	return string(perm)
}
