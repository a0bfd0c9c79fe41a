// Package gemini provides the Gemini CLI backend.
//
// The invocation is:
//
//	gemini --prompt [--permission-mode <mode>] [--model <model>] [message]
//
// Both flag values come from the request or the agent's settings and are
// omitted when empty. The interactive quit directive is "/quit".
package gemini

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/internal/argutil"
)

const (
	defaultBinary = "gemini"
	quitDirective = "/quit"
	installHint   = "Install Gemini CLI: https://cloud.google.com/sdk/docs/install\n"
)

// Backend is the Gemini CLI backend.
type Backend struct {
	binary string
}

var _ cli.Backend = (*Backend)(nil)

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBinary overrides the Gemini CLI binary path.
// Empty values are ignored; the default is "gemini".
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// New creates a Gemini CLI backend with the given options.
func New(opts ...Option) *Backend {
	b := &Backend{binary: defaultBinary}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Agent implements cli.Backend.
func (b *Backend) Agent() agentcmd.Agent { return agentcmd.AgentGemini }

// Binary implements cli.Backend.
func (b *Backend) Binary() string { return b.binary }

// QuitDirective implements cli.Backend.
func (b *Backend) QuitDirective() string { return quitDirective }

// InstallHint implements cli.Backend.
func (b *Backend) InstallHint() string { return installHint }

// Args builds the gemini argument list. The message goes last.
func (b *Backend) Args(req agentcmd.ArgsRequest) []string {
	args := []string{"--prompt"}
	args = argutil.AppendFlag(args, "--permission-mode", req.PermissionMode)
	args = argutil.AppendFlag(args, "--model", req.Settings.Model)
	return argutil.AppendMessage(args, req.Message)
}
