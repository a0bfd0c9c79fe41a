// Package passthrough provides the fallback backend for agents without
// dedicated argument rules. The message is passed verbatim as the only
// argument and the binary is named after the agent.
package passthrough

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/internal/argutil"
)

const (
	quitDirective = "/quit"
	installHint   = "Please check the official documentation for installation instructions.\n"
)

// Backend runs an arbitrary agent binary with the message as its only
// argument.
type Backend struct {
	agent  agentcmd.Agent
	binary string
}

// Option configures a Backend at construction time.
type Option func(*Backend)

// WithBinary overrides the binary. Empty values are ignored; the default
// is the agent tag itself.
func WithBinary(path string) Option {
	return func(b *Backend) {
		if path != "" {
			b.binary = path
		}
	}
}

// New creates a passthrough backend for agent.
func New(agent agentcmd.Agent, opts ...Option) *Backend {
	b := &Backend{agent: agent, binary: string(agent)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Agent implements cli.Backend.
func (b *Backend) Agent() agentcmd.Agent { return b.agent }

// Binary implements cli.Backend.
func (b *Backend) Binary() string { return b.binary }

// QuitDirective implements cli.Backend.
func (b *Backend) QuitDirective() string { return quitDirective }

// InstallHint implements cli.Backend.
func (b *Backend) InstallHint() string { return installHint }

// Args returns the message alone, or nothing when it is empty.
func (b *Backend) Args(req agentcmd.ArgsRequest) []string {
	return argutil.AppendMessage(nil, req.Message)
}
