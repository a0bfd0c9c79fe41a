// Package builtin assembles the backends shipped with agentcmd.
package builtin

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/engine/cli/claude"
	"github.com/dmora/agentcmd/engine/cli/codex"
	"github.com/dmora/agentcmd/engine/cli/gemini"
	"github.com/dmora/agentcmd/engine/cli/passthrough"
)

// Backends returns a fresh backend table for every known agent.
// The test agent maps to a passthrough backend; the launcher never spawns
// it because the simulator answers first.
func Backends() map[agentcmd.Agent]cli.Backend {
	return map[agentcmd.Agent]cli.Backend{
		agentcmd.AgentClaude: claude.New(),
		agentcmd.AgentCodex:  codex.New(),
		agentcmd.AgentGemini: gemini.New(),
		agentcmd.AgentTest:   passthrough.New(agentcmd.AgentTest),
	}
}

// For returns the backend for agent, falling back to a passthrough backend
// named after the agent for tags without dedicated rules.
func For(agent agentcmd.Agent) cli.Backend {
	if b, ok := Backends()[agent]; ok {
		return b
	}
	return passthrough.New(agent)
}
