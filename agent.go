package agentcmd

// Agent identifies which agent CLI a session drives.
//
// The supported set is closed (see [Agents]); any other value is treated as
// an unknown agent whose message is passed through verbatim.
type Agent string

const (
	// AgentClaude is the Claude Code CLI ("claude").
	AgentClaude Agent = "claude"

	// AgentCodex is the OpenAI Codex CLI ("codex").
	AgentCodex Agent = "codex"

	// AgentGemini is the Gemini CLI ("gemini").
	AgentGemini Agent = "gemini"

	// AgentTest is a built-in simulator that streams canned output without
	// spawning a process. Useful for wiring checks.
	AgentTest Agent = "test"
)

// Agents returns the supported agents in a stable order.
func Agents() []Agent {
	return []Agent{AgentClaude, AgentCodex, AgentGemini, AgentTest}
}

// aliases maps alternate command tokens to their canonical agent.
var aliases = map[string]Agent{
	"code":    AgentCodex,
	"copilot": AgentCodex,
}

// Known reports whether a is one of the supported agents.
func (a Agent) Known() bool {
	switch a {
	case AgentClaude, AgentCodex, AgentGemini, AgentTest:
		return true
	}
	return false
}

// String returns the agent tag.
func (a Agent) String() string { return string(a) }

// ResolveAgent maps a command token to its canonical agent.
// Matching is exact and case-sensitive. Aliases resolve to the agent they
// stand for. Returns false if token names neither an agent nor an alias.
func ResolveAgent(token string) (Agent, bool) {
	if a := Agent(token); a.Known() {
		return a, true
	}
	if a, ok := aliases[token]; ok {
		return a, true
	}
	return "", false
}
