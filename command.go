package agentcmd

import "strings"

// helpCommand is the payload substituted for a bare "/".
const helpCommand = "help"

// ParseCommand interprets a user-typed message and decides which agent
// receives it and with what payload.
//
//   - "hello" with current=claude         → (claude, "hello")
//   - "/"                                 → (current, "help")
//   - "/codex fix the build"              → (codex, "fix the build")
//   - "/code help"                        → (codex, "help")   (alias)
//   - "/gemini"                           → (gemini, "")      (start, no message)
//   - "/review" with current=claude       → (claude, "/review")
//
// Only the first slash is stripped; agent names are matched exactly.
// Remaining tokens are re-joined with single spaces.
func ParseCommand(current Agent, message string) (Agent, string) {
	if !strings.HasPrefix(message, "/") {
		return current, message
	}

	parts := strings.Fields(message[1:])
	if len(parts) == 0 {
		return current, helpCommand
	}

	agent, ok := ResolveAgent(parts[0])
	if !ok {
		// Sub-command for the current agent; keep the slash.
		return current, message
	}
	return agent, strings.Join(parts[1:], " ")
}
