package filter

import (
	"strings"

	"github.com/dmora/agentcmd"
)

// Known Node.js warning text emitted by the Codex npm package.
const (
	traceWarningsHint = "(Use `node --trace-warnings ...` to show where the warning was created)"

	nodeWarningPrefix        = "(node:"
	circularDependencySuffix = "inside circular dependency"
)

// circularPropertyWarnings are the property-access warnings that accompany
// the circular dependency suffix.
var circularPropertyWarnings = []string{
	"Warning: Accessing non-existent property 'lineno'",
	"Warning: Accessing non-existent property 'filename'",
}

// Sanitize returns line unchanged and true if it should be forwarded, or
// false if it is known noise for agent. Only Codex output is filtered.
func Sanitize(agent agentcmd.Agent, line string) (string, bool) {
	if agent != agentcmd.AgentCodex {
		return line, true
	}
	if IsNoise(line) {
		return "", false
	}
	return line, true
}

// IsNoise reports whether line is one of the known Codex Node.js warnings,
// ignoring surrounding whitespace.
func IsNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == traceWarningsHint {
		return true
	}
	if !strings.HasPrefix(trimmed, nodeWarningPrefix) || !strings.HasSuffix(trimmed, circularDependencySuffix) {
		return false
	}
	for _, w := range circularPropertyWarnings {
		if strings.Contains(trimmed, w) {
			return true
		}
	}
	return false
}
