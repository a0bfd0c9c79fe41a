package filter

import (
	"strings"

	"github.com/dmora/agentcmd"
)

// Terminal drops known noise lines from raw pseudo-terminal output while
// leaving everything else byte for byte, line terminators and carriage
// return redraws included.
//
// Output is cut after every run of '\r'/'\n'. A trailing piece without a
// terminator is held back only when it could still turn into a noise line;
// anything else is forwarded at once so prompts are not delayed. Agents
// without noise rules pass through untouched.
//
// A Terminal is not safe for concurrent use.
type Terminal struct {
	agent   agentcmd.Agent
	pending string

	// dropped is set when a noise line ended exactly at a read boundary;
	// the rest of its terminator run may open the next read.
	dropped bool
}

// NewTerminal returns a Terminal for agent's output.
func NewTerminal(agent agentcmd.Agent) *Terminal {
	return &Terminal{agent: agent}
}

// Write returns the part of chunk that is ready to forward.
func (t *Terminal) Write(chunk string) string {
	if t.agent != agentcmd.AgentCodex {
		return chunk
	}
	if t.dropped && chunk != "" {
		chunk = strings.TrimLeft(chunk, "\r\n")
		t.dropped = false
	}
	data := t.pending + chunk
	t.pending = ""

	var out strings.Builder
	for len(data) > 0 {
		end := strings.IndexAny(data, "\r\n")
		if end < 0 {
			if mayBecomeNoise(data) {
				t.pending = data
			} else {
				out.WriteString(data)
			}
			break
		}
		for end < len(data) && (data[end] == '\r' || data[end] == '\n') {
			end++
		}
		if segment := data[:end]; !IsNoise(segment) {
			out.WriteString(segment)
		} else if end == len(data) {
			t.dropped = true
		}
		data = data[end:]
	}
	return out.String()
}

// Flush returns held-back output. Call it once the stream ends.
func (t *Terminal) Flush() string {
	rest := t.pending
	t.pending = ""
	if IsNoise(rest) {
		return ""
	}
	return rest
}

// mayBecomeNoise reports whether an unterminated piece is a prefix of, or
// starts like, one of the noise lines. Both start with '('.
func mayBecomeNoise(s string) bool {
	trimmed := strings.TrimLeft(s, " \t")
	if trimmed == "" {
		return len(s) > 0
	}
	return trimmed[0] == '('
}
