package agentcmd

import (
	"strings"
	"testing"
)

func FuzzParseCommand(f *testing.F) {
	f.Add("claude", "/code help")
	f.Add("codex", "hello")
	f.Add("gemini", "/")
	f.Add("claude", "//codex x")
	f.Add("", "/unknown thing")

	f.Fuzz(func(t *testing.T, current, message string) {
		agent, payload := ParseCommand(Agent(current), message)

		if !strings.HasPrefix(message, "/") {
			if agent != Agent(current) || payload != message {
				t.Fatalf("non-command message rewritten: (%q, %q)", agent, payload)
			}
			return
		}
		if agent != Agent(current) && !agent.Known() {
			t.Fatalf("resolved to unknown agent %q", agent)
		}
		if agent != Agent(current) && strings.ContainsAny(payload, "\t\n") {
			t.Fatalf("payload not re-joined with single spaces: %q", payload)
		}
	})
}
