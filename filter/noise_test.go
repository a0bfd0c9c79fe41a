package filter

import (
	"testing"

	"github.com/dmora/agentcmd"
)

const (
	linenoWarning   = "(node:47953) Warning: Accessing non-existent property 'lineno' of module exports inside circular dependency"
	filenameWarning = "(node:47953) Warning: Accessing non-existent property 'filename' of module exports inside circular dependency"
	traceHint       = "(Use `node --trace-warnings ...` to show where the warning was created)"
)

func TestSanitize_DropsCodexNoise(t *testing.T) {
	for _, line := range []string{linenoWarning, filenameWarning, traceHint, "  " + traceHint + "\r"} {
		if _, ok := Sanitize(agentcmd.AgentCodex, line); ok {
			t.Errorf("Sanitize(codex, %q) kept a known warning", line)
		}
	}
}

func TestSanitize_KeepsLegitimateOutput(t *testing.T) {
	lines := []string{
		"npm ERR! missing script: start",
		"(node:47953) Warning: something else entirely inside circular dependency",
		"(node:1) Warning: Accessing non-existent property 'lineno' of module exports",
		"Warning: Accessing non-existent property 'lineno' of module exports inside circular dependency",
		traceHint + " extra",
		"",
	}
	for _, line := range lines {
		got, ok := Sanitize(agentcmd.AgentCodex, line)
		if !ok || got != line {
			t.Errorf("Sanitize(codex, %q) = (%q, %v), want passthrough", line, got, ok)
		}
	}
}

func TestSanitize_OtherAgentsUntouched(t *testing.T) {
	others := []agentcmd.Agent{agentcmd.AgentClaude, agentcmd.AgentGemini, agentcmd.AgentTest, "aider"}
	for _, agent := range others {
		for _, line := range []string{linenoWarning, filenameWarning, traceHint} {
			got, ok := Sanitize(agent, line)
			if !ok || got != line {
				t.Errorf("Sanitize(%s, %q) = (%q, %v), want passthrough", agent, line, got, ok)
			}
		}
	}
}
