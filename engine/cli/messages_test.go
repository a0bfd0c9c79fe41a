package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"

	"github.com/dmora/agentcmd"
)

func TestCompletionMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, "\n✅ Command completed successfully\n"},
		{"exit code", &agentcmd.ExitError{Code: 2}, "\n❌ Command failed with exit code: 2\n"},
		{"signal", &agentcmd.ExitError{Code: -1}, "\n❌ Command failed with exit code: -1\n"},
		{"wrapped exit", fmt.Errorf("x: %w", &agentcmd.ExitError{Code: 7}), "\n❌ Command failed with exit code: 7\n"},
		{"other", errors.New("wait: no child\nprocesses"), "❌ Process error: wait: no child processes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completionMessage(tt.err); got != tt.want {
				t.Errorf("completionMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpawnMessage(t *testing.T) {
	notFound := &exec.Error{Name: "codex", Err: exec.ErrNotFound}
	if got := spawnMessage(agentcmd.AgentCodex, notFound); got != "❌ Command 'codex' not found. Please make sure it's installed and available in your PATH.\n" {
		t.Errorf("not found: %q", got)
	}
	if got := spawnMessage(agentcmd.AgentClaude, errors.New("permission denied")); got != "❌ Failed to start claude: permission denied\n" {
		t.Errorf("other: %q", got)
	}
	dirErr := fmt.Errorf("%w: sh: %w", agentcmd.ErrSpawn, &workDirError{dir: "/gone", err: fs.ErrNotExist})
	if got := spawnMessage(agentcmd.AgentClaude, dirErr); got != "❌ Failed to start claude: working directory /gone: file does not exist\n" {
		t.Errorf("working dir: %q", got)
	}
}
