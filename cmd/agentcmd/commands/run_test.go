//go:build !windows

package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmora/agentcmd"
)

// installAgent writes an executable named name into a fresh directory and
// returns a config that puts it on the search path.
func installAgent(t *testing.T, name, script string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0o755))
	b, err := json.Marshal(dir)
	require.NoError(t, err)
	return "extra_paths = [" + string(b) + "]\n"
}

func decodeChunks(t *testing.T, out string) []agentcmd.StreamChunk {
	t.Helper()
	var chunks []agentcmd.StreamChunk
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var c agentcmd.StreamChunk
		require.NoError(t, dec.Decode(&c))
		chunks = append(chunks, c)
	}
	return chunks
}

func TestRun_PipedAgentStreamsAndSucceeds(t *testing.T) {
	cfg := installAgent(t, "agentcmd-echo", `echo "got: $1"`)
	out, err := execute(t, cfg, "--json", "run", "--agent", "agentcmd-echo", "--dir", t.TempDir(), "--session", "s1", "hello")
	require.NoError(t, err)

	chunks := decodeChunks(t, out)
	require.NotEmpty(t, chunks)
	var text strings.Builder
	for _, c := range chunks {
		assert.Equal(t, "s1", c.SessionID)
		text.WriteString(c.Content)
	}
	assert.Contains(t, text.String(), "got: hello")
	last := chunks[len(chunks)-1]
	assert.True(t, last.Finished)
	assert.Contains(t, last.Content, "completed successfully")
}

func TestRun_ExitCodePropagates(t *testing.T) {
	cfg := installAgent(t, "agentcmd-fail", "exit 3\n")
	out, err := execute(t, cfg, "run", "--agent", "agentcmd-fail", "--dir", t.TempDir(), "x")
	require.Error(t, err)

	code, ok := agentcmd.ExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "exit code: 3")
}

func TestRun_NotInstalled(t *testing.T) {
	out, err := execute(t, "", "run", "--agent", "agentcmd-definitely-missing", "--dir", t.TempDir(), "x")
	require.ErrorIs(t, err, agentcmd.ErrExecutableNotFound)
	assert.Contains(t, out, "not found")
}

func TestRun_UnknownCodexModeRejected(t *testing.T) {
	out, err := execute(t, "", "run", "--agent", "codex", "--mode", "turbo", "go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown codex mode")
	assert.Empty(t, out, "nothing launched")
}

func TestRun_JSONLinesCarryEventName(t *testing.T) {
	cfg := installAgent(t, "agentcmd-evt", "echo hi\n")
	out, err := execute(t, cfg, "--json", "run", "--agent", "agentcmd-evt", "--dir", t.TempDir(), "x")
	require.NoError(t, err)

	line := strings.SplitN(out, "\n", 2)[0]
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, agentcmd.EventCLIStream, got["event"])
}

func TestRun_StdinForwardedToPiped(t *testing.T) {
	cfg := installAgent(t, "agentcmd-once", `echo "ran: $1"`)
	root := NewRootCommand()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	var out strings.Builder
	root.SetOut(&out)
	root.SetErr(&strings.Builder{})
	root.SetIn(strings.NewReader("ignored\n"))
	root.SetArgs([]string{"--config", path, "--log-level", "error", "run", "--stdin", "--agent", "agentcmd-once", "--dir", t.TempDir(), "hi"})

	// Piped sessions have no input channel; forwarding gives up without
	// affecting the run.
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "ran: hi")
}
