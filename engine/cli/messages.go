package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/internal/errfmt"
)

// User-facing chunk texts.
const (
	msgInfo           = "🔗 Agent: %s | Command: %s\n"
	msgNotInstalled   = "❌ Command '%s' not found. Please install it first:\n\n"
	msgNotOnPath      = "❌ Command '%s' not found. Please make sure it's installed and available in your PATH.\n"
	msgStartFailed    = "❌ Failed to start %s: %s\n"
	msgSucceeded      = "\n✅ Command completed successfully\n"
	msgExitCode       = "\n❌ Command failed with exit code: %d\n"
	msgProcessError   = "❌ Process error: %s\n"
	msgPTYUnavailable = "⚠️ PTY unavailable (%s), falling back to pipes\n"
	msgTooMany        = "❌ Too many active sessions (%d)\n"
	msgInterrupted    = "\n⚠️ Interrupted\n"
)

// completionMessage renders the finished chunk for a process result as
// returned by wrapExitError.
func completionMessage(err error) string {
	if err == nil {
		return msgSucceeded
	}
	if code, ok := agentcmd.ExitCode(err); ok {
		return fmt.Sprintf(msgExitCode, code)
	}
	return fmt.Sprintf(msgProcessError, errfmt.Inline(err))
}

// workDirError is a start failure caused by the working directory rather
// than the executable.
type workDirError struct {
	dir string
	err error
}

func (e *workDirError) Error() string { return "working directory " + e.dir + ": " + e.err.Error() }
func (e *workDirError) Unwrap() error { return e.err }

// spawnMessage renders the finished chunk for a failed exec start.
func spawnMessage(agent agentcmd.Agent, err error) string {
	var dirErr *workDirError
	if errors.As(err, &dirErr) {
		return fmt.Sprintf(msgStartFailed, agent, errfmt.Inline(dirErr))
	}
	if isNotFound(err) {
		return fmt.Sprintf(msgNotOnPath, agent)
	}
	return fmt.Sprintf(msgStartFailed, agent, errfmt.Inline(err))
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
