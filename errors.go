package agentcmd

import (
	"errors"
	"strconv"
)

// Sentinel errors shared by the launcher and registry.
//
// Launch failures (ErrExecutableNotFound, ErrSpawn, ErrPtyOpen, non-zero
// exits) are never returned to the launching caller. They surface only as
// stream chunks; the sentinels exist for logging and for tests that inspect
// internal results. Administrative operations on the registry return
// ErrSessionNotFound, ErrStdinUnavailable and friends directly.
var (
	// ErrExecutableNotFound indicates the agent binary could not be resolved.
	ErrExecutableNotFound = errors.New("agentcmd: executable not found")

	// ErrSpawn indicates the OS refused to create the process.
	ErrSpawn = errors.New("agentcmd: spawn failed")

	// ErrPtyOpen indicates a pseudo-terminal could not be allocated or
	// attached. Non-fatal: the launcher falls back to piped stdio.
	ErrPtyOpen = errors.New("agentcmd: pty unavailable")

	// ErrSessionNotFound indicates the requested session is not registered.
	ErrSessionNotFound = errors.New("agentcmd: session not found")

	// ErrStdinUnavailable indicates the session has no interactive input
	// channel (one-shot piped sessions never have one).
	ErrStdinUnavailable = errors.New("agentcmd: session stdin not available")

	// ErrTooManySessions indicates the concurrent-session limit is reached.
	ErrTooManySessions = errors.New("agentcmd: too many active sessions")

	// ErrTerminated indicates the session or stream already ended.
	ErrTerminated = errors.New("agentcmd: session terminated")
)

// ExitError represents an agent process that exited with a non-zero status.
// Wraps the underlying error to preserve the chain; consumers can
// errors.As to *exec.ExitError for OS-level detail.
//
// Code is the exit status, or -1 when the process was killed by a signal or
// the status is otherwise unavailable.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "agentcmd: exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit code from an error chain containing *ExitError.
// Returns (0, false) if the error does not contain an ExitError.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
