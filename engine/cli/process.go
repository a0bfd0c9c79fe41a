//go:build !windows

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/dmora/agentcmd"
)

// processGroup addresses a child and everything it spawned. Agent CLIs
// are often node wrappers whose real work happens in grandchildren, so
// signals go to the whole group.
type processGroup int

// Kill sends SIGKILL to the group. A group that no longer exists reports
// os.ErrProcessDone.
func (pg processGroup) Kill() error {
	return pg.signal(unix.SIGKILL)
}

func (pg processGroup) signal(sig unix.Signal) error {
	if pg <= 0 {
		return os.ErrProcessDone
	}
	err := unix.Kill(-int(pg), sig)
	if errors.Is(err, unix.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}

// groupAttr puts a piped child in its own process group. PTY children get
// a new session (and therefore a new group) from the pty package instead;
// setting Setpgid there would make setpgid fail with EPERM.
func groupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// classifyStartError maps an exec start failure onto the root sentinels.
// fork/exec reports a missing working directory as ENOENT too, so dir is
// checked before the failure is blamed on the executable.
func classifyStartError(binary, dir string, err error) error {
	if dirErr := checkWorkDir(dir); dirErr != nil {
		return fmt.Errorf("%w: %s: %w", agentcmd.ErrSpawn, binary, dirErr)
	}
	if isNotFound(err) {
		return fmt.Errorf("%w: %s: %w", agentcmd.ErrExecutableNotFound, binary, err)
	}
	return fmt.Errorf("%w: %s: %w", agentcmd.ErrSpawn, binary, err)
}

// checkWorkDir returns a *workDirError if dir is set and is not an existing
// directory.
func checkWorkDir(dir string) error {
	if dir == "" {
		return nil
	}
	fi, err := os.Stat(dir)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return &workDirError{dir: dir, err: err}
	}
	if !fi.IsDir() {
		return &workDirError{dir: dir, err: syscall.ENOTDIR}
	}
	return nil
}

// wrapExitError converts a non-zero *exec.ExitError to *agentcmd.ExitError.
// nil → nil, non-ExitError → passthrough, code 0 → nil (clean exit).
// Signal deaths report code -1. Preserves the error chain via
// ExitError.Unwrap.
func wrapExitError(err error) error {
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return err
	}
	code := ee.ExitCode()
	if code == 0 {
		return nil
	}
	return &agentcmd.ExitError{Code: code, Err: err}
}

// watchCancel terminates pg when done closes before exited does: SIGTERM
// first, SIGKILL after grace. The returned function stops the watcher and
// must be called once the process has exited.
func watchCancel(done <-chan struct{}, pg processGroup, grace time.Duration) (stop func()) {
	exited := make(chan struct{})
	go func() {
		select {
		case <-exited:
			return
		case <-done:
		}
		_ = pg.signal(unix.SIGTERM)
		t := time.NewTimer(grace)
		defer t.Stop()
		select {
		case <-exited:
		case <-t.C:
			_ = pg.Kill()
		}
	}()
	return func() { close(exited) }
}
