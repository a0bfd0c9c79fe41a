//go:build !windows

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/filter"
)

const (
	ptyReadBuffer = 32 * 1024
	// ptyDrainTimeout bounds how long output is drained after the child
	// exits, in case something outside the process group holds the slave.
	ptyDrainTimeout = 2 * time.Second
)

// ptyError marks a pseudo-terminal failure that the launcher recovers from
// by falling back to pipes.
type ptyError struct{ err error }

func (e *ptyError) Error() string        { return "cli: pty: " + e.err.Error() }
func (e *ptyError) Unwrap() error        { return e.err }
func (e *ptyError) Is(target error) bool { return target == agentcmd.ErrPtyOpen }

// runPTY runs sp attached to a pseudo-terminal. Reads are forwarded raw,
// one chunk per read, so redraws and carriage returns survive. The session
// keeps an input channel whose writes go to the terminal.
//
// A *ptyError is returned, with nothing emitted, when the terminal or the
// process could not be started.
func (l *Launcher) runPTY(ctx context.Context, sp spawnPlan, em *emitter) error {
	cmd := exec.Command(sp.binary, sp.args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: l.opts.PTYRows, Cols: l.opts.PTYCols})
	if err != nil {
		return &ptyError{err: err}
	}
	defer ptmx.Close()

	pg := processGroup(cmd.Process.Pid)
	input := make(chan string, defaultInputBuffer)
	as, err := l.register(sp, pg, input, em)
	if err != nil {
		_ = cmd.Wait()
		return err
	}
	defer l.reg.Release(sp.session.ID, as)

	stopWatch := watchCancel(ctx.Done(), pg, l.opts.GracePeriod)
	defer stopWatch()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		l.readPTY(ptmx, sp.session, em)
	}()
	go func() {
		defer as.CloseInput()
		writePTY(ptmx, input, readDone)
	}()

	waitErr := wrapExitError(cmd.Wait())

	// Reap leftovers so the slave side closes and the reader sees EIO.
	_ = pg.Kill()
	select {
	case <-readDone:
	case <-time.After(ptyDrainTimeout):
		l.opts.Logger.Warn("cli: pty output not drained", "session_id", sp.session.ID)
	}

	em.finish(completionMessage(waitErr))
	return waitErr
}

// readPTY forwards raw terminal reads until EOF, minus the agent's known
// noise lines. Linux reports the end of a pty as EIO once every slave
// descriptor is closed.
func (l *Launcher) readPTY(ptmx io.Reader, s agentcmd.Session, em *emitter) {
	noise := filter.NewTerminal(s.Agent)
	forward := func(content string) {
		if content != "" {
			em.send(content)
		}
	}
	defer func() { forward(noise.Flush()) }()

	buf := make([]byte, ptyReadBuffer)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			forward(noise.Write(strings.ToValidUTF8(string(buf[:n]), "�")))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, unix.EIO) {
				l.opts.Logger.Debug("cli: pty read error", "session_id", s.ID, "error", err)
			}
			return
		}
	}
}

// writePTY copies queued input to the terminal until stop closes or a
// write fails.
func writePTY(w io.Writer, input <-chan string, stop <-chan struct{}) {
	for {
		select {
		case s := <-input:
			if _, err := io.WriteString(w, s); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
