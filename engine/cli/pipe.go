//go:build !windows

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/filter"
	"github.com/dmora/agentcmd/internal/errfmt"
)

const (
	stderrPrefix     = "ERROR: "
	framerReadBuffer = 32 * 1024
)

// runPiped runs sp with piped stdio in sp.session.WorkingDir. Stdout and
// stderr are read by independent goroutines; the finished chunk is emitted
// only after both reach EOF and the process has been reaped.
func (l *Launcher) runPiped(ctx context.Context, sp spawnPlan, em *emitter) error {
	cmd := exec.Command(sp.binary, sp.args...)
	cmd.Dir = sp.session.WorkingDir
	cmd.SysProcAttr = groupAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		em.finish(spawnMessage(sp.session.Agent, err))
		return fmt.Errorf("%w: stdout pipe: %w", agentcmd.ErrSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		em.finish(spawnMessage(sp.session.Agent, err))
		return fmt.Errorf("%w: stderr pipe: %w", agentcmd.ErrSpawn, err)
	}
	if err := cmd.Start(); err != nil {
		startErr := classifyStartError(sp.binary, cmd.Dir, err)
		em.finish(spawnMessage(sp.session.Agent, startErr))
		return startErr
	}

	pg := processGroup(cmd.Process.Pid)
	as, err := l.register(sp, pg, nil, em)
	if err != nil {
		_ = cmd.Wait()
		return err
	}
	defer l.reg.Release(sp.session.ID, as)

	stopWatch := watchCancel(ctx.Done(), pg, l.opts.GracePeriod)
	defer stopWatch()

	agent := sp.session.Agent
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if f, ok := sp.backend.(Framer); ok {
			l.readFramed(stdout, f, agent, em)
			return
		}
		l.readLines(stdout, agent, "", em)
	}()
	go func() {
		defer wg.Done()
		l.readLines(stderr, agent, stderrPrefix, em)
	}()
	wg.Wait()

	waitErr := wrapExitError(cmd.Wait())
	em.finish(completionMessage(waitErr))
	return waitErr
}

// readLines emits each line of r as prefix+line+"\n", dropping known
// noise. A line longer than the scanner buffer is reported on the stream
// and the rest of r is discarded so the child never blocks on a full pipe.
func (l *Launcher) readLines(r io.Reader, agent agentcmd.Agent, prefix string, em *emitter) {
	scanner := bufio.NewScanner(r)
	initCap := min(4096, l.opts.ScannerBuffer)
	scanner.Buffer(make([]byte, 0, initCap), l.opts.ScannerBuffer)

	for scanner.Scan() {
		line, ok := filter.Sanitize(agent, scanner.Text())
		if !ok {
			continue
		}
		em.send(prefix + line + "\n")
	}
	if err := scanner.Err(); err != nil {
		em.send(fmt.Sprintf("%scli: scanner: %s\n", stderrPrefix, errfmt.Inline(err)))
		_, _ = io.Copy(io.Discard, r)
	}
}

// readFramed feeds raw stdout through the backend's accumulator and emits
// every completed message, flushing the remainder at EOF.
func (l *Launcher) readFramed(r io.Reader, f Framer, agent agentcmd.Agent, em *emitter) {
	acc := f.NewAccumulator()
	emit := func(msgs []string) {
		for _, msg := range msgs {
			if line, ok := filter.Sanitize(agent, msg); ok {
				em.send(line + "\n")
			}
		}
	}

	buf := make([]byte, framerReadBuffer)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			emit(acc.Push(string(buf[:n])))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.opts.Logger.Debug("cli: stdout read error", "agent", agent, "error", err)
			}
			break
		}
	}
	emit(acc.Flush())
}
