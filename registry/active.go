package registry

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmora/agentcmd"
)

// Handle is the process-side capability a session needs for shutdown.
// Kill must be safe to call after the process has exited.
type Handle interface {
	Kill() error
}

// HandleFunc adapts a function to the Handle interface.
type HandleFunc func() error

// Kill calls f().
func (f HandleFunc) Kill() error { return f() }

// ActiveSession is a registered session plus its runtime handles.
//
// Close is the only way to release the process: it kills the handle once
// and closes Done. The input channel is owned by the launcher and is never
// closed by the registry.
type ActiveSession struct {
	session      agentcmd.Session
	lastActivity atomic.Int64

	mu     sync.Mutex
	handle Handle

	input     chan<- string
	inputOnce sync.Once
	inputDone chan struct{}
	quit      string

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// NewActiveSession wraps s with its process handle. input may be nil for
// sessions without interactive stdin; quit is the agent's quit directive.
func NewActiveSession(s agentcmd.Session, handle Handle, input chan<- string, quit string) *ActiveSession {
	as := &ActiveSession{
		session: s,
		handle:  handle,
		input:     input,
		inputDone: make(chan struct{}),
		quit:      quit,
		done:      make(chan struct{}),
	}
	as.lastActivity.Store(s.LastActivity)
	return as
}

// ID returns the session id.
func (as *ActiveSession) ID() string { return as.session.ID }

// Key returns the secondary-index key.
func (as *ActiveSession) Key() string { return as.session.Key() }

// Session returns a snapshot of the session metadata.
func (as *ActiveSession) Session() agentcmd.Session {
	s := as.session
	s.LastActivity = as.lastActivity.Load()
	select {
	case <-as.done:
		s.IsActive = false
	default:
	}
	return s
}

// Touch records output activity at now. Older timestamps are ignored.
func (as *ActiveSession) Touch(now time.Time) {
	ts := now.Unix()
	for {
		cur := as.lastActivity.Load()
		if ts <= cur || as.lastActivity.CompareAndSwap(cur, ts) {
			return
		}
	}
}

// HasInput reports whether the session accepts interactive input.
func (as *ActiveSession) HasInput() bool { return as.input != nil }

// CloseInput marks the input channel as no longer consumed. Later sends
// fail with agentcmd.ErrTerminated instead of queueing text nobody writes.
// The launcher calls it when its terminal writer stops. Idempotent.
func (as *ActiveSession) CloseInput() {
	as.inputOnce.Do(func() { close(as.inputDone) })
}

// QuitDirective returns the agent's quit directive.
func (as *ActiveSession) QuitDirective() string { return as.quit }

// Done is closed once Close has run.
func (as *ActiveSession) Done() <-chan struct{} { return as.done }

// Close kills the process handle if one is held. It is idempotent and safe
// for concurrent use; a process that already exited is not an error.
func (as *ActiveSession) Close() error {
	as.closeOnce.Do(func() {
		as.mu.Lock()
		h := as.handle
		as.handle = nil
		as.mu.Unlock()

		if h != nil {
			if err := h.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				as.closeErr = err
			}
		}
		close(as.done)
	})
	return as.closeErr
}

// send queues text on the input channel. A free buffer slot is taken
// without waiting; otherwise send blocks until the text is queued, the
// input or session closes, or ctx ends.
func (as *ActiveSession) send(ctx context.Context, text string) error {
	if as.input == nil {
		return agentcmd.ErrStdinUnavailable
	}
	select {
	case <-as.done:
		return agentcmd.ErrTerminated
	case <-as.inputDone:
		return agentcmd.ErrTerminated
	default:
	}
	select {
	case as.input <- text:
		return nil
	default:
	}
	select {
	case as.input <- text:
		return nil
	case <-as.done:
		return agentcmd.ErrTerminated
	case <-as.inputDone:
		return agentcmd.ErrTerminated
	case <-ctx.Done():
		return ctx.Err()
	}
}
