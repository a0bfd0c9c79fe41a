package cli

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/registry"
)

// Run is the handle for one launch. All output goes to the launch's Sink;
// Run only reports when the background work has ended.
type Run struct {
	id   string
	done chan struct{}
	err  error // set before done closes
}

// SessionID returns the session id the launch reports under. It is
// generated when the request left it empty.
func (r *Run) SessionID() string { return r.id }

// Done is closed after the finished chunk has been emitted.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the launch ends or ctx is done. It returns the
// launch's internal outcome (nil, an *agentcmd.ExitError, or a wrapped
// sentinel such as agentcmd.ErrExecutableNotFound) for logging; callers
// already saw the same outcome as a chunk.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// emitter stamps chunks with the session id, refreshes the registered
// session's activity, and guarantees a single finished chunk.
type emitter struct {
	sink  agentcmd.Sink
	id    string
	clock func() time.Time

	active atomic.Pointer[registry.ActiveSession]

	mu       sync.Mutex
	finished bool
}

func newEmitter(sink agentcmd.Sink, id string, clock func() time.Time) *emitter {
	return &emitter{sink: sink, id: id, clock: clock}
}

// attach routes activity to as.
func (e *emitter) attach(as *registry.ActiveSession) { e.active.Store(as) }

// send emits a non-final chunk. Chunks after the finished one are dropped.
func (e *emitter) send(content string) {
	e.emit(content, false)
}

// finish emits the finished chunk once; later calls are no-ops.
func (e *emitter) finish(content string) {
	e.emit(content, true)
}

func (e *emitter) emit(content string, finished bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.finished = finished
	if as := e.active.Load(); as != nil {
		as.Touch(e.clock())
	}
	e.sink.Emit(agentcmd.StreamChunk{SessionID: e.id, Content: content, Finished: finished})
}

// isFinished reports whether the finished chunk has gone out.
func (e *emitter) isFinished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}
