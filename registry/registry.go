package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmora/agentcmd"
)

// terminateConcurrency bounds parallel shutdowns in TerminateAll and Sweep.
const terminateConcurrency = 8

// Registry is the session table. The zero value is not usable; call New.
type Registry struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*ActiveSession

	indexMu sync.Mutex
	index   map[string]string // SessionKey -> most recent session id
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	return &Registry{
		opts:     resolveOptions(opts...),
		sessions: make(map[string]*ActiveSession),
		index:    make(map[string]string),
	}
}

// Now returns the registry clock's current time.
func (r *Registry) Now() time.Time { return r.opts.Clock() }

// Register inserts as, replacing any entry with the same id. A replaced
// entry is closed after the locks are released. Returns
// agentcmd.ErrTooManySessions when the limit is reached.
func (r *Registry) Register(as *ActiveSession) error {
	old, err := r.insert(as)
	if err != nil {
		return err
	}
	if old != nil && old != as {
		r.opts.Logger.Debug("registry: replacing session", "session_id", as.ID())
		if err := old.Close(); err != nil {
			r.opts.Logger.Warn("registry: close replaced session", "session_id", as.ID(), "error", err)
		}
	}
	return nil
}

func (r *Registry) insert(as *ActiveSession) (*ActiveSession, error) {
	id := as.ID()

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.sessions[id]
	if old == nil && r.opts.MaxSessions > 0 && len(r.sessions) >= r.opts.MaxSessions {
		return nil, fmt.Errorf("registry: %d sessions: %w", len(r.sessions), agentcmd.ErrTooManySessions)
	}
	r.sessions[id] = as

	r.indexMu.Lock()
	if old != nil && r.index[old.Key()] == id {
		delete(r.index, old.Key())
	}
	r.index[as.Key()] = id
	r.indexMu.Unlock()

	r.opts.Logger.Debug("registry: registered", "session_id", id, "key", as.Key())
	return old, nil
}

// Get returns the session registered under id.
func (r *Registry) Get(id string) (*ActiveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	as, ok := r.sessions[id]
	return as, ok
}

// Lookup returns the most recently registered session for agent in dir.
func (r *Registry) Lookup(agent agentcmd.Agent, dir string) (*ActiveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexMu.Lock()
	id, ok := r.index[agentcmd.SessionKey(agent, dir)]
	r.indexMu.Unlock()
	if !ok {
		return nil, false
	}
	as, ok := r.sessions[id]
	return as, ok
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Status returns a snapshot of every registered session.
func (r *Registry) Status() agentcmd.SessionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]agentcmd.Session, 0, len(r.sessions))
	for _, as := range r.sessions {
		out = append(out, as.Session())
	}
	return agentcmd.SessionStatus{ActiveSessions: out, TotalSessions: len(out)}
}

// Release removes id if it is still owned by as, then closes as. It is how
// the launcher retires a session whose process exited on its own; a newer
// registration under the same id is left untouched.
func (r *Registry) Release(id string, as *ActiveSession) bool {
	r.mu.Lock()
	owned := r.sessions[id] == as
	if owned {
		r.removeLocked(id)
	}
	r.mu.Unlock()

	if err := as.Close(); err != nil {
		r.opts.Logger.Debug("registry: close released session", "session_id", id, "error", err)
	}
	return owned
}

// remove detaches id from both maps and returns the entry, or nil.
func (r *Registry) remove(id string) *ActiveSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id)
}

// removeLocked requires r.mu.
func (r *Registry) removeLocked(id string) *ActiveSession {
	as, ok := r.sessions[id]
	if !ok {
		return nil
	}
	delete(r.sessions, id)

	r.indexMu.Lock()
	if r.index[as.Key()] == id {
		delete(r.index, as.Key())
	}
	r.indexMu.Unlock()
	return as
}

// Terminate evicts id and shuts its process down. Sessions with
// interactive input first receive their quit directive and get the grace
// period to exit on their own. Queueing the directive is itself bounded by
// the grace period, so a session whose input queue is full is still killed.
// Unknown ids are not an error.
func (r *Registry) Terminate(ctx context.Context, id string) error {
	as := r.remove(id)
	if as == nil {
		return nil
	}
	r.opts.Logger.Info("registry: terminating session", "session_id", id)

	if as.HasInput() {
		if err := r.deliverQuit(ctx, as); err == nil {
			r.wait(ctx, as)
		} else {
			r.opts.Logger.Debug("registry: quit directive not delivered", "session_id", id, "error", err)
		}
	}
	if err := as.Close(); err != nil {
		return fmt.Errorf("registry: kill %s: %w", id, err)
	}
	return nil
}

// deliverQuit queues the quit directive, giving up after the grace period.
func (r *Registry) deliverQuit(ctx context.Context, as *ActiveSession) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.GracePeriod)
	defer cancel()
	return as.send(ctx, as.QuitDirective()+"\n")
}

// wait sleeps for the grace period, returning early if the session closes
// or ctx ends.
func (r *Registry) wait(ctx context.Context, as *ActiveSession) {
	if r.opts.GracePeriod <= 0 {
		return
	}
	t := time.NewTimer(r.opts.GracePeriod)
	defer t.Stop()
	select {
	case <-t.C:
	case <-as.Done():
	case <-ctx.Done():
	}
}

// TerminateAll terminates every registered session concurrently. A failure
// on one session is logged and does not stop the others; all failures are
// returned joined.
func (r *Registry) TerminateAll(ctx context.Context) error {
	return r.terminateEach(ctx, r.ids(func(*ActiveSession) bool { return true }))
}

// Sweep terminates sessions idle for strictly longer than the idle timeout
// and returns how many it evicted.
func (r *Registry) Sweep(ctx context.Context) (int, error) {
	now := r.opts.Clock()
	stale := r.ids(func(as *ActiveSession) bool {
		return as.Session().IdleFor(now) > r.opts.IdleTimeout
	})
	if len(stale) > 0 {
		r.opts.Logger.Info("registry: sweeping idle sessions", "count", len(stale))
	}
	return len(stale), r.terminateEach(ctx, stale)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				r.opts.Logger.Warn("registry: sweep", "error", err)
			}
		}
	}
}

// SendQuit queues the session's quit directive on its input channel.
func (r *Registry) SendQuit(ctx context.Context, id string) error {
	as, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("registry: %s: %w", id, agentcmd.ErrSessionNotFound)
	}
	return as.send(ctx, as.QuitDirective()+"\n")
}

// Send writes text to the session's interactive input.
func (r *Registry) Send(ctx context.Context, id, text string) error {
	as, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("registry: %s: %w", id, agentcmd.ErrSessionNotFound)
	}
	return as.send(ctx, text)
}

func (r *Registry) ids(match func(*ActiveSession) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, as := range r.sessions {
		if match(as) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *Registry) terminateEach(ctx context.Context, ids []string) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(terminateConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := r.Terminate(ctx, id); err != nil {
				r.opts.Logger.Warn("registry: terminate failed", "session_id", id, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
