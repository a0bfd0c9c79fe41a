//go:build !windows

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli/passthrough"
	"github.com/dmora/agentcmd/internal/errfmt"
	"github.com/dmora/agentcmd/registry"
)

// Launcher turns launch requests into supervised agent processes.
// A Launcher is safe for concurrent use.
type Launcher struct {
	reg      *registry.Registry
	backends map[agentcmd.Agent]Backend
	opts     LauncherOptions

	slots chan struct{} // nil when unlimited
}

// NewLauncher creates a Launcher that registers sessions in reg and builds
// command lines with backends. Agents missing from backends run through a
// passthrough backend named after the agent.
func NewLauncher(reg *registry.Registry, backends map[agentcmd.Agent]Backend, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		reg:      reg,
		backends: make(map[agentcmd.Agent]Backend, len(backends)),
		opts:     resolveLauncherOptions(opts...),
	}
	for a, b := range backends {
		l.backends[a] = b
	}
	if l.opts.MaxSessions > 0 {
		l.slots = make(chan struct{}, l.opts.MaxSessions)
	}
	return l
}

// Backend returns the backend used for agent.
func (l *Launcher) Backend(agent agentcmd.Agent) Backend {
	if b, ok := l.backends[agent]; ok {
		return b
	}
	return passthrough.New(agent)
}

// Launch starts req in the background and returns immediately. Every
// outcome is reported through sink and ends with exactly one finished
// chunk. Canceling ctx terminates the process group.
func (l *Launcher) Launch(ctx context.Context, req agentcmd.LaunchRequest, sink agentcmd.Sink) *Run {
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	run := &Run{id: id, done: make(chan struct{})}
	em := newEmitter(sink, id, l.reg.Now)

	go func() {
		defer close(run.done)
		defer func() {
			if r := recover(); r != nil {
				run.err = fmt.Errorf("cli: launch panic: %v", r)
				l.opts.Logger.Error("cli: launch panic", "session_id", id, "panic", r)
			}
			// Whatever happened, the caller gets its finished chunk.
			if !em.isFinished() {
				em.finish(fmt.Sprintf(msgProcessError, errfmt.Inline(run.err)))
			}
		}()
		run.err = l.run(ctx, id, req, em)
		if run.err != nil {
			l.opts.Logger.Debug("cli: launch ended", "session_id", id, "error", run.err)
		}
	}()
	return run
}

// run is the launch flow. It returns the internal outcome; the user-facing
// rendering of that outcome has already been emitted when it returns.
func (l *Launcher) run(ctx context.Context, id string, req agentcmd.LaunchRequest, em *emitter) error {
	agent, payload := agentcmd.ParseCommand(req.Agent, req.Message)
	em.send(fmt.Sprintf(msgInfo, agent, payload))

	if agent == agentcmd.AgentTest {
		return simulate(ctx, payload, l.opts.SimulatorDelay, em)
	}

	release, ok := l.acquire()
	if !ok {
		em.finish(fmt.Sprintf(msgTooMany, l.opts.MaxSessions))
		return agentcmd.ErrTooManySessions
	}
	defer release()

	b := l.Backend(agent)
	if !agentcmd.Available(l.opts.Resolver, b.Binary()) {
		em.send(fmt.Sprintf(msgNotInstalled, agent))
		em.finish(b.InstallHint())
		return fmt.Errorf("%w: %s", agentcmd.ErrExecutableNotFound, b.Binary())
	}

	settings, err := agentcmd.LoadSettings(ctx, l.opts.Settings, agent)
	if err != nil {
		l.opts.Logger.Warn("cli: settings unavailable, using defaults", "agent", agent, "error", err)
	}

	sp := spawnPlan{
		session: agentcmd.NewSession(id, agent, payload, req.WorkingDir, l.reg.Now()),
		backend: b,
		binary:  agentcmd.ResolveBinary(l.opts.Resolver, b.Binary()),
		args:    b.Args(agentcmd.NewArgsRequest(payload, req, settings)),
	}
	l.opts.Logger.Info("cli: launching", "session_id", id, "agent", agent, "binary", sp.binary, "args", len(sp.args))

	if req.WorkingDir == "" {
		err := l.runPTY(ctx, sp, em)
		if !errors.Is(err, agentcmd.ErrPtyOpen) {
			return err
		}
		l.opts.Logger.Warn("cli: pty unavailable, falling back to pipes", "session_id", id, "error", err)
		em.send(fmt.Sprintf(msgPTYUnavailable, errfmt.Inline(errors.Unwrap(err))))
	}
	return l.runPiped(ctx, sp, em)
}

// spawnPlan is everything a spawn strategy needs.
type spawnPlan struct {
	session agentcmd.Session
	backend Backend
	binary  string
	args    []string
}

// acquire reserves a launch slot.
func (l *Launcher) acquire() (release func(), ok bool) {
	if l.slots == nil {
		return func() {}, true
	}
	select {
	case l.slots <- struct{}{}:
		return func() { <-l.slots }, true
	default:
		return nil, false
	}
}

// register records the spawned process. On failure the process group is
// killed and a finished chunk is emitted; the caller must still reap the
// process.
func (l *Launcher) register(sp spawnPlan, pg processGroup, input chan<- string, em *emitter) (*registry.ActiveSession, error) {
	as := registry.NewActiveSession(sp.session, pg, input, sp.backend.QuitDirective())
	if err := l.reg.Register(as); err != nil {
		_ = pg.Kill()
		em.finish(fmt.Sprintf(msgTooMany, l.reg.Len()))
		return nil, err
	}
	em.attach(as)
	return as, nil
}
