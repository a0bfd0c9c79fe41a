//go:build !windows

package commands

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/config"
	"github.com/dmora/agentcmd/engine/cli"
	"github.com/dmora/agentcmd/engine/cli/builtin"
	"github.com/dmora/agentcmd/filter"
	"github.com/dmora/agentcmd/internal/ui"
	"github.com/dmora/agentcmd/registry"
)

const (
	shutdownTimeout = 5 * time.Second
	inputRetry      = 50 * time.Millisecond
	sinkBuffer      = 64
)

// errInterrupted is returned when a signal stopped the session.
var errInterrupted = errors.New("interrupted")

type runOptions struct {
	agent          string
	dir            string
	session        string
	mode           string
	permissionMode string
	bypass         bool
	stdin          bool
}

func newRunCommand(e *env) *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "run [flags] message...",
		Short: "Launch an agent with a message and stream its output",
		Long: `Launch an agent with a message and stream its output until it exits.

Without --dir the agent runs on a pseudo-terminal when one can be
allocated; with --dir it always runs with piped output.

With --stdin, lines read from standard input are forwarded to the agent
and end of input sends the agent's quit command.`,
		Example: `  agentcmd run --agent claude "explain main.go"
  agentcmd run --agent claude /code --mode full --bypass "fix the tests"
  agentcmd run --agent test hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.run(cmd, o, strings.Join(args, " "))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.agent, "agent", "a", string(agentcmd.AgentClaude), "agent to run: claude, codex, gemini, test")
	flags.StringVarP(&o.dir, "dir", "C", "", "working directory (forces piped output)")
	flags.StringVar(&o.session, "session", "", "session id (default: random UUID)")
	flags.StringVar(&o.mode, "mode", "", "execution mode (codex: chat, collab, full)")
	flags.StringVar(&o.permissionMode, "permission-mode", "", "permission mode override")
	flags.BoolVar(&o.bypass, "bypass", false, "request the most permissive flag set")
	flags.BoolVar(&o.stdin, "stdin", false, "forward standard input to the agent")
	return cmd
}

func (e *env) run(cmd *cobra.Command, o runOptions, message string) error {
	target, _ := agentcmd.ParseCommand(agentcmd.Agent(o.agent), message)
	if err := validateMode(target, o.mode); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := e.cfg
	reg := registry.New(
		registry.WithGracePeriod(cfg.GracePeriod.Duration),
		registry.WithIdleTimeout(cfg.IdleTimeout.Duration),
		registry.WithMaxSessions(cfg.MaxConcurrentSessions),
		registry.WithLogger(e.logger),
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := reg.TerminateAll(shutdownCtx); err != nil {
			e.logger.Warn("terminate sessions", "error", err)
		}
	}()

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go reg.RunSweeper(sweepCtx, cfg.SweepInterval.Duration)

	launcher := cli.NewLauncher(reg, builtin.Backends(),
		cli.WithResolver(e.resolver()),
		cli.WithSettings(config.FileSettings{Path: e.configPath}),
		cli.WithLogger(e.logger),
		cli.WithMaxSessions(cfg.MaxConcurrentSessions),
	)

	sink := agentcmd.NewChanSink(sinkBuffer)
	run := launcher.Launch(ctx, agentcmd.LaunchRequest{
		SessionID:       o.session,
		Agent:           agentcmd.Agent(o.agent),
		Message:         message,
		WorkingDir:      o.dir,
		ExecutionMode:   o.mode,
		DangerousBypass: o.bypass,
		PermissionMode:  o.permissionMode,
	}, sink)
	e.logger.Debug("launched", "session_id", run.SessionID(), "agent", o.agent)

	if o.stdin {
		go forwardInput(ctx, e.logger, reg, run, cmd.InOrStdin())
	}

	w := e.chunkWriter(cmd.OutOrStdout())

	// The launcher always emits a finished chunk, also after cancellation,
	// so draining is bound to the command context rather than the signal one.
	drainCtx, cancelDrain := context.WithCancel(cmd.Context())
	defer cancelDrain()
	chunks := filter.UntilFinished(drainCtx, filter.Session(drainCtx, sink.Chunks(), run.SessionID()))
	if err := agentcmd.Drain(drainCtx, chunks, run.SessionID(), func(c agentcmd.StreamChunk) error {
		w.Emit(c)
		return nil
	}); err != nil {
		return err
	}

	err := run.Wait(drainCtx)
	if ctx.Err() != nil && cmd.Context().Err() == nil {
		return errInterrupted
	}
	return err
}

func (e *env) chunkWriter(out io.Writer) *ui.ChunkWriter {
	if e.jsonOut {
		return ui.NewJSONChunkWriter(out)
	}
	return ui.NewChunkWriter(out, ui.ShouldUseColor(outFile(out)))
}

// forwardInput copies lines from r to the session's input. Lines read
// before the session registers are retried until it does or the run ends.
// End of input sends the quit directive.
func forwardInput(ctx context.Context, logger *slog.Logger, reg *registry.Registry, run *cli.Run, r io.Reader) {
	id := run.SessionID()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !deliver(ctx, logger, run, func() error { return reg.Send(ctx, id, scanner.Text()+"\n") }) {
			return
		}
	}
	deliver(ctx, logger, run, func() error { return reg.SendQuit(ctx, id) })
}

// deliver calls send until it stops reporting a missing session. Returns
// false once further input is pointless.
func deliver(ctx context.Context, logger *slog.Logger, run *cli.Run, send func() error) bool {
	for {
		err := send()
		if err == nil {
			return true
		}
		if !errors.Is(err, agentcmd.ErrSessionNotFound) {
			logger.Warn("forward input", "session_id", run.SessionID(), "error", err)
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-run.Done():
			return false
		case <-time.After(inputRetry):
		}
	}
}
