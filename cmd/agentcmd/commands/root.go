// Package commands implements the agentcmd command tree.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/config"
	"github.com/dmora/agentcmd/engine/cli/codex"
	"github.com/dmora/agentcmd/internal/logging"
)

// env is the state shared by subcommands, populated before any RunE.
type env struct {
	configPath string
	logLevel   string
	logFormat  string
	jsonOut    bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "agentcmd",
		Short: "Launch agent CLIs and stream their output",
		Long: `agentcmd runs claude, codex and gemini as subprocesses and streams
their output as it arrives.

A message starting with "/<agent>" is routed to that agent, so
"agentcmd run --agent claude /code fix the tests" runs codex.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/agentcmd/config.toml)")
	flags.StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&e.logFormat, "log-format", "", "log format: text or json (overrides config)")
	flags.BoolVar(&e.jsonOut, "json", false, "write machine-readable JSON output")

	rootCmd.AddCommand(
		newRunCommand(e),
		newArgsCommand(e),
		newParseCommand(e),
		newCheckCommand(e),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code. An
// agent that exited non-zero propagates its code; other failures exit 1.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if code, ok := agentcmd.ExitCode(err); ok && code > 0 {
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// load resolves the config file and builds the logger.
func (e *env) load(cmd *cobra.Command, _ []string) error {
	if e.configPath == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		e.configPath = p
	}
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	level, format := cfg.LogLevel, cfg.LogFormat
	if e.logLevel != "" {
		level = e.logLevel
	}
	if e.logFormat != "" {
		format = e.logFormat
	}
	logger, err := logging.New(level, format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	e.logger = logger.With("config", e.configPath)
	return nil
}

// resolver returns the executable resolver configured by extra_paths.
func (e *env) resolver() agentcmd.Resolver {
	return agentcmd.NewExecResolver(e.cfg.ExtraPaths...)
}

// validateMode rejects an execution mode the target agent does not know.
// Only codex has modes; other agents ignore the flag.
func validateMode(agent agentcmd.Agent, mode string) error {
	if mode == "" || agent != agentcmd.AgentCodex || codex.ValidMode(mode) {
		return nil
	}
	return fmt.Errorf("unknown codex mode %q (want %s, %s or %s)", mode, codex.ModeChat, codex.ModeCollab, codex.ModeFull)
}

// outFile returns w as an *os.File when it is one, for terminal detection.
func outFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
