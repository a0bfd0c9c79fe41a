package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli/builtin"
)

type argsOptions struct {
	agent          string
	mode           string
	permissionMode string
	bypass         bool
}

// argvResult is the --json shape of the args command.
type argvResult struct {
	Agent   agentcmd.Agent `json:"agent"`
	Binary  string         `json:"binary"`
	Args    []string       `json:"args"`
	Message string         `json:"message"`
}

func newArgsCommand(e *env) *cobra.Command {
	var o argsOptions
	cmd := &cobra.Command{
		Use:   "args [flags] message...",
		Short: "Print the command line a message would launch",
		Long: `Print the command line "run" would execute for a message, one
argument per line, without starting anything. Settings from the config
file apply the same way they do for "run".`,
		Example: `  agentcmd args --agent claude "fix the tests"
  agentcmd args --agent claude /code --mode full --bypass hello`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := e.argv(o, strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if e.jsonOut {
				return json.NewEncoder(out).Encode(res)
			}
			fmt.Fprintln(out, res.Binary)
			for _, a := range res.Args {
				fmt.Fprintln(out, a)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.agent, "agent", "a", string(agentcmd.AgentClaude), "current agent: claude, codex, gemini")
	flags.StringVar(&o.mode, "mode", "", "execution mode (codex: chat, collab, full)")
	flags.StringVar(&o.permissionMode, "permission-mode", "", "permission mode override")
	flags.BoolVar(&o.bypass, "bypass", false, "request the most permissive flag set")
	return cmd
}

// argv resolves the target agent and builds its command line.
func (e *env) argv(o argsOptions, message string) (argvResult, error) {
	agent, payload := agentcmd.ParseCommand(agentcmd.Agent(o.agent), message)
	if err := validateMode(agent, o.mode); err != nil {
		return argvResult{}, err
	}
	backend := builtin.For(agent)
	req := agentcmd.NewArgsRequest(payload, agentcmd.LaunchRequest{
		Agent:           agent,
		Message:         message,
		ExecutionMode:   o.mode,
		DangerousBypass: o.bypass,
		PermissionMode:  o.permissionMode,
	}, e.cfg.AgentSettings(agent))

	args := backend.Args(req)
	if args == nil {
		args = []string{}
	}
	return argvResult{
		Agent:   agent,
		Binary:  agentcmd.ResolveBinary(e.resolver(), backend.Binary()),
		Args:    args,
		Message: payload,
	}, nil
}
