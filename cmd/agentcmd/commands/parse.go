package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmora/agentcmd"
)

func newParseCommand(e *env) *cobra.Command {
	var current string
	cmd := &cobra.Command{
		Use:   "parse [flags] message...",
		Short: "Show which agent a message routes to",
		Example: `  agentcmd parse /code fix the tests
  agentcmd parse --agent gemini "/unknown thing"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, payload := agentcmd.ParseCommand(agentcmd.Agent(current), strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if e.jsonOut {
				return json.NewEncoder(out).Encode(struct {
					Agent   agentcmd.Agent `json:"agent"`
					Message string         `json:"message"`
				}{agent, payload})
			}
			_, err := fmt.Fprintf(out, "%s\t%s\n", agent, payload)
			return err
		},
	}
	cmd.Flags().StringVarP(&current, "agent", "a", string(agentcmd.AgentClaude), "current agent")
	return cmd
}
