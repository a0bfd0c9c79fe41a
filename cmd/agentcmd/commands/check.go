package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli/builtin"
	"github.com/dmora/agentcmd/internal/ui"
)

func newCheckCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report which agent CLIs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := e.availability()
			out := cmd.OutOrStdout()
			if e.jsonOut {
				return json.NewEncoder(out).Encode(rows)
			}
			return ui.WriteAvailability(out, rows, ui.ShouldUseColor(outFile(out)))
		},
	}
}

// availability resolves the binary of every agent that spawns a process.
func (e *env) availability() []ui.Availability {
	r := e.resolver()
	var rows []ui.Availability
	for _, a := range agentcmd.Agents() {
		if a == agentcmd.AgentTest {
			continue
		}
		bin := builtin.For(a).Binary()
		row := ui.Availability{Agent: a, Binary: bin}
		if p, err := r.LookPath(bin); err == nil {
			row.Path, row.Available = p, true
		}
		rows = append(rows, row)
	}
	return rows
}
