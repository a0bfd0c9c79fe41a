package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCommand(_ *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run [flags] message...",
		Short: "Launch an agent with a message and stream its output",
		RunE: func(*cobra.Command, []string) error {
			return errors.New("run is not supported on windows")
		},
	}
}
