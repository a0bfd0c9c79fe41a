// Command agentcmd launches agent CLIs and streams their output.
package main

import (
	"os"

	"github.com/dmora/agentcmd/cmd/agentcmd/commands"
)

func main() {
	os.Exit(commands.Execute())
}
