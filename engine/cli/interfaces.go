// This file defines the consumer-side interfaces for CLI backends:
//
//   - Backend: per-agent argument synthesis, quit directive, install help
//   - Framer: optional, for stdout that needs accumulator framing
//
// Interfaces are defined here (at the consumer side) rather than in backend
// packages, following Go interface ownership conventions. Backend packages
// (claude, codex, gemini, passthrough) provide concrete implementations.
package cli

import (
	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/stream"
)

// Backend describes how to drive one agent CLI.
type Backend interface {
	// Agent returns the agent tag this backend serves.
	Agent() agentcmd.Agent

	// Binary returns the command name (or path) to execute.
	Binary() string

	// Args builds the ordered CLI arguments for req. Order is part of the
	// contract: some agent CLIs are positional-sensitive. Args must not
	// fail; invalid values are skipped.
	Args(req agentcmd.ArgsRequest) []string

	// QuitDirective is the literal (without trailing newline) that asks an
	// interactive session to exit.
	QuitDirective() string

	// InstallHint is shown when the binary cannot be found.
	InstallHint() string
}

// Framer is implemented by backends whose stdout is not reliably
// newline-delimited. The launcher feeds raw stdout bytes through the
// returned accumulator instead of a line scanner.
type Framer interface {
	NewAccumulator() *stream.Accumulator
}
