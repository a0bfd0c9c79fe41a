// Package cli spawns and supervises agent CLI subprocesses.
//
// A [Backend] defines how an agent's command line is built. [NewLauncher]
// combines a set of backends with a session registry; [Launcher.Launch]
// accepts a request, returns a [Run] handle immediately, and does all
// spawning and streaming on background goroutines. Every outcome, including
// failures, is reported through the caller's [agentcmd.Sink] and ends with
// exactly one finished chunk.
//
// # Spawn Strategies
//
// With an explicit working directory the launcher always uses piped stdio
// (stdout and stderr scanned line by line). Without one it first tries a
// pseudo-terminal of fixed geometry, which preserves carriage-return redraws
// and keeps an input channel open; if the terminal cannot be allocated it
// emits a diagnostic chunk and falls back to pipes.
//
// # Platform Support
//
// The launcher uses Unix process groups and pseudo-terminals and is not
// available on Windows. The interface types are available on all platforms.
package cli
