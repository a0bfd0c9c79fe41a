// Package agentcmd launches, supervises, and tears down coding-agent CLI
// processes (Claude Code, Codex, Gemini) and streams their output to a caller
// as [StreamChunk] values.
//
// # Core Types
//
//   - [Agent]: closed set of supported agent tags, plus aliases
//   - [Session]: metadata for one tracked agent invocation (value type)
//   - [StreamChunk]: the wire unit delivered to a [Sink]
//   - [LaunchRequest]: what the caller asks the launcher to run
//   - [ArgsRequest]: what a backend needs to synthesize CLI arguments
//   - [SettingsProvider] and [Resolver]: external collaborators
//
// # Packages
//
// The root package defines the shared vocabulary. The engine/cli package
// spawns processes (pseudo-terminal or piped stdio) and owns the consumer-side
// Backend interface; engine/cli/claude, engine/cli/codex and engine/cli/gemini
// implement it. The registry package tracks live sessions, and the stream and
// filter packages frame and clean raw agent output.
//
// # Quick Start
//
//	reg := registry.New()
//	launcher := cli.NewLauncher(reg, builtin.Backends())
//	sink := agentcmd.NewChanSink(64)
//	run := launcher.Launch(ctx, agentcmd.LaunchRequest{
//	    Agent:   agentcmd.AgentClaude,
//	    Message: "explain main.go",
//	}, sink)
//	_ = agentcmd.Drain(ctx, sink.Chunks(), run.SessionID(), func(c agentcmd.StreamChunk) error {
//	    fmt.Print(c.Content)
//	    return nil
//	})
package agentcmd
