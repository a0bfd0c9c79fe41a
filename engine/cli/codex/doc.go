// Package codex provides the Codex CLI backend.
//
// Codex runs one-shot through "codex exec". The invocation is:
//
//	codex exec [--model <model>] [mode flags] [message]
//
// # Execution modes
//
//   - chat   → --sandbox read-only
//   - collab → --full-auto
//   - full   → --sandbox danger-full-access, or
//     --dangerously-bypass-approvals-and-sandbox when a dangerous bypass
//     was requested
//
// Empty or unrecognized modes emit no mode flags, and the bypass request
// is ignored outside full mode.
//
// # Output framing
//
// Codex stdout is not reliably newline-delimited and may carry SSE-style
// "data:" framing, so the backend implements cli.Framer and the launcher
// frames stdout through a stream.Accumulator. Node runtime warnings that
// the CLI prints are dropped by the filter package.
//
// The interactive quit directive is "/exit".
package codex
