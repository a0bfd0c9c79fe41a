// Package registry tracks live agent sessions.
//
// A [Registry] maps session ids to [ActiveSession] values and keeps a
// secondary index from agent+directory keys to the most recently
// registered id, so callers can find "the codex session in /repo" without
// knowing its id.
//
// # Locking
//
// Two mutexes guard the primary map and the index. Every operation that
// touches both acquires them in the same order (sessions, then index) and
// releases them before any blocking work such as killing processes or
// waiting out the quit grace period.
//
// # Lifecycle
//
// Sessions leave the registry in three ways: the launcher releases them
// when their process exits, [Registry.Terminate] evicts them on request,
// and [Registry.Sweep] evicts those idle longer than the idle timeout.
// Removal from both maps always happens before the process is signalled.
package registry
