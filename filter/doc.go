// Package filter drops known non-semantic noise from agent output and
// provides composable channel middleware for chunk streams.
//
// [Sanitize] works on single lines and only touches Codex output: its npm
// wrapper prints Node.js deprecation warnings that are not agent output.
// Matching is exact or substring based, never fuzzy, so real errors that
// merely share vocabulary pass through.
package filter
