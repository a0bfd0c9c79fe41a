// Package stream reassembles discrete messages from agent output that mixes
// newline and bare carriage-return delimiters.
//
// Codex in particular separates messages with "\r" and interleaves progress
// redraws, so a newline-based reader would block until the process exits.
// [Accumulator] buffers raw text and splits on any run of "\r"/"\n" bytes,
// unwrapping event-stream framing ("data:" payloads) and dropping event-stream
// comment lines ("event:", "id:") along the way.
package stream
