package stream

import "strings"

// Event-stream markers recognized in segments.
const (
	dataPrefix  = "data:"
	eventPrefix = "event:"
	idPrefix    = "id:"
	doneMarker  = "[DONE]"
)

// Accumulator incrementally splits a text stream into messages.
//
// A run of one or more consecutive '\r'/'\n' bytes is a single boundary, so
// "\r\n" pairs and repeated redraw separators never yield empty messages.
// Text after the last boundary stays buffered until more input arrives or
// Flush is called.
//
// One Accumulator per stream; it is not safe for concurrent use.
type Accumulator struct {
	buf strings.Builder
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// Push appends chunk to the buffer and returns every message completed by it,
// in stream order.
func (a *Accumulator) Push(chunk string) []string {
	if chunk == "" {
		return nil
	}
	a.buf.WriteString(chunk)
	data := a.buf.String()

	var out []string
	start := 0
	for i := 0; i < len(data); {
		if !isSeparator(data[i]) {
			i++
			continue
		}
		if start < i {
			out = appendSegment(out, data[start:i])
		}
		for i < len(data) && isSeparator(data[i]) {
			i++
		}
		start = i
	}

	if start > 0 {
		rest := data[start:]
		a.buf.Reset()
		a.buf.WriteString(rest)
	}
	return out
}

// Flush processes whatever is still buffered, as if the stream ended with a
// boundary, and returns all resulting messages. The buffer is empty
// afterwards.
func (a *Accumulator) Flush() []string {
	if a.buf.Len() == 0 {
		return nil
	}
	rest := a.buf.String()
	a.buf.Reset()
	return appendSegment(nil, rest)
}

// Buffered reports how many bytes are waiting for a boundary.
func (a *Accumulator) Buffered() int {
	return a.buf.Len()
}

// Segment classifies one boundary-delimited segment. It returns the message
// to emit and true, or false if the segment carries nothing worth emitting.
func Segment(segment string) (string, bool) {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return "", false
	}

	if rest, ok := strings.CutPrefix(trimmed, dataPrefix); ok {
		payload := strings.TrimSpace(rest)
		if payload == "" || strings.EqualFold(payload, doneMarker) {
			return "", false
		}
		return payload, true
	}

	if strings.HasPrefix(trimmed, eventPrefix) || strings.HasPrefix(trimmed, idPrefix) {
		return "", false
	}
	return trimmed, true
}

func appendSegment(out []string, segment string) []string {
	if msg, ok := Segment(segment); ok {
		out = append(out, msg)
	}
	return out
}

func isSeparator(b byte) bool {
	return b == '\r' || b == '\n'
}
