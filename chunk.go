package agentcmd

import "context"

// EventCLIStream is the event name under which chunks are published to UI
// layers that use named events.
const EventCLIStream = "cli-stream"

// StreamChunk is the unit of streamed output delivered to the caller.
//
// Content framing depends on the spawn strategy: pseudo-terminal sessions
// deliver raw reads (redraws, carriage returns, partial lines), piped
// sessions deliver newline-terminated lines. Consumers must not assume
// chunks are line-aligned.
type StreamChunk struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`

	// Finished marks the terminal chunk of the current invocation.
	// Exactly one finished chunk is emitted per launch.
	Finished bool `json:"finished"`
}

// Sink receives chunks from running sessions. Implementations must be safe
// for concurrent use: stdout and stderr readers emit independently.
type Sink interface {
	Emit(chunk StreamChunk)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(StreamChunk)

// Emit calls f(chunk).
func (f SinkFunc) Emit(chunk StreamChunk) { f(chunk) }

// ChanSink delivers chunks over a buffered channel. Emit blocks when the
// buffer is full, applying backpressure to the emitting reader.
type ChanSink struct {
	ch chan StreamChunk
}

// NewChanSink creates a ChanSink with the given buffer size.
// Sizes <= 0 use an unbuffered channel.
func NewChanSink(size int) *ChanSink {
	if size < 0 {
		size = 0
	}
	return &ChanSink{ch: make(chan StreamChunk, size)}
}

// Emit sends chunk on the channel.
func (s *ChanSink) Emit(chunk StreamChunk) { s.ch <- chunk }

// Chunks returns the receive side of the sink. It is never closed; sessions
// signal completion with a Finished chunk instead.
func (s *ChanSink) Chunks() <-chan StreamChunk { return s.ch }

// Drain reads chunks for sessionID from ch until that session's finished
// chunk arrives, calling handler for each one (including the finished
// chunk). Chunks for other sessions are skipped.
//
// Returns nil after the finished chunk, the handler's error if it returns
// one, ErrTerminated if ch closes first, or ctx.Err() on cancellation.
func Drain(ctx context.Context, ch <-chan StreamChunk, sessionID string, handler func(StreamChunk) error) error {
	for {
		select {
		case chunk, ok := <-ch:
			if !ok {
				return ErrTerminated
			}
			if chunk.SessionID != sessionID {
				continue
			}
			if err := handler(chunk); err != nil {
				return err
			}
			if chunk.Finished {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
