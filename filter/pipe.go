package filter

import (
	"context"

	"github.com/dmora/agentcmd"
)

// Session returns a channel that only passes chunks for sessionID.
// Spawns a goroutine that exits when ctx is cancelled or ch is closed.
// The returned channel is closed when the goroutine exits.
func Session(ctx context.Context, ch <-chan agentcmd.StreamChunk, sessionID string) <-chan agentcmd.StreamChunk {
	return pipe(ctx, ch, func(c agentcmd.StreamChunk) (agentcmd.StreamChunk, bool) {
		return c, c.SessionID == sessionID
	})
}

// UntilFinished returns a channel that forwards chunks and closes right
// after the first finished chunk. Use it on a per-session stream.
func UntilFinished(ctx context.Context, ch <-chan agentcmd.StreamChunk) <-chan agentcmd.StreamChunk {
	out := make(chan agentcmd.StreamChunk)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-ch:
				if !ok {
					return
				}
				if !trySend(ctx, out, c) || c.Finished {
					return
				}
			}
		}
	}()
	return out
}

// pipe spawns a goroutine that reads from ch, passes chunks accepted by
// the predicate to the returned channel, and closes it when ch closes or
// ctx is cancelled. Callers must either drain the returned channel or
// cancel ctx to avoid goroutine leaks.
func pipe(ctx context.Context, ch <-chan agentcmd.StreamChunk, accept func(agentcmd.StreamChunk) (agentcmd.StreamChunk, bool)) <-chan agentcmd.StreamChunk {
	out := make(chan agentcmd.StreamChunk)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-ch:
				if !ok {
					return
				}
				if c, keep := accept(c); keep && !trySend(ctx, out, c) {
					return
				}
			}
		}
	}()
	return out
}

// trySend sends c on out, returning true on success.
// Returns false if ctx is cancelled before the send completes.
func trySend(ctx context.Context, out chan<- agentcmd.StreamChunk, c agentcmd.StreamChunk) bool {
	select {
	case out <- c:
		return true
	case <-ctx.Done():
		return false
	}
}
