package filter

import (
	"context"
	"testing"

	"github.com/dmora/agentcmd"
)

func chunk(id, content string, finished bool) agentcmd.StreamChunk {
	return agentcmd.StreamChunk{SessionID: id, Content: content, Finished: finished}
}

func fill(ch chan<- agentcmd.StreamChunk, chunks ...agentcmd.StreamChunk) {
	for _, c := range chunks {
		ch <- c
	}
	close(ch)
}

func drain(ch <-chan agentcmd.StreamChunk) []agentcmd.StreamChunk {
	var out []agentcmd.StreamChunk
	for c := range ch {
		out = append(out, c)
	}
	return out
}

// --- Session tests ---

func TestSession_PassesOnlyMatchingID(t *testing.T) {
	in := make(chan agentcmd.StreamChunk, 4)
	go fill(in,
		chunk("a", "1", false),
		chunk("b", "x", false),
		chunk("a", "2", true),
		chunk("b", "y", true),
	)

	got := drain(Session(context.Background(), in, "a"))
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if got[0].Content != "1" || got[1].Content != "2" || !got[1].Finished {
		t.Errorf("unexpected chunks: %+v", got)
	}
}

func TestSession_ContextCancellation(_ *testing.T) {
	in := make(chan agentcmd.StreamChunk)
	ctx, cancel := context.WithCancel(context.Background())
	out := Session(ctx, in, "a")

	cancel()

	// Output channel should close after ctx cancel.
	drain(out)
}

// --- UntilFinished tests ---

func TestUntilFinished_ClosesAfterFinished(t *testing.T) {
	in := make(chan agentcmd.StreamChunk, 3)
	in <- chunk("a", "1", false)
	in <- chunk("a", "done", true)
	in <- chunk("a", "never", false)

	got := drain(UntilFinished(context.Background(), in))
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if !got[1].Finished {
		t.Error("last chunk should be finished")
	}
}

func TestUntilFinished_EmptyInput(t *testing.T) {
	in := make(chan agentcmd.StreamChunk)
	close(in)

	if got := drain(UntilFinished(context.Background(), in)); len(got) != 0 {
		t.Errorf("got %d chunks, want 0", len(got))
	}
}
