package cli

import (
	"context"
	"time"
)

// simulatedLines returns the test agent's canned transcript.
func simulatedLines(message string) []string {
	return []string{
		"🔍 Processing your request...",
		"📝 Analyzing the message...",
		"💭 You said: " + message,
		"✅ CLI streaming is working correctly!",
		"🚀 All systems operational.",
	}
}

// simulate streams the test agent's transcript, one line per delay. The
// last line is the finished chunk. Cancellation finishes early with an
// interruption notice.
func simulate(ctx context.Context, message string, delay time.Duration, em *emitter) error {
	lines := simulatedLines(message)
	for i, line := range lines {
		if err := sleepCtx(ctx, delay); err != nil {
			em.finish(msgInterrupted)
			return err
		}
		if i == len(lines)-1 {
			em.finish(line + "\n")
		} else {
			em.send(line + "\n")
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
