package clitest

import (
	"slices"
	"strings"
	"testing"

	"github.com/dmora/agentcmd"
	"github.com/dmora/agentcmd/engine/cli"
)

// RunBackendTests runs all applicable compliance suites for a [cli.Backend].
// The optional [cli.Framer] capability is discovered via type assertion,
// mirroring how the Launcher resolves it at launch time.
func RunBackendTests(t *testing.T, factory func() cli.Backend) {
	t.Helper()

	t.Run("Metadata", func(t *testing.T) {
		runMetadata(t, factory)
	})
	t.Run("Args", func(t *testing.T) {
		RunArgsTests(t, factory)
	})

	if _, ok := factory().(cli.Framer); ok {
		t.Run("Framer", func(t *testing.T) {
			RunFramerTests(t, func() cli.Framer { return factory().(cli.Framer) })
		})
	}
}

// runMetadata tests the static descriptors every backend must provide.
func runMetadata(t *testing.T, factory func() cli.Backend) {
	t.Helper()

	t.Run("AgentNonEmpty", func(t *testing.T) {
		if factory().Agent() == "" {
			t.Error("agent must be non-empty")
		}
	})

	t.Run("BinaryUsable", func(t *testing.T) {
		binary := factory().Binary()
		if binary == "" {
			t.Error("binary must be non-empty")
		}
		if strings.Contains(binary, "\x00") {
			t.Error("binary must not contain null bytes")
		}
	})

	t.Run("QuitDirective", func(t *testing.T) {
		q := factory().QuitDirective()
		if !strings.HasPrefix(q, "/") {
			t.Errorf("quit directive %q must be a slash command", q)
		}
		if strings.ContainsAny(q, "\r\n") {
			t.Errorf("quit directive %q must not carry its own newline", q)
		}
	})

	t.Run("InstallHintTerminated", func(t *testing.T) {
		h := factory().InstallHint()
		if h == "" || !strings.HasSuffix(h, "\n") {
			t.Errorf("install hint %q must be a non-empty newline-terminated line", h)
		}
	})
}

// RunArgsTests tests the argument builder contract.
// The factory is called once per subtest to ensure fresh backend state.
func RunArgsTests(t *testing.T, factory func() cli.Backend) {
	t.Helper()

	t.Run("ZeroRequest", func(t *testing.T) {
		args := factory().Args(agentcmd.ArgsRequest{})
		if slices.Contains(args, "") {
			t.Errorf("zero request produced an empty argument: %q", args)
		}
	})

	t.Run("MessagePreservedVerbatim", func(t *testing.T) {
		const msg = "are you there? --not-a-flag"
		args := factory().Args(agentcmd.ArgsRequest{Message: msg})
		if n := countArg(args, msg); n != 1 {
			t.Errorf("message appears %d times in %q, want exactly once", n, args)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		req := agentcmd.ArgsRequest{
			Message:        "hello",
			ExecutionMode:  "full",
			PermissionMode: "plan",
			Settings:       agentcmd.AgentSettings{Model: "test-model"},
		}
		b := factory()
		if a1, a2 := b.Args(req), b.Args(req); !slices.Equal(a1, a2) {
			t.Errorf("Args not deterministic: %q vs %q", a1, a2)
		}
	})

	t.Run("NoNullBytesInArgs", func(t *testing.T) {
		args := factory().Args(agentcmd.ArgsRequest{
			Message:        "hello\x00world",
			PermissionMode: "plan\x00",
			Settings:       agentcmd.AgentSettings{Model: "gpt\x00evil"},
		})
		if i, ok := indexNullArg(args); ok {
			t.Errorf("args[%d] contains null bytes", i)
		}
	})

	t.Run("SettingsFailureDefaults", func(t *testing.T) {
		// A launch whose settings lookup failed builds with zero settings;
		// that must still yield a usable argument list.
		args := factory().Args(agentcmd.ArgsRequest{Message: "hi"})
		if !slices.Contains(args, "hi") {
			t.Errorf("args %q missing message", args)
		}
	})
}

// RunFramerTests tests the [cli.Framer] contract: every call returns an
// independent accumulator.
func RunFramerTests(t *testing.T, factory func() cli.Framer) {
	t.Helper()

	t.Run("FreshAccumulator", func(t *testing.T) {
		f := factory()
		a, b := f.NewAccumulator(), f.NewAccumulator()
		if a == nil || b == nil {
			t.Fatal("NewAccumulator returned nil")
		}
		a.Push("pending")
		if b.Buffered() != 0 {
			t.Error("accumulators must not share state")
		}
	})

	t.Run("GarbageNoPanic", func(t *testing.T) { //nolint:revive // no assertions, panics are the failure signal
		_ = t
		acc := factory().NewAccumulator()
		for _, input := range garbageCorpus {
			_ = acc.Push(input)
		}
		_ = acc.Flush()
	})
}

// garbageCorpus is a fixed set of adversarial inputs used by robustness tests.
var garbageCorpus = []string{
	"\x00",
	strings.Repeat("x", 65536),
	"\r\r\n\n",
	"\xff\xfe",
	"data:",
	"data: [done]\n",
	"event:\nid:\n",
}

// countArg reports how many elements of args equal s exactly.
func countArg(args []string, s string) int {
	n := 0
	for _, a := range args {
		if a == s {
			n++
		}
	}
	return n
}

// indexNullArg returns the index of the first arg containing a null byte.
func indexNullArg(args []string) (int, bool) {
	for i, a := range args {
		if strings.Contains(a, "\x00") {
			return i, true
		}
	}
	return 0, false
}
