package codex

import (
	"slices"
	"testing"

	"github.com/dmora/agentcmd"
)

const (
	testPrompt = "fix the tests"
	testModel  = "gpt-5-codex"
)

func TestArgs_ExactSequence(t *testing.T) {
	tests := []struct {
		name string
		req  agentcmd.ArgsRequest
		want []string
	}{
		{
			name: "message only",
			req:  agentcmd.ArgsRequest{Message: testPrompt},
			want: []string{"exec", testPrompt},
		},
		{
			name: "empty message no mode",
			req:  agentcmd.ArgsRequest{},
			want: []string{"exec"},
		},
		{
			name: "model before mode flags",
			req: agentcmd.ArgsRequest{
				Message:       testPrompt,
				ExecutionMode: "chat",
				Settings:      agentcmd.AgentSettings{Model: testModel},
			},
			want: []string{"exec", "--model", testModel, "--sandbox", "read-only", testPrompt},
		},
		{
			name: "collab",
			req:  agentcmd.ArgsRequest{Message: testPrompt, ExecutionMode: "collab"},
			want: []string{"exec", "--full-auto", testPrompt},
		},
		{
			name: "full",
			req:  agentcmd.ArgsRequest{Message: testPrompt, ExecutionMode: "full"},
			want: []string{"exec", "--sandbox", "danger-full-access", testPrompt},
		},
		{
			name: "full with bypass",
			req:  agentcmd.ArgsRequest{Message: testPrompt, ExecutionMode: "full", DangerousBypass: true},
			want: []string{"exec", "--dangerously-bypass-approvals-and-sandbox", testPrompt},
		},
		{
			name: "bypass ignored outside full",
			req:  agentcmd.ArgsRequest{Message: testPrompt, ExecutionMode: "collab", DangerousBypass: true},
			want: []string{"exec", "--full-auto", testPrompt},
		},
		{
			name: "bypass ignored without mode",
			req:  agentcmd.ArgsRequest{Message: testPrompt, DangerousBypass: true},
			want: []string{"exec", testPrompt},
		},
		{
			name: "unknown mode emits nothing",
			req:  agentcmd.ArgsRequest{Message: testPrompt, ExecutionMode: "yolo"},
			want: []string{"exec", testPrompt},
		},
		{
			name: "permission mode ignored",
			req:  agentcmd.ArgsRequest{Message: testPrompt, PermissionMode: "plan"},
			want: []string{"exec", testPrompt},
		},
		{
			name: "null byte message dropped",
			req:  agentcmd.ArgsRequest{Message: "a\x00b", ExecutionMode: "chat"},
			want: []string{"exec", "--sandbox", "read-only"},
		},
		{
			name: "null byte model dropped",
			req:  agentcmd.ArgsRequest{Message: testPrompt, Settings: agentcmd.AgentSettings{Model: "m\x00"}},
			want: []string{"exec", testPrompt},
		},
	}

	b := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Args(tt.req)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Args() = %q\nwant     %q", got, tt.want)
			}
		})
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []string{"chat", "collab", "full"} {
		if !ValidMode(m) {
			t.Errorf("ValidMode(%q) = false", m)
		}
	}
	for _, m := range []string{"", "Chat", "plan"} {
		if ValidMode(m) {
			t.Errorf("ValidMode(%q) = true", m)
		}
	}
}

func TestBackend_Metadata(t *testing.T) {
	b := New(WithBinary("/usr/local/bin/codex"))
	if b.Agent() != agentcmd.AgentCodex {
		t.Errorf("Agent() = %q", b.Agent())
	}
	if b.Binary() != "/usr/local/bin/codex" {
		t.Errorf("Binary() = %q", b.Binary())
	}
	if b.QuitDirective() != "/exit" {
		t.Errorf("QuitDirective() = %q, want /exit", b.QuitDirective())
	}
	if b.InstallHint() != installHint {
		t.Errorf("InstallHint() = %q", b.InstallHint())
	}
}

func TestNewAccumulator_Fresh(t *testing.T) {
	b := New()
	a1 := b.NewAccumulator()
	a2 := b.NewAccumulator()
	if a1 == a2 {
		t.Fatal("NewAccumulator must return a new instance per stream")
	}
	a1.Push("partial")
	if a2.Buffered() != 0 {
		t.Errorf("accumulators share state: %d bytes", a2.Buffered())
	}
	got := a1.Push(" line\ndata: [DONE]\n")
	if !slices.Equal(got, []string{"partial line"}) {
		t.Errorf("Push() = %q", got)
	}
}
