//go:build !windows

package agentcmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExecResolver_PATH(t *testing.T) {
	r := &ExecResolver{}
	p, err := r.LookPath("sh")
	if err != nil {
		t.Fatalf("LookPath(sh): %v", err)
	}
	if !filepath.IsAbs(p) {
		t.Errorf("path %q is not absolute", p)
	}
}

func TestExecResolver_ExtraPaths(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "agentcmd-fake-agent")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := &ExecResolver{ExtraPaths: []string{filepath.Join(dir, "missing"), dir}}
	got, err := r.LookPath("agentcmd-fake-agent")
	if err != nil {
		t.Fatalf("LookPath: %v", err)
	}
	if got != bin {
		t.Errorf("got %q, want %q", got, bin)
	}
}

func TestExecResolver_NotFound(t *testing.T) {
	r := &ExecResolver{ExtraPaths: []string{t.TempDir()}}
	_, err := r.LookPath("agentcmd-definitely-missing")
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("err = %v, want ErrExecutableNotFound", err)
	}
	if Available(r, "agentcmd-definitely-missing") {
		t.Error("Available should be false")
	}
}

func TestResolveBinary_FallsBackToName(t *testing.T) {
	missing := ResolverFunc(func(string) (string, error) { return "", ErrExecutableNotFound })
	if got := ResolveBinary(missing, "claude"); got != "claude" {
		t.Errorf("got %q, want bare name", got)
	}
	found := ResolverFunc(func(string) (string, error) { return "/opt/bin/claude", nil })
	if got := ResolveBinary(found, "claude"); got != "/opt/bin/claude" {
		t.Errorf("got %q, want resolved path", got)
	}
}
