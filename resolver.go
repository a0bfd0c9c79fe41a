package agentcmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Resolver resolves a command name to an executable path.
type Resolver interface {
	// LookPath returns the absolute path of name, or an error wrapping
	// ErrExecutableNotFound if it cannot be found.
	LookPath(name string) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(name string) (string, error)

// LookPath calls f(name).
func (f ResolverFunc) LookPath(name string) (string, error) { return f(name) }

// DefaultExtraPaths are searched after $PATH. Desktop-launched processes
// often inherit a minimal PATH that misses user-level install locations.
var DefaultExtraPaths = []string{
	"~/.local/bin",
	"~/.npm-global/bin",
	"~/.bun/bin",
	"/opt/homebrew/bin",
	"/usr/local/bin",
}

// ExecResolver searches $PATH, then ExtraPaths in order.
// A leading "~/" in ExtraPaths expands to the user's home directory.
type ExecResolver struct {
	ExtraPaths []string
}

// NewExecResolver returns an ExecResolver searching DefaultExtraPaths
// followed by extra.
func NewExecResolver(extra ...string) *ExecResolver {
	paths := make([]string, 0, len(DefaultExtraPaths)+len(extra))
	paths = append(paths, DefaultExtraPaths...)
	paths = append(paths, extra...)
	return &ExecResolver{ExtraPaths: paths}
}

// LookPath implements Resolver.
func (r *ExecResolver) LookPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty command name", ErrExecutableNotFound)
	}
	if p, err := exec.LookPath(name); err == nil {
		if abs, err := filepath.Abs(p); err == nil {
			return abs, nil
		}
		return p, nil
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, name)
	}
	for _, dir := range r.ExtraPaths {
		dir = expandHome(dir)
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, name)
}

// ResolveBinary returns r's absolute path for name, or name itself when it
// cannot be resolved so the OS gets a chance at spawn time.
func ResolveBinary(r Resolver, name string) string {
	if r == nil {
		return name
	}
	if p, err := r.LookPath(name); err == nil && p != "" {
		return p
	}
	return name
}

// Available reports whether r can resolve name.
func Available(r Resolver, name string) bool {
	if r == nil {
		return false
	}
	_, err := r.LookPath(name)
	return err == nil
}

func expandHome(dir string) string {
	if !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dir[2:])
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode().Perm()&0o111 != 0
}
