// Package config loads and saves the agentcmd configuration file.
//
// The file is TOML, by default at $XDG_CONFIG_HOME/agentcmd/config.toml:
//
//	log_level = "info"
//	idle_timeout = "30m"
//	max_concurrent_sessions = 10
//	extra_paths = ["~/.local/bin"]
//
//	[agents.claude]
//	model = "sonnet"
//	permission_mode = "acceptEdits"
//
// Readers take a shared advisory lock on a sibling ".lock" file and Save
// takes an exclusive one, so a settings UI and running launchers can share
// the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"

	"github.com/dmora/agentcmd"
)

const (
	appName  = "agentcmd"
	fileName = "config.toml"

	// EnvPath overrides the config file location.
	EnvPath = "AGENTCMD_CONFIG"
)

// Config is the on-disk configuration.
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	IdleTimeout   Duration `toml:"idle_timeout"`
	SweepInterval Duration `toml:"sweep_interval"`
	GracePeriod   Duration `toml:"grace_period"`

	// MaxConcurrentSessions caps live launches; 0 means unlimited.
	MaxConcurrentSessions int `toml:"max_concurrent_sessions"`

	// ExtraPaths are searched for agent binaries after $PATH.
	ExtraPaths []string `toml:"extra_paths"`

	// Agents holds per-agent preferences keyed by agent tag.
	Agents map[string]agentcmd.AgentSettings `toml:"agents"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:              "info",
		LogFormat:             "text",
		IdleTimeout:           Duration{30 * time.Minute},
		SweepInterval:         Duration{time.Minute},
		GracePeriod:           Duration{100 * time.Millisecond},
		MaxConcurrentSessions: 10,
	}
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.MaxConcurrentSessions < 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_sessions must be >= 0, got %d", c.MaxConcurrentSessions))
	}
	for name, d := range map[string]Duration{
		"idle_timeout":   c.IdleTimeout,
		"sweep_interval": c.SweepInterval,
		"grace_period":   c.GracePeriod,
	} {
		if d.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	for name := range c.Agents {
		if name == "" {
			errs = append(errs, errors.New("agents table has an empty agent name"))
		}
	}
	return errors.Join(errs...)
}

// AgentSettings returns the preferences for agent, or zero settings.
func (c Config) AgentSettings(agent agentcmd.Agent) agentcmd.AgentSettings {
	return c.Agents[string(agent)]
}

// Path returns the config file location: $AGENTCMD_CONFIG if set, else
// agentcmd/config.toml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the file at path under a shared lock. A missing file yields
// Default(); keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	lock := flock.New(lockPath(path))
	if err := lock.RLock(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: acquire read lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically under an exclusive lock, creating
// parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", dir, err)
	}

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("config: acquire lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+fileName+".*")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: write temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config: replace %s: %w", path, err)
	}
	return nil
}

func lockPath(path string) string { return path + ".lock" }

// Duration is a time.Duration that reads and writes as a Go duration
// string ("30m", "1h30m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
