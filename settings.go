package agentcmd

import "context"

// AgentSettings holds per-agent preferences supplied by a [SettingsProvider].
// The zero value means "no preferences": every flag is omitted.
type AgentSettings struct {
	Enabled         bool   `json:"enabled" toml:"enabled"`
	Model           string `json:"model,omitempty" toml:"model,omitempty"`
	PermissionMode  string `json:"permission_mode,omitempty" toml:"permission_mode,omitempty"`
	ExecutionMode   string `json:"execution_mode,omitempty" toml:"execution_mode,omitempty"`
	DangerousBypass bool   `json:"dangerous_bypass,omitempty" toml:"dangerous_bypass,omitempty"`
}

// SettingsProvider supplies agent preferences.
//
// Implementations may fail (missing file, bad syntax); callers must treat
// any error as "use defaults" and never abort a launch because of it.
type SettingsProvider interface {
	AgentSettings(ctx context.Context, agent Agent) (AgentSettings, error)
}

// StaticSettings is an in-memory SettingsProvider. Agents without an entry
// get zero settings.
type StaticSettings map[Agent]AgentSettings

// AgentSettings returns the settings for agent.
func (s StaticSettings) AgentSettings(_ context.Context, agent Agent) (AgentSettings, error) {
	return s[agent], nil
}

// LoadSettings asks p for agent's settings and falls back to zero settings
// on a nil provider or any error. The error is returned for logging only.
func LoadSettings(ctx context.Context, p SettingsProvider, agent Agent) (AgentSettings, error) {
	if p == nil {
		return AgentSettings{}, nil
	}
	s, err := p.AgentSettings(ctx, agent)
	if err != nil {
		return AgentSettings{}, err
	}
	return s, nil
}
