package config

import (
	"context"

	"github.com/dmora/agentcmd"
)

// FileSettings is an agentcmd.SettingsProvider backed by the config file.
// The file is re-read on every call, so edits apply to the next launch
// without a restart.
type FileSettings struct {
	Path string
}

var _ agentcmd.SettingsProvider = FileSettings{}

// AgentSettings implements agentcmd.SettingsProvider.
func (s FileSettings) AgentSettings(ctx context.Context, agent agentcmd.Agent) (agentcmd.AgentSettings, error) {
	if err := ctx.Err(); err != nil {
		return agentcmd.AgentSettings{}, err
	}
	cfg, err := Load(s.Path)
	if err != nil {
		return agentcmd.AgentSettings{}, err
	}
	return cfg.AgentSettings(agent), nil
}
