package agentcmd

// LaunchRequest describes one invocation the launcher should run.
type LaunchRequest struct {
	// SessionID identifies the session. Empty generates a random UUID.
	SessionID string

	// Agent is the agent currently selected by the caller. The message may
	// redirect to another agent (see [ParseCommand]).
	Agent Agent

	// Message is the raw user-typed text.
	Message string

	// WorkingDir, when set, is used verbatim as the process directory and
	// forces the piped-stdio strategy.
	WorkingDir string

	// ExecutionMode is an agent-specific mode tag (codex: chat, collab, full).
	// Empty falls back to the agent's configured default.
	ExecutionMode string

	// DangerousBypass requests the most permissive flag set. Only honored
	// when ExecutionMode resolves to the most permissive mode.
	DangerousBypass bool

	// PermissionMode overrides the configured permission mode.
	PermissionMode string
}

// ArgsRequest is the input to a backend's argument builder.
type ArgsRequest struct {
	Message         string
	ExecutionMode   string
	DangerousBypass bool
	PermissionMode  string
	Settings        AgentSettings
}

// NewArgsRequest merges a launch request with the agent's settings.
// Request values win; empty request values fall back to settings defaults.
func NewArgsRequest(message string, req LaunchRequest, settings AgentSettings) ArgsRequest {
	ar := ArgsRequest{
		Message:         message,
		ExecutionMode:   req.ExecutionMode,
		DangerousBypass: req.DangerousBypass || settings.DangerousBypass,
		PermissionMode:  req.PermissionMode,
		Settings:        settings,
	}
	if ar.ExecutionMode == "" {
		ar.ExecutionMode = settings.ExecutionMode
	}
	if ar.PermissionMode == "" {
		ar.PermissionMode = settings.PermissionMode
	}
	return ar
}
