package agentcmd

import "time"

// Session is the metadata for one tracked agent invocation.
//
// Session is a value type. It carries identity and timestamps but no runtime
// state (no process handles, no channels). The registry owns the runtime side
// and hands out Session copies as snapshots.
type Session struct {
	// ID is the caller-supplied session identifier.
	ID string `json:"id"`

	// Agent is the resolved agent driving this session.
	Agent Agent `json:"agent"`

	// Command is a human-readable label for what was launched
	// (the payload after command-structure parsing).
	Command string `json:"command"`

	// WorkingDir is the process working directory, empty when inherited.
	WorkingDir string `json:"working_dir,omitempty"`

	// IsActive reports whether the process is believed to be running.
	IsActive bool `json:"is_active"`

	// CreatedAt is the registration time in epoch seconds.
	CreatedAt int64 `json:"created_at"`

	// LastActivity is the time of the most recent output, in epoch seconds.
	LastActivity int64 `json:"last_activity"`
}

// NewSession returns an active Session stamped with now.
func NewSession(id string, agent Agent, command, workingDir string, now time.Time) Session {
	ts := now.Unix()
	return Session{
		ID:           id,
		Agent:        agent,
		Command:      command,
		WorkingDir:   workingDir,
		IsActive:     true,
		CreatedAt:    ts,
		LastActivity: ts,
	}
}

// Key returns the secondary-index key for this session.
func (s Session) Key() string {
	return SessionKey(s.Agent, s.WorkingDir)
}

// IdleFor returns how long the session has been idle at now.
func (s Session) IdleFor(now time.Time) time.Duration {
	return time.Duration(now.Unix()-s.LastActivity) * time.Second
}

// SessionKey builds the agent+directory lookup key. Without a directory the
// key is the agent tag alone.
func SessionKey(agent Agent, workingDir string) string {
	if workingDir == "" {
		return string(agent)
	}
	return string(agent) + ":" + workingDir
}

// SessionStatus is a point-in-time report of registered sessions.
// ActiveSessions has no defined order.
type SessionStatus struct {
	ActiveSessions []Session `json:"active_sessions"`
	TotalSessions  int       `json:"total_sessions"`
}
