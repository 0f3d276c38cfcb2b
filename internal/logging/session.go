// Package logging provides zerolog hooks shared by every timelapse command.
package logging

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionField is the log field carrying the session identifier.
const SessionField = "session_id"

// SessionHook stamps every event with the identifier of the current run, so
// the lines of one playback session can be picked out of the shared log file.
type SessionHook struct {
	id string
}

// NewSessionHook creates a hook with a fresh random session identifier.
func NewSessionHook() *SessionHook {
	return &SessionHook{id: uuid.NewString()}
}

// NewSessionHookWithID creates a hook that stamps a caller-chosen identifier.
// An empty id falls back to a random one.
func NewSessionHookWithID(id string) *SessionHook {
	if id == "" {
		return NewSessionHook()
	}
	return &SessionHook{id: id}
}

// ID returns the session identifier.
func (h *SessionHook) ID() string {
	return h.id
}

// Run implements zerolog.Hook.
func (h *SessionHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}
	e.Str(SessionField, h.id)
}
