package core

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// SessionStore keeps conversation state. The in-memory registry is the
// default backing; a TTL-native external cache can replace it without
// touching the chat service.
type SessionStore interface {
	// GetOrCreate returns a snapshot of the session, creating it with the
	// system instruction on first sight of the id.
	GetOrCreate(id string) Session
	// AppendExchange records one user/assistant turn pair and trims the
	// history window.
	AppendExchange(id string, user, assistant Message)
	// Reset restores the session history to the system instruction alone.
	// Returns false when the id is unknown.
	Reset(id string) bool
	// Evict removes a session. Removing an absent id is a no-op.
	Evict(id string)
	Stats() SessionStats
}

// TranscriptRepo journals exchanges for audit. Journal failures must never
// fail the chat request.
type TranscriptRepo interface {
	Append(ctx context.Context, sessionID string, msg Message, categories []Category) error
	Recent(ctx context.Context, limit int) ([]TranscriptEntry, error)
}
