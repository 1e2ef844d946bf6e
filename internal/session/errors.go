package session

import "errors"

// Sentinel errors for session operations.
// These are part of the Store's public API and should be checked with
// errors.Is().
//
// Example:
//
//	msgs, err := store.Messages(chatID)
//	if errors.Is(err, session.ErrSessionNotFound) {
//	    // map to 404
//	}
var (
	// ErrSessionNotFound indicates the requested chat session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidRole indicates a message role other than user or assistant.
	ErrInvalidRole = errors.New("invalid message role")
)
