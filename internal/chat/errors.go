package chat

import "errors"

// ErrUpstreamModel indicates the embedding or chat-model call failed,
// including timeouts. The API layer maps it to 502 without leaking
// provider details; callers must resubmit, nothing is retried here.
var ErrUpstreamModel = errors.New("upstream model call failed")

// ErrEmptyMessage indicates a chat request with no message text.
var ErrEmptyMessage = errors.New("message cannot be empty")
