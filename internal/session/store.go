package session

import (
	"sync"
	"time"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

// Store manages chat sessions in process memory.
//
// All state is guarded by a single RWMutex. The original service mutated a
// shared map with no synchronization; the lock is a deliberate fix so
// concurrent requests for the same chatId cannot lose updates.
// AppendExchange exists so the orchestrator can commit a user/assistant
// pair in one critical section.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string // chatIDs in insertion order, for stable listings
	logger   log.Logger
}

// NewStore creates an empty session store.
func NewStore(logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// CreateOrGet returns the session for chatID, creating an empty one on
// first use. userID is recorded only at creation time. Never fails.
func (s *Store) CreateOrGet(chatID, userID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		return sess
	}

	sess := &Session{
		ChatID:    chatID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[chatID] = sess
	s.order = append(s.order, chatID)
	s.logger.Info("created chat session", "chat_id", chatID)
	return sess
}

// Exists reports whether a session with the given chatID exists.
func (s *Store) Exists(chatID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[chatID]
	return ok
}

// AppendMessage appends a single timestamped message to an existing session.
// Returns ErrSessionNotFound if the session does not exist and ErrInvalidRole
// for roles other than user/assistant.
func (s *Store) AppendMessage(chatID, role, content string) (Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return Message{}, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return Message{}, ErrSessionNotFound
	}

	msg := newMessage(role, content)
	sess.messages = append(sess.messages, msg)
	s.logger.Debug("appended message", "chat_id", chatID, "role", role, "message_id", msg.ID)
	return msg, nil
}

// AppendExchange appends the user message and the assistant response as a
// pair under one lock acquisition, so a chat turn is recorded atomically.
// Returns the stored messages in append order.
func (s *Store) AppendExchange(chatID, userContent, assistantContent string) (Message, Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return Message{}, Message{}, ErrSessionNotFound
	}

	userMsg := newMessage(RoleUser, userContent)
	assistantMsg := newMessage(RoleAssistant, assistantContent)
	sess.messages = append(sess.messages, userMsg, assistantMsg)

	s.logger.Debug("appended exchange",
		"chat_id", chatID,
		"user_message_id", userMsg.ID,
		"assistant_message_id", assistantMsg.ID)
	return userMsg, assistantMsg, nil
}

// Messages returns a copy of the ordered message sequence for chatID.
// Returns ErrSessionNotFound if the session does not exist.
func (s *Store) Messages(chatID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	out := make([]Message, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// Count returns the number of messages stored for chatID.
// Returns ErrSessionNotFound if the session does not exist.
func (s *Store) Count(chatID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	return len(sess.messages), nil
}

// ListSessions returns metadata for every session, in insertion order.
func (s *Store) ListSessions() []Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Metadata, 0, len(s.order))
	for _, chatID := range s.order {
		sess := s.sessions[chatID]
		md := Metadata{
			ChatID:       sess.ChatID,
			UserID:       sess.UserID,
			MessageCount: len(sess.messages),
			CreatedAt:    sess.CreatedAt,
			LastActivity: sess.CreatedAt,
			FirstMessage: preview(sess.messages),
		}
		if n := len(sess.messages); n > 0 {
			md.LastActivity = sess.messages[n-1].Timestamp
		}
		out = append(out, md)
	}
	return out
}

// Delete removes the session entirely. Returns ErrSessionNotFound if the
// session does not exist; repeated deletes keep returning the same error.
func (s *Store) Delete(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[chatID]; !ok {
		return ErrSessionNotFound
	}

	delete(s.sessions, chatID)
	for i, id := range s.order {
		if id == chatID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Info("deleted chat session", "chat_id", chatID)
	return nil
}
