// Package chat orchestrates a retrieval-augmented conversation turn:
// retrieve relevant chunks, assemble the prompt with bounded history,
// call the hosted model and record the exchange.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/knowledge"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

// maxSources caps how many distinct document names a response cites.
const maxSources = 3

// Retriever searches the vector index for chunks relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]knowledge.Result, error)
}

// Generator produces a completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Request is a single chat turn from a client.
type Request struct {
	ChatID  string `json:"chatId"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// Response is the assistant's reply with its provenance.
type Response struct {
	ChatID    string    `json:"chatId"`
	UserID    string    `json:"userId"`
	MessageID string    `json:"messageId"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources"`
}

// Options tunes a chat service.
type Options struct {
	MaxTokens          int
	TopK               int
	MaxHistoryMessages int
}

// Service wires retrieval, generation and session history together.
type Service struct {
	sessions  *session.Store
	retriever Retriever
	generator Generator
	opts      Options
	logger    log.Logger
}

// NewService creates a chat service.
func NewService(sessions *session.Store, retriever Retriever, generator Generator, opts Options, logger log.Logger) *Service {
	if opts.MaxHistoryMessages <= 0 {
		opts.MaxHistoryMessages = 10
	}
	if opts.TopK <= 0 {
		opts.TopK = maxSources
	}
	return &Service{
		sessions:  sessions,
		retriever: retriever,
		generator: generator,
		opts:      opts,
		logger:    logger,
	}
}

// Chat runs one conversation turn. The user and assistant messages are
// stored only after the model call succeeds, so a failed turn leaves the
// session exactly as it was.
func (s *Service) Chat(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}

	chatID := normalizeID(req.ChatID, "chat")
	userID := normalizeID(req.UserID, "user")

	sess := s.sessions.CreateOrGet(chatID, userID)

	results, err := s.retriever.Search(ctx, message, s.opts.TopK)
	if err != nil {
		s.logger.Error("retrieval failed", "chat_id", chatID, "error", err)
		return Response{}, fmt.Errorf("%w: %w", ErrUpstreamModel, err)
	}

	history := s.boundedHistory(chatID)
	prompt := buildPrompt(results, history, message)

	s.logger.Debug("generating reply",
		"chat_id", chatID,
		"context_chunks", len(results),
		"history_messages", len(history),
		"prompt_tokens_est", estimateTokens(prompt))

	answer, err := s.generator.Generate(ctx, prompt, s.opts.MaxTokens)
	if err != nil {
		s.logger.Error("generation failed", "chat_id", chatID, "error", err)
		return Response{}, fmt.Errorf("%w: %w", ErrUpstreamModel, err)
	}
	answer = strings.TrimSpace(answer)

	_, assistantMsg, err := s.sessions.AppendExchange(chatID, message, answer)
	if err != nil {
		return Response{}, fmt.Errorf("record exchange: %w", err)
	}

	return Response{
		ChatID:    chatID,
		UserID:    sess.UserID,
		MessageID: assistantMsg.ID,
		Response:  answer,
		Timestamp: assistantMsg.Timestamp,
		Sources:   collectSources(results),
	}, nil
}

// boundedHistory returns the most recent messages for a chat, first
// capped by message count and then by a token budget.
func (s *Service) boundedHistory(chatID string) []session.Message {
	msgs, err := s.sessions.Messages(chatID)
	if err != nil {
		return nil
	}
	if len(msgs) > s.opts.MaxHistoryMessages {
		msgs = msgs[len(msgs)-s.opts.MaxHistoryMessages:]
	}
	return truncateHistory(msgs, defaultHistoryTokenBudget)
}

// normalizeID accepts a client-supplied ID, generating a fresh one when
// the client sent nothing usable. "string" is what interactive API
// explorers submit when the caller forgets to fill the field in.
func normalizeID(id, prefix string) string {
	id = strings.TrimSpace(id)
	if id == "" || id == "string" {
		return prefix + "-" + uuid.NewString()[:8]
	}
	return id
}

// collectSources returns up to maxSources distinct document names, in
// retrieval relevance order.
func collectSources(results []knowledge.Result) []string {
	sources := make([]string, 0, maxSources)
	seen := make(map[string]struct{}, maxSources)
	for _, res := range results {
		name := res.Document.Metadata["doc_name"]
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		sources = append(sources, name)
		if len(sources) == maxSources {
			break
		}
	}
	return sources
}
