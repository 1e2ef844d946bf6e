package chat

import (
	"strings"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/knowledge"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

// systemPrompt is the fixed instruction prefix for every chat turn.
const systemPrompt = `You are a helpful assistant for answering questions about the ingested documents. ` +
	`Use only the pieces of context below to answer the question. ` +
	`If the answer is not in the context, say that you don't know; do not make up an answer. ` +
	`Keep the answer concise.`

// buildPrompt assembles the full model prompt:
// system prompt + retrieved context + bounded history + the new message.
// An empty context section is kept so the model still sees the
// instruction shape when the index is empty.
func buildPrompt(contexts []knowledge.Result, history []session.Message, message string) string {
	var b strings.Builder

	b.WriteString(systemPrompt)
	b.WriteString("\n\nContext:\n")
	for i, res := range contexts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(res.Document.Content)
	}

	if len(history) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for _, msg := range history {
			switch msg.Role {
			case session.RoleUser:
				b.WriteString("User: ")
			case session.RoleAssistant:
				b.WriteString("Assistant: ")
			}
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(message)
	b.WriteString("\nAnswer:")
	return b.String()
}
