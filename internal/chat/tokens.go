package chat

import (
	"unicode/utf8"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/session"
)

// defaultHistoryTokenBudget bounds the conversation history portion of
// the prompt. Conservative for small hosted models.
const defaultHistoryTokenBudget = 2000

// estimateTokens provides a rough token count.
// Uses rune count divided by 2 as a conservative estimate that works
// for both English (~4 chars/token) and CJK (~1.5 chars/token) text.
func estimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 2
}

// truncateHistory drops the oldest messages until the remainder fits the
// token budget. Whole messages only; a half-truncated turn is worse than
// a missing one.
func truncateHistory(msgs []session.Message, budget int) []session.Message {
	if len(msgs) == 0 || budget <= 0 {
		return nil
	}

	total := 0
	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		cost := estimateTokens(msgs[i].Content)
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}
	return msgs[start:]
}
