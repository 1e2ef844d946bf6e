package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

func newTestStore() *Store {
	return NewStore(log.NewNop())
}

func TestCreateOrGet(t *testing.T) {
	store := newTestStore()

	sess := store.CreateOrGet("c1", "u1")
	require.NotNil(t, sess)
	assert.Equal(t, "c1", sess.ChatID)
	assert.Equal(t, "u1", sess.UserID)
	assert.False(t, sess.CreatedAt.IsZero())

	// Second call returns the same session and keeps the original user.
	again := store.CreateOrGet("c1", "u2")
	assert.Same(t, sess, again)
	assert.Equal(t, "u1", again.UserID)
}

func TestAppendMessageThenMessages(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	_, err := store.AppendMessage("c1", RoleUser, "hello")
	require.NoError(t, err)
	last, err := store.AppendMessage("c1", RoleAssistant, "hi there")
	require.NoError(t, err)

	msgs, err := store.Messages("c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	// Sequence ends with the last appended message, in call order.
	assert.Equal(t, last.ID, msgs[1].ID)
	assert.Equal(t, "hi there", msgs[1].Content)
}

func TestAppendMessageUnknownSession(t *testing.T) {
	store := newTestStore()

	_, err := store.AppendMessage("missing", RoleUser, "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendMessageInvalidRole(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	_, err := store.AppendMessage("c1", "system", "nope")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAppendExchange(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	userMsg, assistantMsg, err := store.AppendExchange("c1", "question", "answer")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, userMsg.Role)
	assert.Equal(t, RoleAssistant, assistantMsg.Role)

	msgs, err := store.Messages("c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "question", msgs[0].Content)
	assert.Equal(t, "answer", msgs[1].Content)

	_, _, err = store.AppendExchange("missing", "q", "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMessagesReturnsCopy(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")
	_, err := store.AppendMessage("c1", RoleUser, "original")
	require.NoError(t, err)

	msgs, err := store.Messages("c1")
	require.NoError(t, err)
	msgs[0].Content = "mutated"

	fresh, err := store.Messages("c1")
	require.NoError(t, err)
	assert.Equal(t, "original", fresh[0].Content)
}

func TestMessagesUnknownSession(t *testing.T) {
	store := newTestStore()

	_, err := store.Messages("unknown-id")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListSessionsInsertionOrder(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")
	store.CreateOrGet("c2", "")
	store.CreateOrGet("c3", "")
	_, _, err := store.AppendExchange("c2", "first question with quite a lot of text", "first answer")
	require.NoError(t, err)

	list := store.ListSessions()
	require.Len(t, list, 3)
	assert.Equal(t, "c1", list[0].ChatID)
	assert.Equal(t, "c2", list[1].ChatID)
	assert.Equal(t, "c3", list[2].ChatID)

	assert.Equal(t, 0, list[0].MessageCount)
	assert.Equal(t, 2, list[1].MessageCount)
	assert.Equal(t, "first question with quite a lot of text", list[1].FirstMessage)
	assert.False(t, list[1].LastActivity.Before(list[1].CreatedAt))
}

func TestFirstMessagePreviewTruncated(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	long := ""
	for range 30 {
		long += "0123456789"
	}
	_, err := store.AppendMessage("c1", RoleUser, long)
	require.NoError(t, err)

	list := store.ListSessions()
	require.Len(t, list, 1)
	assert.Len(t, list[0].FirstMessage, firstMessagePreviewLen+3)
	assert.Equal(t, "...", list[0].FirstMessage[firstMessagePreviewLen:])
}

func TestDelete(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	require.NoError(t, store.Delete("c1"))

	// Messages after delete yields not-found.
	_, err := store.Messages("c1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Second delete returns the same error, not a crash.
	assert.ErrorIs(t, store.Delete("c1"), ErrSessionNotFound)

	assert.Empty(t, store.ListSessions())
}

func TestConcurrentSameChatAppends(t *testing.T) {
	store := newTestStore()
	store.CreateOrGet("c1", "")

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				_, _, err := store.AppendExchange("c1",
					fmt.Sprintf("q-%d-%d", w, i), fmt.Sprintf("a-%d-%d", w, i))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := store.Count("c1")
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter*2, count)

	// Exchanges stay paired: even indices user, odd indices assistant.
	msgs, err := store.Messages("c1")
	require.NoError(t, err)
	for i, m := range msgs {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, m.Role, "index %d", i)
		} else {
			assert.Equal(t, RoleAssistant, m.Role, "index %d", i)
		}
	}
}
