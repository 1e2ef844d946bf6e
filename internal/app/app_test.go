package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/config"
	"github.com/Sharen-Rajenthiran/domain-chatbot-backend/internal/log"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Host:               "localhost",
		Port:               8001,
		DataDirectory:      t.TempDir(),
		ChunkSize:          500,
		ChunkOverlap:       20,
		MaxTokens:          150,
		MaxHistoryMessages: 10,
		TopK:               3,
		RequestTimeout:     5 * time.Second,
		AllowedOrigins:     []string{"*"},
	}
}

func TestSetupWithoutCredentials(t *testing.T) {
	// No HuggingFace credentials: the app still starts, ingestion is
	// skipped and chat degrades at request time.
	a, err := Setup(context.Background(), testConfig(t), log.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	assert.NotNil(t, a.Model)
	assert.NotNil(t, a.Knowledge)
	assert.NotNil(t, a.Pipeline)
	assert.NotNil(t, a.Sessions)
	assert.NotNil(t, a.Chat)
	assert.NotNil(t, a.Server)
	assert.Zero(t, a.Knowledge.Count())
	assert.Empty(t, a.Pipeline.Documents())
}

func TestCloseIdempotent(t *testing.T) {
	a, err := Setup(context.Background(), testConfig(t), log.NewNop())
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
