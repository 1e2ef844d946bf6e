package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextScenario(t *testing.T) {
	// 1000 characters, size 500, overlap 20 → [0,500), [480,980), [960,1000).
	text := strings.Repeat("abcdefghij", 100)
	require.Len(t, text, 1000)

	chunks := SplitText(text, 500, 20)
	require.Len(t, chunks, 3)
	assert.Equal(t, text[0:500], chunks[0])
	assert.Equal(t, text[480:980], chunks[1])
	assert.Equal(t, text[960:1000], chunks[2])
}

func TestSplitTextOverlapExact(t *testing.T) {
	text := strings.Repeat("x y z w v u t s r q ", 50) // 1000 chars
	size, overlap := 100, 25

	chunks := SplitText(text, size, overlap)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		curr := []rune(chunks[i])
		// Every chunk after the first starts with exactly the last
		// overlap characters of its predecessor.
		assert.Equal(t, string(prev[len(prev)-overlap:]), string(curr[:overlap]), "chunk %d", i)
	}
}

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 40)

	first := SplitText(text, 300, 30)
	second := SplitText(text, 300, 30)
	assert.Equal(t, first, second)
}

func TestSplitTextShorterThanChunk(t *testing.T) {
	chunks := SplitText("short text", 500, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitTextExactChunkSize(t *testing.T) {
	text := strings.Repeat("a", 500)
	chunks := SplitText(text, 500, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, SplitText("", 500, 20))
}

func TestSplitTextInvalidParams(t *testing.T) {
	assert.Nil(t, SplitText("text", 0, 0), "zero size")
	assert.Nil(t, SplitText("text", -1, 0), "negative size")
	assert.Nil(t, SplitText("text", 10, -1), "negative overlap")
	assert.Nil(t, SplitText("text", 10, 10), "overlap equals size")
	assert.Nil(t, SplitText("text", 10, 11), "overlap exceeds size")
}

func TestSplitTextMultibyte(t *testing.T) {
	// Character positions, not byte positions.
	text := strings.Repeat("héllo wörld ", 50)
	chunks := SplitText(text, 100, 10)

	runes := []rune(text)
	assert.Equal(t, string(runes[:100]), chunks[0])
	assert.Equal(t, string(runes[90:190]), chunks[1])
}
