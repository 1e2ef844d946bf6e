// Package testutil provides shared test doubles for the chatbot backend.
package testutil

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"
)

// StubEmbedder is a deterministic in-process Embedder implementation.
// Texts sharing words produce similar vectors, which is enough signal for
// ranking assertions without any network dependency.
type StubEmbedder struct {
	// Dim is the vector dimensionality. Defaults to 16.
	Dim int

	// Vectors overrides the generated vector for exact-match texts.
	Vectors map[string][]float32

	// Err, when set, is returned by every Embed call.
	Err error

	calls atomic.Int32
}

// Embed returns one deterministic vector per input text.
func (e *StubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls.Add(1)
	if e.Err != nil {
		return nil, e.Err
	}

	dim := e.Dim
	if dim <= 0 {
		dim = 16
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := e.Vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = wordHashVector(text, dim)
	}
	return out, nil
}

// Calls returns how many times Embed was invoked.
func (e *StubEmbedder) Calls() int {
	return int(e.calls.Load())
}

// wordHashVector buckets word hashes into a fixed-size vector.
func wordHashVector(text string, dim int) []float32 {
	v := make([]float32, dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		v[int(h.Sum32())%dim]++
	}
	// Guard against the all-zero vector, which has no direction.
	allZero := true
	for _, x := range v {
		if x != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		v[0] = 1
	}
	return v
}
