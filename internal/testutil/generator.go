package testutil

import (
	"context"
	"sync"
)

// StubGenerator is a scripted chat-model client for orchestrator tests.
type StubGenerator struct {
	// Response is returned by Generate when Err is nil.
	Response string

	// Err, when set, is returned by every Generate call.
	Err error

	mu         sync.Mutex
	prompts    []string
	maxTokens  []int
	generation int
}

// Generate records the prompt and returns the scripted response.
func (g *StubGenerator) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	g.maxTokens = append(g.maxTokens, maxTokens)
	g.generation++

	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

// Prompts returns a copy of all prompts seen so far.
func (g *StubGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.prompts))
	copy(out, g.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" when none was seen.
func (g *StubGenerator) LastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// LastMaxTokens returns the token limit of the most recent call.
func (g *StubGenerator) LastMaxTokens() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.maxTokens) == 0 {
		return 0
	}
	return g.maxTokens[len(g.maxTokens)-1]
}

// CallCount returns how many times Generate was invoked.
func (g *StubGenerator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}
