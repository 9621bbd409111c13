package gemini

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/generative-ai-go/genai"
	"github.com/lehigh-university-libraries/shelftagger/internal/providers"
	"google.golang.org/api/option"
)

// Gemini is a provider for Google Gemini. Multiple API keys may be
// configured; requests rotate through them round-robin.
type Gemini struct {
	apiKeys []string
	next    atomic.Uint64
}

// New returns a new Gemini provider
func New(apiKeys []string) *Gemini {
	return &Gemini{apiKeys: apiKeys}
}

// Configured reports whether at least one API key is available.
func (g *Gemini) Configured() bool {
	return len(g.apiKeys) > 0
}

func (g *Gemini) nextKey() string {
	n := g.next.Add(1) - 1
	return g.apiKeys[n%uint64(len(g.apiKeys))]
}

// GenerateText generates text for the given prompt using Gemini
func (g *Gemini) GenerateText(ctx context.Context, req providers.Request) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API key configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.nextKey()))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}
