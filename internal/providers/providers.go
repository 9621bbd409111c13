package providers

import (
	"context"
)

// Request represents a single text-generation request to an LLM provider
type Request struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	GenerateText(ctx context.Context, req Request) (string, error)
}
