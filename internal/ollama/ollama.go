package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lehigh-university-libraries/shelftagger/internal/providers"
)

// Ollama is a provider for a locally-hosted Ollama instance
type Ollama struct {
	baseURL string
}

// New returns a new Ollama provider
func New(baseURL string) *Ollama {
	return &Ollama{baseURL: baseURL}
}

// Configured reports whether a base URL is available. Ollama needs no
// credentials, so a configured URL is enough.
func (o *Ollama) Configured() bool {
	return o.baseURL != ""
}

// GenerateText generates text for the given prompt using Ollama
func (o *Ollama) GenerateText(ctx context.Context, req providers.Request) (string, error) {
	url := o.baseURL + "/api/generate"

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": req.Temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
