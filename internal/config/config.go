package config

import (
	"os"
	"strings"
)

// Default models per provider when none is configured.
const (
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o"
	DefaultOllamaModel = "mistral-small3.2:24b"
	DefaultOllamaURL   = "http://localhost:11434"
)

// Config holds all provider credentials and model selections for one run.
// It is built once at startup (after godotenv has populated the process
// environment) and passed down; providers never read the environment
// themselves.
type Config struct {
	GeminiAPIKeys []string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OllamaURL     string
	OllamaModel   string
}

// FromEnv builds a Config from the process environment, applying defaults
// for anything unset.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKeys: SplitKeys(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OllamaURL:     os.Getenv("OLLAMA_URL"),
		OllamaModel:   os.Getenv("OLLAMA_MODEL"),
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultOpenAIModel
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = DefaultOllamaModel
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = DefaultOllamaURL
	}

	return cfg
}

// SplitKeys splits a comma-separated credential list into individual keys,
// dropping empty entries. GEMINI_API_KEY may hold several keys that are
// rotated round-robin across requests.
func SplitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ModelFor returns the configured model for the named provider, or the
// override if one was given on the command line.
func (c Config) ModelFor(provider, override string) string {
	if override != "" {
		return override
	}
	switch provider {
	case "gemini":
		return c.GeminiModel
	case "openai":
		return c.OpenAIModel
	case "ollama":
		return c.OllamaModel
	default:
		return ""
	}
}
