package config

import (
	"reflect"
	"testing"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single key",
			input:    "abc123",
			expected: []string{"abc123"},
		},
		{
			name:     "multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "whitespace and empties dropped",
			input:    " key1 , ,key2,",
			expected: []string{"key1", "key2"},
		},
		{
			name:     "empty value",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitKeys(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_MODEL", "")

	cfg := FromEnv()

	if cfg.GeminiModel != DefaultGeminiModel {
		t.Errorf("Expected default gemini model, got %q", cfg.GeminiModel)
	}
	if cfg.OpenAIModel != DefaultOpenAIModel {
		t.Errorf("Expected default openai model, got %q", cfg.OpenAIModel)
	}
	if cfg.OllamaModel != DefaultOllamaModel {
		t.Errorf("Expected default ollama model, got %q", cfg.OllamaModel)
	}
	if cfg.OllamaURL != DefaultOllamaURL {
		t.Errorf("Expected default ollama URL, got %q", cfg.OllamaURL)
	}
	if len(cfg.GeminiAPIKeys) != 0 {
		t.Errorf("Expected no gemini keys, got %v", cfg.GeminiAPIKeys)
	}
}

func TestFromEnvMultipleGeminiKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k1,k2")

	cfg := FromEnv()

	if !reflect.DeepEqual(cfg.GeminiAPIKeys, []string{"k1", "k2"}) {
		t.Errorf("Expected two gemini keys, got %v", cfg.GeminiAPIKeys)
	}
}

func TestModelFor(t *testing.T) {
	cfg := Config{
		GeminiModel: "g-model",
		OpenAIModel: "o-model",
		OllamaModel: "l-model",
	}

	tests := []struct {
		provider string
		override string
		expected string
	}{
		{"gemini", "", "g-model"},
		{"openai", "", "o-model"},
		{"ollama", "", "l-model"},
		{"gemini", "custom", "custom"},
		{"unknown", "", ""},
	}

	for _, tt := range tests {
		if got := cfg.ModelFor(tt.provider, tt.override); got != tt.expected {
			t.Errorf("ModelFor(%q, %q): expected %q, got %q", tt.provider, tt.override, tt.expected, got)
		}
	}
}
