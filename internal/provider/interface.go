// Package provider selects and constructs the LLM chat model used by the
// ask command at runtime.
// Supported backends: Ollama, OpenAI, Volcengine Ark, Google Gemini.
package provider

import (
	"fmt"
)

// Backend enumerates the supported LLM inference providers.
type Backend string

const (
	// BackendOllama selects a locally running Ollama instance.
	BackendOllama Backend = "ollama"
	// BackendOpenAI selects the OpenAI API.
	BackendOpenAI Backend = "openai"
	// BackendArk selects Volcengine Ark.
	BackendArk Backend = "ark"
	// BackendGemini selects Google Gemini via AI Studio.
	BackendGemini Backend = "gemini"
)

// Config holds all provider-level configuration resolved from environment
// variables or explicit caller-supplied values.
type Config struct {
	// Backend identifies which inference provider to use.
	Backend Backend

	// Ollama holds Ollama-specific settings.
	Ollama ProviderOllama

	// OpenAI holds OpenAI-specific settings.
	OpenAI ProviderOpenAI

	// Ark holds Volcengine Ark-specific settings.
	Ark ProviderArk

	// Gemini holds Google Gemini-specific settings.
	Gemini ProviderGemini

	// Tuning holds shared generation parameters applied to every backend.
	Tuning SharedTuning
}

// ProviderOllama holds Ollama backend settings.
type ProviderOllama struct {
	// Host is the Ollama API endpoint.
	Host string
	// Model is the Ollama model name.
	Model string
}

// ProviderOpenAI holds OpenAI backend settings.
type ProviderOpenAI struct {
	// APIKey is the OpenAI API key.
	APIKey string
	// Model is the OpenAI model name.
	Model string
}

// ProviderArk holds Volcengine Ark backend settings.
type ProviderArk struct {
	// APIKey is the Ark API key.
	APIKey string
	// Model is the Ark endpoint/model identifier.
	Model string
}

// ProviderGemini holds Google Gemini backend settings.
type ProviderGemini struct {
	// APIKey is the Google API key.
	APIKey string
	// Model is the Gemini model name.
	Model string
}

// SharedTuning holds generation parameters shared across all backends.
type SharedTuning struct {
	// MaxTokens caps the number of tokens the model may generate per response.
	MaxTokens int
	// Temperature controls response randomness (0.0–1.0).
	Temperature float32
}

// Validate checks the config for errors that would otherwise only surface on
// the first request. Error messages name the env var the operator needs to
// set, since NewFromEnv is the usual construction path.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOllama:
		if c.Ollama.Model == "" {
			return fmt.Errorf("provider: OLLAMA_MODEL is required for ollama backend")
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("provider: OPENAI_API_KEY is required for openai backend")
		}
		if c.OpenAI.Model == "" {
			return fmt.Errorf("provider: OPENAI_MODEL is required for openai backend")
		}
	case BackendArk:
		if c.Ark.APIKey == "" {
			return fmt.Errorf("provider: ARK_API_KEY is required for ark backend")
		}
		if c.Ark.Model == "" {
			return fmt.Errorf("provider: ARK_MODEL is required for ark backend")
		}
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("provider: GOOGLE_API_KEY is required for gemini backend")
		}
		if c.Gemini.Model == "" {
			return fmt.Errorf("provider: GEMINI_MODEL is required for gemini backend")
		}
	default:
		return fmt.Errorf("provider: unknown backend %q — valid values: ollama, openai, ark, gemini", c.Backend)
	}
	if c.Tuning.MaxTokens < 0 {
		return fmt.Errorf("provider: MODEL_MAX_TOKENS must be positive, got %d", c.Tuning.MaxTokens)
	}
	if c.Tuning.Temperature < 0 || c.Tuning.Temperature > 1 {
		return fmt.Errorf("provider: MODEL_TEMPERATURE must be in [0,1], got %v", c.Tuning.Temperature)
	}
	return nil
}
