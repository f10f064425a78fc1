package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	// EnvLLMAPIKey provides the default API key for the completion endpoint.
	EnvLLMAPIKey = "GROQ_API_KEY"

	// EnvLLMModel overrides the default chat model.
	EnvLLMModel = "LLM_MODEL"

	// EnvLLMBaseURL overrides the OpenAI-compatible endpoint base URL.
	EnvLLMBaseURL = "LLM_BASE_URL"

	// EnvLLMTimeout overrides the per-request HTTP timeout of the LLM client.
	EnvLLMTimeout = "LLM_TIMEOUT"

	// EnvLLMProvider selects the completion backend.
	EnvLLMProvider = "LLM_PROVIDER"
)

// ProviderOpenAI is the go-openai backend used for Groq and other
// OpenAI-compatible endpoints. The remaining providers run on go-agents.
const ProviderOpenAI = "openai"

var llmProviders = map[string]bool{
	ProviderOpenAI: true,
	"ollama":       true,
	"azure":        true,
}

// LLMConfig configures the completion client. ProviderOptions are passed to
// go-agents providers as-is and ignored by the openai provider.
type LLMConfig struct {
	Provider        string         `toml:"provider"`
	APIKey          string         `toml:"api_key"`
	Model           string         `toml:"model"`
	BaseURL         string         `toml:"base_url"`
	Timeout         string         `toml:"timeout"`
	ProviderOptions map[string]any `toml:"provider_options"`
}

// TimeoutDuration parses and returns the client timeout as a time.Duration.
func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.ProviderOptions != nil {
		c.ProviderOptions = overlay.ProviderOptions
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = "llama-3.3-70b-versatile"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvLLMBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLLMTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *LLMConfig) validate() error {
	if !llmProviders[c.Provider] {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
