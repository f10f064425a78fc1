package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/agent-hub/internal/config"
)

const base = `
version = "1.2.0"

[server]
port = 9090

[database]
name = "agent_hub"
user = "hub"

[api]
max_body_size = "512KB"

[api.cors]
enabled = true
origins = ["http://localhost:3000"]

[chat]
timeout = "45s"
`

func TestParseAndFinalize(t *testing.T) {
	cfg, err := config.Parse([]byte(base))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Version != "1.2.0" {
		t.Errorf("version = %s", cfg.Version)
	}
	if cfg.Server.Addr() != ":9090" {
		t.Errorf("addr = %s", cfg.Server.Addr())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path = %s", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySizeBytes() != 512000 {
		t.Errorf("max body = %d", cfg.API.MaxBodySizeBytes())
	}
	if cfg.LLM.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("llm base url = %s", cfg.LLM.BaseURL)
	}
	if cfg.GitHub.BaseURL != "https://api.github.com" {
		t.Errorf("github base url = %s", cfg.GitHub.BaseURL)
	}
	if !cfg.Chat.SummarizeEnabled() {
		t.Error("summarize should default to enabled")
	}
	if cfg.Chat.TimeoutDuration() != 45*time.Second {
		t.Errorf("chat timeout = %v", cfg.Chat.TimeoutDuration())
	}
	if cfg.Tools.MaxResponseSizeBytes() != 2000000 {
		t.Errorf("tools max response = %d", cfg.Tools.MaxResponseSizeBytes())
	}
	if cfg.API.Pagination.DefaultPageSize != 20 {
		t.Errorf("default page size = %d", cfg.API.Pagination.DefaultPageSize)
	}
}

func TestFinalize_Defaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Chat.TimeoutDuration() != 2*time.Minute {
		t.Errorf("chat timeout = %v, want 2m", cfg.Chat.TimeoutDuration())
	}
	if cfg.Database.Name != "agent_hub" || cfg.Database.SSLMode != "disable" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.API.OpenAPI.Title != "Agent Hub API" {
		t.Errorf("openapi title = %s", cfg.API.OpenAPI.Title)
	}
	if cfg.LLM.Provider != config.ProviderOpenAI {
		t.Errorf("llm provider = %s", cfg.LLM.Provider)
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvLLMAPIKey, "gsk_test")
	t.Setenv(config.EnvChatSummarize, "false")
	t.Setenv(config.EnvServerPort, "7000")

	cfg, err := config.Parse([]byte(base))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.LLM.APIKey != "gsk_test" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.Chat.SummarizeEnabled() {
		t.Error("summarize should be disabled by env")
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestFinalize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{"bad body size", "[api]\nmax_body_size = \"lots\"\n"},
		{"bad chat timeout", "[chat]\ntimeout = \"soon\"\n"},
		{"bad llm url", "[llm]\nbase_url = \"not a url\"\n"},
		{"unknown llm provider", "[llm]\nprovider = \"bedrock\"\n"},
		{"bad tools size", "[tools]\nmax_response_size = \"-\"\n"},
		{"root base path", "[api]\nbase_path = \"/\"\n"},
		{"relative base path", "[api]\nbase_path = \"api\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "[database]\nname = \"n\"\nuser = \"u\"\n" + tt.extra
			cfg, err := config.Parse([]byte(data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := cfg.Finalize(); err == nil {
				t.Error("expected finalize error")
			}
		})
	}
}

func TestMerge(t *testing.T) {
	cfg, err := config.Parse([]byte(base))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	disabled := false
	cfg.Merge(&config.Config{
		Server: config.ServerConfig{Port: 8181},
		Chat:   config.ChatConfig{Summarize: &disabled},
		LLM:    config.LLMConfig{Model: "llama-3.1-8b-instant"},
	})

	if cfg.Server.Port != 8181 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Chat.SummarizeEnabled() {
		t.Error("overlay should disable summarize")
	}
	if cfg.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("model = %s", cfg.LLM.Model)
	}
	if cfg.Chat.Timeout != "45s" {
		t.Errorf("chat timeout overwritten: %s", cfg.Chat.Timeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(base), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Database.Name != "agent_hub" {
		t.Errorf("database name = %s", cfg.Database.Name)
	}

	if _, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_AgentProvider(t *testing.T) {
	data := `
[llm]
provider = "azure"
base_url = "https://example.openai.azure.com/openai"
model    = "gpt-4o"

[llm.provider_options]
deployment  = "gpt-4o"
api_version = "2024-08-01-preview"
`
	cfg, err := config.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.LLM.Provider != "azure" {
		t.Errorf("provider = %s", cfg.LLM.Provider)
	}
	if cfg.LLM.ProviderOptions["deployment"] != "gpt-4o" {
		t.Errorf("provider options = %v", cfg.LLM.ProviderOptions)
	}
}
