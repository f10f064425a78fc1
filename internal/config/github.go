package config

import (
	"fmt"
	"net/url"
	"os"
)

const (
	// EnvGitHubToken provides the fallback token for the PR summarizer tool.
	EnvGitHubToken = "GITHUB_TOKEN"

	// EnvGitHubBaseURL overrides the GitHub REST API base URL.
	EnvGitHubBaseURL = "GITHUB_BASE_URL"
)

// GitHubConfig holds defaults for the GitHub PR summarizer tool. Per-agent
// tool config takes precedence over the token configured here.
type GitHubConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

func (c *GitHubConfig) Finalize() error {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.github.com"
	}
	if v := os.Getenv(EnvGitHubToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvGitHubBaseURL); v != "" {
		c.BaseURL = v
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	return nil
}

func (c *GitHubConfig) Merge(overlay *GitHubConfig) {
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
}
