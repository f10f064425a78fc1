package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvChatSummarize toggles the tool-result summarization call.
	EnvChatSummarize = "CHAT_SUMMARIZE"

	// EnvChatTimeout overrides the deadline shared by all outbound calls of one chat request.
	EnvChatTimeout = "CHAT_TIMEOUT"
)

// ChatConfig controls chat orchestration.
type ChatConfig struct {
	Summarize *bool  `toml:"summarize"`
	Timeout   string `toml:"timeout"`
}

// SummarizeEnabled reports whether tool results are passed through a second
// LLM call. Defaults to true.
func (c *ChatConfig) SummarizeEnabled() bool {
	return c.Summarize == nil || *c.Summarize
}

// TimeoutDuration parses and returns the outbound chain deadline.
func (c *ChatConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *ChatConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if v := os.Getenv(EnvChatSummarize); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Summarize = &enabled
		}
	}
	if v := os.Getenv(EnvChatTimeout); v != "" {
		c.Timeout = v
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func (c *ChatConfig) Merge(overlay *ChatConfig) {
	if overlay.Summarize != nil {
		c.Summarize = overlay.Summarize
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}
