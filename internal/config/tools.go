package config

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

const (
	// EnvToolsMaxResponseSize overrides the cap on tool response bodies.
	EnvToolsMaxResponseSize = "TOOLS_MAX_RESPONSE_SIZE"

	// EnvToolsTimeout overrides the HTTP client timeout used by tool handlers.
	EnvToolsTimeout = "TOOLS_TIMEOUT"
)

// ToolsConfig bounds the outbound HTTP calls made by tool handlers.
type ToolsConfig struct {
	MaxResponseSize string `toml:"max_response_size"`
	Timeout         string `toml:"timeout"`

	maxResponseSizeVal int64
}

// MaxResponseSizeBytes returns the parsed response body cap.
func (c *ToolsConfig) MaxResponseSizeBytes() int64 {
	return c.maxResponseSizeVal
}

// TimeoutDuration parses and returns the tool HTTP client timeout.
func (c *ToolsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *ToolsConfig) Finalize() error {
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "2MB"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if v := os.Getenv(EnvToolsMaxResponseSize); v != "" {
		c.MaxResponseSize = v
	}
	if v := os.Getenv(EnvToolsTimeout); v != "" {
		c.Timeout = v
	}

	size, err := units.FromHumanSize(c.MaxResponseSize)
	if err != nil {
		return fmt.Errorf("invalid max_response_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_response_size must be positive")
	}
	c.maxResponseSizeVal = size

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

func (c *ToolsConfig) Merge(overlay *ToolsConfig) {
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}
