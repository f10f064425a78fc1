package openapi

import (
	"os"
	"strings"
)

// Config is the document metadata written into info and servers.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv names the environment variables that override Config fields.
// Servers is read as a comma-separated list.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if env != nil {
		c.loadEnv(env)
	}
	if c.Title == "" {
		c.Title = "Agent Hub API"
	}
	return nil
}

// Merge replaces fields set in overlay. A non-empty server list replaces
// the base list.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if len(overlay.Servers) > 0 {
		c.Servers = overlay.Servers
	}
}

// NewSpec creates a document titled from c with its description and
// servers applied.
func (c *Config) NewSpec(version string) *Spec {
	spec := NewSpec(c.Title, version)
	spec.SetDescription(c.Description)
	for _, s := range c.Servers {
		spec.AddServer(strings.TrimSpace(s))
	}
	return spec
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := os.Getenv(env.Title); env.Title != "" && v != "" {
		c.Title = v
	}
	if v := os.Getenv(env.Description); env.Description != "" && v != "" {
		c.Description = v
	}
	if v := os.Getenv(env.Servers); env.Servers != "" && v != "" {
		c.Servers = strings.Split(v, ",")
	}
}
