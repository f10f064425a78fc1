package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/agent-hub/internal/agents"
)

//go:embed seeds/*.toml
var seedFiles embed.FS

// AgentSeedData represents the TOML structure for agent seed files.
type AgentSeedData struct {
	Agents []AgentSeed `toml:"agents"`
}

// AgentSeed is a single demo agent and its attached tools.
type AgentSeed struct {
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Tools       []ToolSeed `toml:"tools"`
}

// ToolSeed mirrors agents.ToolEntry for TOML decoding.
type ToolSeed struct {
	Key     string         `toml:"key"`
	Handler string         `toml:"handler"`
	Config  map[string]any `toml:"config"`
}

// AgentSeeder implements Seeder for demo agents and their tool attachments.
// It loads seed data from an embedded file or an external file path.
type AgentSeeder struct {
	catalog agents.Catalog
	file    string
}

// Name returns "agents" as the seeder identifier.
func (s *AgentSeeder) Name() string {
	return "agents"
}

// Description returns a human-readable description of this seeder.
func (s *AgentSeeder) Description() string {
	return "Seeds demo agents with their tool configurations"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *AgentSeeder) SetFile(path string) {
	s.file = path
}

// Seed validates every agent against the tool registry and saves it by name.
// Re-running the seeder updates existing agents in place.
func (s *AgentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, a := range data.Agents {
		entries := a.entries()
		if a.Name == "" {
			return fmt.Errorf("%w: agent name is required", agents.ErrInvalidInput)
		}
		if err := agents.ValidateTools(s.catalog, entries); err != nil {
			return fmt.Errorf("validate agent %s: %w", a.Name, err)
		}
		if err := s.saveAgent(ctx, tx, a, entries); err != nil {
			return fmt.Errorf("save agent %s: %w", a.Name, err)
		}
	}

	return nil
}

func (a AgentSeed) entries() []agents.ToolEntry {
	entries := make([]agents.ToolEntry, 0, len(a.Tools))
	for _, t := range a.Tools {
		config := t.Config
		if config == nil {
			config = map[string]any{}
		}
		entries = append(entries, agents.ToolEntry{
			Key:     t.Key,
			Handler: t.Handler,
			Config:  config,
		})
	}
	return entries
}

func (s *AgentSeeder) loadSeedData() (*AgentSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/agents.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data AgentSeedData
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}

func (s *AgentSeeder) saveAgent(ctx context.Context, tx *sql.Tx, a AgentSeed, entries []agents.ToolEntry) error {
	tools, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	var description *string
	if a.Description != "" {
		description = &a.Description
	}

	var id string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM agents WHERE name = $1 ORDER BY created_at LIMIT 1 FOR UPDATE`,
		a.Name,
	).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO agents (name, description, tools) VALUES ($1, $2, $3)`,
			a.Name, description, string(tools),
		)
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE agents SET description = $2, tools = $3, updated_at = NOW() WHERE id = $1`,
			id, description, string(tools),
		)
	}

	return err
}
