// Package registry holds the static catalog of tools an agent may attach,
// with a JSON Schema for each tool's configuration.
package registry

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"

	"github.com/JaimeStill/agent-hub/internal/tools"
	"github.com/JaimeStill/agent-hub/pkg/decode"
)

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrInvalidConfig = errors.New("invalid tool config")
	ErrDuplicateKey  = errors.New("duplicate registry key")
)

// ToolMetadata describes a tool available for attachment.
type ToolMetadata struct {
	Key          string             `json:"key"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ConfigSchema *jsonschema.Schema `json:"config_schema"`
}

// Definition pairs tool metadata with a validator for its configuration.
type Definition struct {
	Metadata ToolMetadata
	validate func(config map[string]any) error
}

var (
	reflector = &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	validate  = validator.New()
)

// Define builds a Definition whose schema is reflected from T and whose
// configs are validated against T's validate tags.
func Define[T any](key, name, description string) Definition {
	return Definition{
		Metadata: ToolMetadata{
			Key:          key,
			Name:         name,
			Description:  description,
			ConfigSchema: reflector.Reflect(new(T)),
		},
		validate: func(config map[string]any) error {
			cfg, err := decode.FromMap[T](config)
			if err != nil {
				return err
			}
			return validate.Struct(cfg)
		},
	}
}

// Registry is an immutable, ordered tool catalog.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// New builds a registry in definition order.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, exists := r.index[d.Metadata.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, d.Metadata.Key)
		}
		r.index[d.Metadata.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// Default returns the catalog of built-in tools.
func Default() *Registry {
	r, err := New(
		Define[tools.GitHubConfig](
			tools.GitHubSummarizerName,
			"GitHub PR Summarizer",
			`Fetch and summarize a GitHub Pull Request. Args: prNumber (number, or "latest" for the newest open PR).`,
		),
		Define[tools.SlackConfig](
			tools.SlackNotifierName,
			"Slack Notifier",
			"Post a message to a Slack channel. Args: text (string).",
		),
		Define[tools.GroqChatConfig](
			tools.GroqChatName,
			"Groq Chat",
			"Ask a secondary LLM persona and return its answer verbatim. Args: message (string).",
		),
		Define[tools.HTTPConfig](
			tools.HTTPName,
			"HTTP Request",
			"Call a configured HTTP endpoint. Args: values for the configured body template, or the request payload itself.",
		),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the metadata registered under key.
func (r *Registry) Lookup(key string) (ToolMetadata, bool) {
	i, ok := r.index[key]
	if !ok {
		return ToolMetadata{}, false
	}
	return r.defs[i].Metadata, true
}

// List returns all metadata in registration order.
func (r *Registry) List() []ToolMetadata {
	list := make([]ToolMetadata, len(r.defs))
	for i, d := range r.defs {
		list[i] = d.Metadata
	}
	return list
}

// Describe renders the one-line prompt description of key.
func (r *Registry) Describe(key string) (string, bool) {
	m, ok := r.Lookup(key)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s: %s — %s", m.Key, m.Name, m.Description), true
}

// ValidateConfig checks config against the schema of key.
func (r *Registry) ValidateConfig(key string, config map[string]any) error {
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTool, key)
	}
	if err := r.defs[i].validate(config); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidConfig, key, err)
	}
	return nil
}
