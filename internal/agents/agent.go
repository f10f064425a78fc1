// Package agents provides the domain system for agent records and the tools
// attached to them.
package agents

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a named configuration bundle that participates in chat.
type Agent struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Tools       []ToolEntry `json:"tools"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ToolEntry attaches a registry tool to an agent. Handler selects the
// invoker implementation and defaults to Key when empty.
type ToolEntry struct {
	Key     string         `json:"key"`
	Handler string         `json:"handler"`
	Config  map[string]any `json:"config"`
}

// HandlerName returns the handler that serves this entry.
func (e ToolEntry) HandlerName() string {
	if e.Handler == "" {
		return e.Key
	}
	return e.Handler
}

// Tool returns the attached entry with key.
func (a *Agent) Tool(key string) (ToolEntry, bool) {
	for _, t := range a.Tools {
		if t.Key == key {
			return t, true
		}
	}
	return ToolEntry{}, false
}

// CreateCommand contains the data required to create a new agent.
type CreateCommand struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Tools       []ToolEntry `json:"tools,omitempty"`
}

// UpdateCommand carries a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Tools       *[]ToolEntry `json:"tools,omitempty"`
}
