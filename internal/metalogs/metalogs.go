// Package metalogs records an audit entry for every completed chat request.
package metalogs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/pagination"
)

// Metadata describes how a reply was produced.
type Metadata struct {
	Raw         string         `json:"raw"`
	ToolKey     string         `json:"tool_key,omitempty"`
	ToolHandler string         `json:"tool_handler,omitempty"`
	ToolArgs    map[string]any `json:"tool_args,omitempty"`
	ToolResult  string         `json:"tool_result,omitempty"`
	ToolError   string         `json:"tool_error,omitempty"`
	Summarized  bool           `json:"summarized"`
}

// Entry is one audit record. Entries outlive the agent they reference.
type Entry struct {
	ID        int64     `json:"id"`
	AgentID   uuid.UUID `json:"agent_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Metadata  Metadata  `json:"metadata"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordCommand carries the data for a new audit entry.
type RecordCommand struct {
	AgentID  uuid.UUID
	Query    string
	Response string
	Metadata Metadata
}

// System defines audit log persistence.
type System interface {
	Record(ctx context.Context, cmd RecordCommand) (*Entry, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]Entry, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
}
