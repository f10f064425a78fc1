// Package chatlogs stores the per-agent chat transcript.
package chatlogs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/repository"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAgent
}

// Entry is one turn of an agent transcript.
type Entry struct {
	ID        int64     `json:"id"`
	AgentID   uuid.UUID `json:"agent_id"`
	Role      Role      `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// System defines transcript persistence.
type System interface {
	Append(ctx context.Context, agentID uuid.UUID, role Role, message string) (*Entry, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]Entry, error)
	DeleteByAgent(ctx context.Context, q repository.Querier, agentID uuid.UUID) error
}
