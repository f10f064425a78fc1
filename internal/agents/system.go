package agents

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/pagination"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

// System defines agent persistence and tool attachment.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	Create(ctx context.Context, cmd CreateCommand) (*Agent, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListTools(ctx context.Context, id uuid.UUID) ([]ToolEntry, error)
	AddTool(ctx context.Context, id uuid.UUID, entry ToolEntry) (*ToolEntry, error)
	RemoveTool(ctx context.Context, id uuid.UUID, key string) (*ToolEntry, error)
}

// Dependent owns rows keyed by agent id that are removed with the agent
// inside the deleting transaction.
type Dependent interface {
	DeleteByAgent(ctx context.Context, q repository.Querier, agentID uuid.UUID) error
}
