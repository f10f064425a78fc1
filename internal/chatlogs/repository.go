package chatlogs

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/query"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "chat_logs", "c").
	Project("id", "ID").
	Project("agent_id", "AgentID").
	Project("role", "Role").
	Project("message", "Message").
	Project("ts", "Timestamp")

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.AgentID, &e.Role, &e.Message, &e.Timestamp)
	return e, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates the transcript repository.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "chatlogs"),
	}
}

func (r *repo) Append(ctx context.Context, agentID uuid.UUID, role Role, message string) (*Entry, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	q := `
		INSERT INTO chat_logs (agent_id, role, message)
		VALUES ($1, $2, $3)
		RETURNING id, agent_id, role, message, ts`

	e, err := repository.QueryOne(ctx, r.db, q, []any{agentID, string(role), message}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("append chat log: %w", err)
	}

	r.logger.Debug("chat log appended", "agent_id", agentID, "role", role, "id", e.ID)
	return &e, nil
}

// ListByAgent returns the transcript oldest first. Entries sharing a
// timestamp keep insertion order.
func (r *repo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]Entry, error) {
	q, args := query.
		NewBuilder(projection, "Timestamp").
		WhereEquals("AgentID", agentID).
		ThenBy("ID").
		BuildList()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list chat logs: %w", err)
	}
	return entries, nil
}

func (r *repo) DeleteByAgent(ctx context.Context, q repository.Querier, agentID uuid.UUID) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM chat_logs WHERE agent_id = $1", agentID); err != nil {
		return fmt.Errorf("delete chat logs: %w", err)
	}
	return nil
}
