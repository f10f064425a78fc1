package metalogs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/pagination"
	"github.com/JaimeStill/agent-hub/pkg/query"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the audit log repository.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "metalogs"),
		pagination: pagination,
	}
}

func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Entry, error) {
	meta, err := json.Marshal(cmd.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	q := `
		INSERT INTO meta_logs (agent_id, query, response, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, agent_id, query, response, metadata, ts`

	e, err := repository.QueryOne(ctx, r.db, q, []any{cmd.AgentID, cmd.Query, cmd.Response, string(meta)}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("record meta log: %w", err)
	}

	r.logger.Debug("meta log recorded", "agent_id", cmd.AgentID, "id", e.ID, "tool", cmd.Metadata.ToolKey)
	return &e, nil
}

func (r *repo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]Entry, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("AgentID", agentID).
		ThenBy("ID").
		BuildList()

	entries, err := repository.QueryMany(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list meta logs: %w", err)
	}
	return entries, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Query", "Response").
		OrderBy(page.SortBy, page.Descending).
		ThenBy("ID")

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count meta logs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query meta logs: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}
