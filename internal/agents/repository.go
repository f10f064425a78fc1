package agents

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/pagination"
	"github.com/JaimeStill/agent-hub/pkg/query"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

type repo struct {
	db         *sql.DB
	catalog    Catalog
	dependents []Dependent
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the agents repository. dependents are cleared inside the
// delete transaction before the agent row is removed.
func New(db *sql.DB, catalog Catalog, logger *slog.Logger, pagination pagination.Config, dependents ...Dependent) System {
	return &repo{
		db:         db,
		catalog:    catalog,
		dependents: dependents,
		logger:     logger.With("system", "agents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description").
		OrderBy(page.SortBy, page.Descending).
		ThenBy("ID")

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	agents, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	result := pagination.NewPageResult(agents, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	tools := normalizeTools(cmd.Tools)
	if err := ValidateTools(r.catalog, tools); err != nil {
		return nil, err
	}

	data, err := json.Marshal(tools)
	if err != nil {
		return nil, fmt.Errorf("encode tools: %w", err)
	}

	q := `
		INSERT INTO agents (name, description, tools)
		VALUES ($1, $2, $3)
		` + returning

	a, err := repository.QueryOne(ctx, r.db, q, []any{name, cmd.Description, string(data)}, scanAgent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("agent created", "id", a.ID, "name", a.Name, "tools", len(a.Tools))
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		current, err := r.lock(ctx, tx, id)
		if err != nil {
			return Agent{}, err
		}

		if cmd.Name != nil {
			name := strings.TrimSpace(*cmd.Name)
			if name == "" {
				return Agent{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
			}
			current.Name = name
		}
		if cmd.Description != nil {
			current.Description = cmd.Description
			if *cmd.Description == "" {
				current.Description = nil
			}
		}
		if cmd.Tools != nil {
			tools := normalizeTools(*cmd.Tools)
			if err := ValidateTools(r.catalog, tools); err != nil {
				return Agent{}, err
			}
			current.Tools = tools
		}

		return r.save(ctx, tx, current)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, d := range r.dependents {
			if err := d.DeleteByAgent(ctx, tx, id); err != nil {
				return struct{}{}, err
			}
		}
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM agents WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

func (r *repo) ListTools(ctx context.Context, id uuid.UUID) ([]ToolEntry, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Tools, nil
}

func (r *repo) AddTool(ctx context.Context, id uuid.UUID, entry ToolEntry) (*ToolEntry, error) {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		current, err := r.lock(ctx, tx, id)
		if err != nil {
			return Agent{}, err
		}

		tools, err := AttachTool(r.catalog, current.Tools, entry)
		if err != nil {
			return Agent{}, err
		}
		current.Tools = tools
		return r.save(ctx, tx, current)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	if entry.Config == nil {
		entry.Config = map[string]any{}
	}
	r.logger.Info("tool attached", "agent_id", id, "key", entry.Key, "handler", entry.HandlerName())
	return &entry, nil
}

func (r *repo) RemoveTool(ctx context.Context, id uuid.UUID, key string) (*ToolEntry, error) {
	var removed ToolEntry
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Agent, error) {
		current, err := r.lock(ctx, tx, id)
		if err != nil {
			return Agent{}, err
		}

		tools, entry, err := DetachTool(current.Tools, key)
		if err != nil {
			return Agent{}, err
		}
		removed = entry
		current.Tools = tools
		return r.save(ctx, tx, current)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("tool detached", "agent_id", id, "key", key)
	return &removed, nil
}

// lock reads the agent row with FOR UPDATE so concurrent tool mutations
// serialize on the row.
func (r *repo) lock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Agent, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("ID", id)
	return repository.QueryOne(ctx, tx, q+" FOR UPDATE", args, scanAgent)
}

func (r *repo) save(ctx context.Context, tx *sql.Tx, a Agent) (Agent, error) {
	data, err := json.Marshal(normalizeTools(a.Tools))
	if err != nil {
		return Agent{}, fmt.Errorf("encode tools: %w", err)
	}

	q := `
		UPDATE agents
		SET name = $1, description = $2, tools = $3, updated_at = NOW()
		WHERE id = $4
		` + returning

	return repository.QueryOne(ctx, tx, q, []any{a.Name, a.Description, string(data), a.ID}, scanAgent)
}
