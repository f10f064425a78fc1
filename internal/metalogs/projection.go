package metalogs

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/pkg/query"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "meta_logs", "m").
	Project("id", "ID").
	Project("agent_id", "AgentID").
	Project("query", "Query").
	Project("response", "Response").
	Project("metadata", "Metadata").
	Project("ts", "Timestamp")

const defaultSort = "Timestamp"

func scanEntry(s repository.Scanner) (Entry, error) {
	var (
		e    Entry
		meta []byte
	)
	if err := s.Scan(&e.ID, &e.AgentID, &e.Query, &e.Response, &meta, &e.Timestamp); err != nil {
		return e, err
	}
	if err := json.Unmarshal(meta, &e.Metadata); err != nil {
		return e, fmt.Errorf("decode metadata: %w", err)
	}
	return e, nil
}

// Filters contains optional filtering criteria for audit queries.
type Filters struct {
	AgentID *uuid.UUID
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unparseable agent_id is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if raw := values.Get("agent_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			f.AgentID = &id
		}
	}
	return f
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.AgentID == nil {
		return b
	}
	return b.WhereEquals("AgentID", *f.AgentID)
}
