package agents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/agent-hub/pkg/query"
	"github.com/JaimeStill/agent-hub/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("tools", "Tools").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const defaultSort = "Name"

const returning = "RETURNING id, name, description, tools, created_at, updated_at"

func scanAgent(s repository.Scanner) (Agent, error) {
	var (
		a     Agent
		tools []byte
	)
	if err := s.Scan(&a.ID, &a.Name, &a.Description, &tools, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return a, err
	}
	if err := json.Unmarshal(tools, &a.Tools); err != nil {
		return a, fmt.Errorf("decode tools: %w", err)
	}
	a.Tools = normalizeTools(a.Tools)
	return a, nil
}

// Filters contains optional filtering criteria for agent queries.
type Filters struct {
	Name *string
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var name *string
	if n := values.Get("name"); n != "" {
		name = &n
	}
	return Filters{Name: name}
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}
