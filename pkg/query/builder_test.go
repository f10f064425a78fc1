package query_test

import (
	"testing"

	"github.com/JaimeStill/agent-hub/pkg/query"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "agents", "a").
		Project("id", "ID").
		Project("name", "Name").
		Project("description", "Description").
		Project("created_at", "CreatedAt")
}

func TestBuilder_BuildPage(t *testing.T) {
	search := "bot"
	name := "helper"

	b := query.NewBuilder(projection(), "Name").
		WhereContains("Name", &name).
		WhereSearch(&search, "Name", "Description").
		OrderBy("CreatedAt", true)

	sql, args := b.BuildPage(2, 10)

	want := "SELECT a.id, a.name, a.description, a.created_at FROM public.agents a" +
		" WHERE a.name ILIKE $1 AND (a.name ILIKE $2 OR a.description ILIKE $3)" +
		" ORDER BY a.created_at DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("sql =\n%s\nwant\n%s", sql, want)
	}
	if len(args) != 3 || args[0] != "%helper%" || args[2] != "%bot%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuilder_IgnoresEmptyFilters(t *testing.T) {
	empty := ""
	sql, args := query.NewBuilder(projection(), "Name").
		WhereContains("Name", nil).
		WhereSearch(&empty, "Name").
		WhereEquals("ID", nil).
		BuildCount()

	if sql != "SELECT COUNT(*) FROM public.agents a" {
		t.Errorf("sql = %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v", args)
	}
}

func TestBuilder_OrderBy(t *testing.T) {
	tests := []struct {
		name  string
		field string
		desc  bool
		want  string
	}{
		{"default", "", false, " ORDER BY a.name ASC"},
		{"projected", "CreatedAt", true, " ORDER BY a.created_at DESC"},
		{"unprojected falls back", "name; DROP TABLE agents", false, " ORDER BY a.name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(projection(), "Name").OrderBy(tt.field, tt.desc).BuildList()
			prefix := "SELECT a.id, a.name, a.description, a.created_at FROM public.agents a"
			if sql != prefix+tt.want {
				t.Errorf("sql = %s", sql)
			}
		})
	}
}

func TestBuilder_ThenBy(t *testing.T) {
	sql, _ := query.NewBuilder(projection(), "CreatedAt").ThenBy("ID").BuildList()
	want := "SELECT a.id, a.name, a.description, a.created_at FROM public.agents a ORDER BY a.created_at ASC, a.id ASC"
	if sql != want {
		t.Errorf("sql = %s", sql)
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(projection(), "Name").BuildSingle("ID", "abc")
	if sql != "SELECT a.id, a.name, a.description, a.created_at FROM public.agents a WHERE a.id = $1" {
		t.Errorf("sql = %s", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v", args)
	}
}
