package main

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

type namedSeeder string

func (s namedSeeder) Name() string                        { return string(s) }
func (s namedSeeder) Description() string                 { return "" }
func (s namedSeeder) Seed(context.Context, *sql.Tx) error { return nil }

func TestSelectSeeders(t *testing.T) {
	available := []Seeder{namedSeeder("agents"), namedSeeder("logs"), namedSeeder("extras")}

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{"all by default", nil, []string{"agents", "logs", "extras"}, ""},
		{"registration order wins", []string{"extras", "agents"}, []string{"agents", "extras"}, ""},
		{"unknown names reported", []string{"agents", "nope", "gone"}, nil, "nope, gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectSeeders(available, tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectSeeders: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d seeders, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Name() != tt.want[i] {
					t.Errorf("seeder %d = %s, want %s", i, s.Name(), tt.want[i])
				}
			}
		})
	}
}

func TestAgentSeeder_IsFileSeeder(t *testing.T) {
	var s Seeder = &AgentSeeder{}
	if _, ok := s.(FileSeeder); !ok {
		t.Error("AgentSeeder should accept a seed file")
	}
}
