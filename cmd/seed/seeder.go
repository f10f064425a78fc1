// Package main provides the seed command. Seeders run in registration order
// inside one transaction, so a failed seed leaves the database untouched.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Seeder writes one kind of demo data.
type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, tx *sql.Tx) error
}

// FileSeeder reads its data from a file that can be replaced at run time.
type FileSeeder interface {
	Seeder
	SetFile(path string)
}

// selectSeeders returns the named seeders in registration order, or every
// seeder when names is empty.
func selectSeeders(available []Seeder, names []string) ([]Seeder, error) {
	if len(names) == 0 {
		return available, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	selected := make([]Seeder, 0, len(names))
	for _, s := range available {
		if wanted[s.Name()] {
			selected = append(selected, s)
			delete(wanted, s.Name())
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for _, n := range names {
			if wanted[n] {
				unknown = append(unknown, n)
			}
		}
		return nil, fmt.Errorf("unknown seeder: %s", strings.Join(unknown, ", "))
	}

	return selected, nil
}

func runSeeders(ctx context.Context, db *sql.DB, seeders []Seeder) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range seeders {
		if err := s.Seed(ctx, tx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
