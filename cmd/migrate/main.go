// Package main provides the migrate command for applying or reverting the
// embedded schema migrations.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/internal/migrations"
)

const usage = "usage: migrate up|down|version"

func main() {
	if len(os.Args) != 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	db, err := sql.Open("pgx", cfg.Database.Dsn())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	m, err := migrations.New(db)
	if err != nil {
		db.Close()
		log.Fatal(err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = migrations.Up(m)
	case "down":
		err = migrations.Down(m)
	case "version":
		err = printVersion(m)
	default:
		err = errors.New(usage)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	return nil
}
