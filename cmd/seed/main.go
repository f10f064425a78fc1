package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/internal/registry"
)

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to config.toml)")
		file = flag.String("file", "", "Seed file for file-backed seeders (overrides embedded data)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: seed [-dsn <connection-string>] [-file <path>] [-list] [seeder...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	available := []Seeder{
		&AgentSeeder{catalog: registry.Default()},
	}

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range available {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	seeders, err := selectSeeders(available, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	if *file != "" {
		for _, s := range seeders {
			if fs, ok := s.(FileSeeder); ok {
				fs.SetFile(*file)
			}
		}
	}

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		*dsn = cfg.Database.Dsn()
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := runSeeders(ctx, db, seeders); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	for _, s := range seeders {
		fmt.Printf("%s seeded\n", s.Name())
	}
}
