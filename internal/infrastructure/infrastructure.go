// Package infrastructure assembles the shared systems every domain module
// depends on: lifecycle coordination, logging, and the database pool.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/pkg/database"
	"github.com/JaimeStill/agent-hub/pkg/lifecycle"
	"github.com/JaimeStill/agent-hub/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
}

// New creates an Infrastructure from the application configuration.
// Systems are initialized but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}, nil
}

// Start connects the infrastructure systems and registers them with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
