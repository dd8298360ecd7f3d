package registry

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
)

// NewStore initialises the key registry from the supplied configuration.
//
// When cfg.DB.DSN is set it performs the following steps:
//  1. Opens a SQLite connection to the configured DSN, creating the database
//     file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Returns a [Store] backed by the migrated database.
//
// Otherwise it falls back to the JSON file store at cfg.Files.RegistryPath.
//
// Returns an error if the database connection cannot be established, if
// migration fails, or if the registry file cannot be loaded.
func NewStore(cfg config.AgentStorage, logger *logger.Logger) (Store, error) {
	logger.Info().Msg("creating key registry...")

	if cfg.DB.DSN == "" {
		store, err := NewFileStore(cfg.Files.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("registry file store error: %w", err)
		}
		return store, nil
	}

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLiteStore(db, logger), nil
}
