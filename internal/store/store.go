// Package store persists pipeline runs, per-company ratio rows, and the SIC
// code table behind a driver-selectable interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// ErrNotFound reports a missing run or company.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for the fundamentals pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, fy int, fp string, companies int) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)

	// Ratio rows
	SaveRatios(ctx context.Context, runID string, rows []model.RatioRow) error
	ListRatios(ctx context.Context, runID string) ([]model.RatioRow, error)
	GetCompanyRatios(ctx context.Context, runID string, company string) (*model.RatioRow, error)

	// SIC codes
	SaveSICCodes(ctx context.Context, codes []model.SICCode) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`             // "sqlite" or "postgres"
	Path        string `yaml:"path" mapstructure:"path"`                 // sqlite database file
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"` // postgres connection string
}

// Open creates the configured backend and runs migrations.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var s Store
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "fundamentals.db"
		}
		sq, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		s = sq
	case "postgres":
		pg, err := NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s = pg
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}
