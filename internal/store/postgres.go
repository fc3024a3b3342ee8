package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/fundamentals-cli/internal/db"
	"github.com/sells-group/fundamentals-cli/internal/model"
)

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres connects to Postgres and verifies the connection.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, eris.New("postgres: database URL is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	fy         INTEGER NOT NULL,
	fp         TEXT NOT NULL,
	companies  INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ratios (
	run_id                    TEXT NOT NULL REFERENCES runs(id),
	company                   TEXT NOT NULL,
	sic                       INTEGER NOT NULL DEFAULT 0,
	assets                    DOUBLE PRECISION NOT NULL DEFAULT 0,
	liabilities               DOUBLE PRECISION NOT NULL DEFAULT 0,
	equity                    DOUBLE PRECISION NOT NULL DEFAULT 0,
	roe                       DOUBLE PRECISION NOT NULL DEFAULT 0,
	roa                       DOUBLE PRECISION NOT NULL DEFAULT 0,
	profit_margin             DOUBLE PRECISION NOT NULL DEFAULT 0,
	equity_multiplier         DOUBLE PRECISION NOT NULL DEFAULT 0,
	fixed_assets_to_net_worth DOUBLE PRECISION NOT NULL DEFAULT 0,
	debt_to_net_worth         DOUBLE PRECISION NOT NULL DEFAULT 0,
	asset_turnover            DOUBLE PRECISION NOT NULL DEFAULT 0,
	inventory_turnover        DOUBLE PRECISION NOT NULL DEFAULT 0,
	days_receivables          DOUBLE PRECISION NOT NULL DEFAULT 0,
	quick_ratio               DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, company)
);

CREATE TABLE IF NOT EXISTS sic_codes (
	code           INTEGER PRIMARY KEY,
	office         TEXT NOT NULL,
	industry_title TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_ratios_company ON ratios(company);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, fy int, fp string, companies int) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.New().String(),
		FY:        fy,
		FP:        fp,
		Companies: companies,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, fy, fp, companies, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.FY, run.FP, run.Companies, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*model.Run, error) {
	var run model.Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, fy, fp, companies, created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&run.ID, &run.FY, &run.FP, &run.Companies, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "postgres: latest run")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest run")
	}
	return &run, nil
}

var ratioColumns = []string{
	"run_id", "company", "sic", "assets", "liabilities", "equity",
	"roe", "roa", "profit_margin", "equity_multiplier", "fixed_assets_to_net_worth",
	"debt_to_net_worth", "asset_turnover", "inventory_turnover", "days_receivables", "quick_ratio",
}

func (s *PostgresStore) SaveRatios(ctx context.Context, runID string, rows []model.RatioRow) error {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			runID, r.Company, r.SIC, r.Assets, r.Liabilities, r.Equity,
			r.ROE, r.ROA, r.ProfitMargin, r.EquityMultiplier, r.FixedAssetsToNetWorth,
			r.DebtToNetWorth, r.AssetTurnover, r.InventoryTurnover, r.DaysReceivables, r.QuickRatio,
		})
	}
	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "ratios",
		Columns:      ratioColumns,
		ConflictKeys: []string{"run_id", "company"},
	}, values)
	return eris.Wrap(err, "postgres: save ratios")
}

const postgresSelectRatio = `
SELECT company, sic, assets, liabilities, equity,
	roe, roa, profit_margin, equity_multiplier, fixed_assets_to_net_worth,
	debt_to_net_worth, asset_turnover, inventory_turnover, days_receivables, quick_ratio
FROM ratios
`

func (s *PostgresStore) ListRatios(ctx context.Context, runID string) ([]model.RatioRow, error) {
	rows, err := s.pool.Query(ctx, postgresSelectRatio+`WHERE run_id = $1 ORDER BY company`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list ratios")
	}
	defer rows.Close()

	var out []model.RatioRow
	for rows.Next() {
		r, err := scanRatioRow(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan ratio row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list ratios")
}

func (s *PostgresStore) GetCompanyRatios(ctx context.Context, runID string, company string) (*model.RatioRow, error) {
	row := s.pool.QueryRow(ctx, postgresSelectRatio+`WHERE run_id = $1 AND company = $2`, runID, company)
	r, err := scanRatioRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: company %q", company)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get ratios for %q", company)
	}
	return &r, nil
}

func (s *PostgresStore) SaveSICCodes(ctx context.Context, codes []model.SICCode) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sic_codes`); err != nil {
		return eris.Wrap(err, "postgres: clear sic codes")
	}
	values := make([][]any, 0, len(codes))
	for _, c := range codes {
		values = append(values, []any{c.Code, c.Office, c.IndustryTitle})
	}
	_, err := db.CopyFrom(ctx, s.pool, "sic_codes", []string{"code", "office", "industry_title"}, values)
	return eris.Wrap(err, "postgres: save sic codes")
}
