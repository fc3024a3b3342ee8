package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	fy         INTEGER NOT NULL,
	fp         TEXT NOT NULL,
	companies  INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS ratios (
	run_id                    TEXT NOT NULL REFERENCES runs(id),
	company                   TEXT NOT NULL,
	sic                       INTEGER NOT NULL DEFAULT 0,
	assets                    REAL NOT NULL DEFAULT 0,
	liabilities               REAL NOT NULL DEFAULT 0,
	equity                    REAL NOT NULL DEFAULT 0,
	roe                       REAL NOT NULL DEFAULT 0,
	roa                       REAL NOT NULL DEFAULT 0,
	profit_margin             REAL NOT NULL DEFAULT 0,
	equity_multiplier         REAL NOT NULL DEFAULT 0,
	fixed_assets_to_net_worth REAL NOT NULL DEFAULT 0,
	debt_to_net_worth         REAL NOT NULL DEFAULT 0,
	asset_turnover            REAL NOT NULL DEFAULT 0,
	inventory_turnover        REAL NOT NULL DEFAULT 0,
	days_receivables          REAL NOT NULL DEFAULT 0,
	quick_ratio               REAL NOT NULL DEFAULT 0,
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

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, fy int, fp string, companies int) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.New().String(),
		FY:        fy,
		FP:        fp,
		Companies: companies,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, fy, fp, companies, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.FY, run.FP, run.Companies, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*model.Run, error) {
	var run model.Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fy, fp, companies, created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&run.ID, &run.FY, &run.FP, &run.Companies, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrap(ErrNotFound, "sqlite: latest run")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest run")
	}
	return &run, nil
}

const sqliteInsertRatio = `
INSERT INTO ratios (
	run_id, company, sic, assets, liabilities, equity,
	roe, roa, profit_margin, equity_multiplier, fixed_assets_to_net_worth,
	debt_to_net_worth, asset_turnover, inventory_turnover, days_receivables, quick_ratio
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (run_id, company) DO UPDATE SET
	sic = excluded.sic,
	assets = excluded.assets,
	liabilities = excluded.liabilities,
	equity = excluded.equity,
	roe = excluded.roe,
	roa = excluded.roa,
	profit_margin = excluded.profit_margin,
	equity_multiplier = excluded.equity_multiplier,
	fixed_assets_to_net_worth = excluded.fixed_assets_to_net_worth,
	debt_to_net_worth = excluded.debt_to_net_worth,
	asset_turnover = excluded.asset_turnover,
	inventory_turnover = excluded.inventory_turnover,
	days_receivables = excluded.days_receivables,
	quick_ratio = excluded.quick_ratio
`

func (s *SQLiteStore) SaveRatios(ctx context.Context, runID string, rows []model.RatioRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, sqliteInsertRatio)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare ratio insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			runID, r.Company, r.SIC, r.Assets, r.Liabilities, r.Equity,
			r.ROE, r.ROA, r.ProfitMargin, r.EquityMultiplier, r.FixedAssetsToNetWorth,
			r.DebtToNetWorth, r.AssetTurnover, r.InventoryTurnover, r.DaysReceivables, r.QuickRatio,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert ratios for %q", r.Company)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit ratios")
}

const sqliteSelectRatio = `
SELECT company, sic, assets, liabilities, equity,
	roe, roa, profit_margin, equity_multiplier, fixed_assets_to_net_worth,
	debt_to_net_worth, asset_turnover, inventory_turnover, days_receivables, quick_ratio
FROM ratios
`

func (s *SQLiteStore) ListRatios(ctx context.Context, runID string) ([]model.RatioRow, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectRatio+`WHERE run_id = ? ORDER BY company`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list ratios")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.RatioRow
	for rows.Next() {
		r, err := scanRatioRow(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan ratio row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list ratios")
}

func (s *SQLiteStore) GetCompanyRatios(ctx context.Context, runID string, company string) (*model.RatioRow, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelectRatio+`WHERE run_id = ? AND company = ?`, runID, company)
	r, err := scanRatioRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: company %q", company)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get ratios for %q", company)
	}
	return &r, nil
}

func (s *SQLiteStore) SaveSICCodes(ctx context.Context, codes []model.SICCode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM sic_codes`); err != nil {
		return eris.Wrap(err, "sqlite: clear sic codes")
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sic_codes (code, office, industry_title) VALUES (?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare sic insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, c := range codes {
		if _, err := stmt.ExecContext(ctx, c.Code, c.Office, c.IndustryTitle); err != nil {
			return eris.Wrapf(err, "sqlite: insert sic code %d", c.Code)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit sic codes")
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRatioRow(sc rowScanner) (model.RatioRow, error) {
	var r model.RatioRow
	err := sc.Scan(
		&r.Company, &r.SIC, &r.Assets, &r.Liabilities, &r.Equity,
		&r.ROE, &r.ROA, &r.ProfitMargin, &r.EquityMultiplier, &r.FixedAssetsToNetWorth,
		&r.DebtToNetWorth, &r.AssetTurnover, &r.InventoryTurnover, &r.DaysReceivables, &r.QuickRatio,
	)
	return r, err
}
