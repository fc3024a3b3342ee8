package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/edgar"
	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/model"
	"github.com/sells-group/fundamentals-cli/internal/pipeline"
	"github.com/sells-group/fundamentals-cli/internal/store"
	"github.com/sells-group/fundamentals-cli/internal/taxonomy"
)

var (
	runYear     int
	runQuarter  string
	runDataDir  string
	runDownload bool
	runLogOut   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ratio pipeline for one fiscal quarter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if runYear != 0 {
			cfg.Edgar.Year = runYear
		}
		if runQuarter != "" {
			cfg.Edgar.Quarter = runQuarter
		}
		if runDataDir != "" {
			cfg.Edgar.DataDir = runDataDir
		}
		if err := cfg.Validate("run"); err != nil {
			return err
		}

		tax, err := taxonomy.Load(cfg.Edgar.TaxonomyPath)
		if err != nil {
			return eris.Wrap(err, "load taxonomy")
		}

		fy, fp := cfg.Edgar.Year, cfg.Edgar.Quarter
		dataDir := cfg.Edgar.DataDir
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return eris.Wrap(err, "create data dir")
		}

		subPath := filepath.Join(dataDir, "sub.txt")
		numPath := filepath.Join(dataDir, "num.txt")
		if runDownload {
			f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{UserAgent: cfg.Edgar.UserAgent})
			subPath, numPath, err = edgar.FetchQuarterArchive(ctx, f, cfg.Edgar.BaseURL, fy, fp, dataDir)
			if err != nil {
				return err
			}
		}

		subs, facts, err := edgar.LoadQuarter(ctx, subPath, numPath, fy, fp)
		if err != nil {
			return err
		}
		joined := edgar.JoinFacts(subs, facts)

		table, err := pipeline.BuildWideTable(joined, tax.Union())
		if err != nil {
			return eris.Wrap(err, "build wide table")
		}
		dropped := pipeline.DeriveRatios(table, tax, pipeline.DefaultValue(cfg.Edgar.DefaultRatioValue))

		zap.L().Info("ratio table derived",
			zap.Int("fy", fy),
			zap.String("fp", fp),
			zap.Int("companies", table.Len()),
			zap.Int("dropped", dropped),
		)

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, fy, fp, table.Len())
		if err != nil {
			return err
		}
		if err := st.SaveRatios(ctx, run.ID, model.RatioRowsFromTable(table)); err != nil {
			return err
		}

		if runLogOut != "" {
			logTable := pipeline.LogFeatures(table)
			if err := writeTableCSV(runLogOut, logTable); err != nil {
				return eris.Wrap(err, "write log features")
			}
			zap.L().Info("log features written", zap.String("path", runLogOut))
		}

		zap.L().Info("run complete",
			zap.String("run_id", run.ID),
			zap.Int("companies", run.Companies),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// writeTableCSV writes a company-keyed table with its columns as a CSV file.
func writeTableCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	header := append([]string{"company"}, t.Columns...)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "write header")
	}
	for _, row := range t.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.Company)
		for _, col := range t.Columns {
			record = append(record, strconv.FormatFloat(row.Val(col), 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "write record")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "flush csv")
}

func init() {
	runCmd.Flags().IntVar(&runYear, "year", 0, "fiscal year (default from config)")
	runCmd.Flags().StringVar(&runQuarter, "quarter", "", "fiscal quarter Q1..Q4 (default from config)")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "", "directory holding sub.txt and num.txt")
	runCmd.Flags().BoolVar(&runDownload, "download", false, "download the quarter archive from EDGAR first")
	runCmd.Flags().StringVar(&runLogOut, "log-out", "", "write log-transformed feature CSV to this path")
	rootCmd.AddCommand(runCmd)
}
