package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/model"
	"github.com/sells-group/fundamentals-cli/internal/store"
)

var (
	exportRunID string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a run's ratio table to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runID := exportRunID
		if runID == "" {
			run, err := st.LatestRun(ctx)
			if err != nil {
				return err
			}
			runID = run.ID
		}

		rows, err := st.ListRatios(ctx, runID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return eris.Errorf("export: run %s has no ratio rows", runID)
		}

		if err := writeRatioXLSX(exportOut, rows); err != nil {
			return err
		}

		zap.L().Info("ratios exported",
			zap.String("run_id", runID),
			zap.String("path", exportOut),
			zap.Int("companies", len(rows)),
		)
		return nil
	},
}

var ratioSheetHeader = []string{
	"Company", "SIC", "Assets", "Liabilities", "Equity",
	"ROE", "ROA", "Profit Margin", "Equity Multiplier", "Fixed Assets to Net Worth",
	"Debt to Net Worth", "Asset Turnover", "Inventory Turnover", "Days Receivables", "Quick Ratio",
}

func writeRatioXLSX(path string, rows []model.RatioRow) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Ratios")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range ratioSheetHeader {
		hr.AddCell().SetString(h)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Company)
		row.AddCell().SetInt(r.SIC)
		for _, v := range []float64{
			r.Assets, r.Liabilities, r.Equity,
			r.ROE, r.ROA, r.ProfitMargin, r.EquityMultiplier, r.FixedAssetsToNetWorth,
			r.DebtToNetWorth, r.AssetTurnover, r.InventoryTurnover, r.DaysReceivables, r.QuickRatio,
		} {
			row.AddCell().SetFloat(v)
		}
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run id to export (default latest)")
	exportCmd.Flags().StringVar(&exportOut, "out", "ratios.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
