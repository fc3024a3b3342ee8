package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/edgar"
	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/store"
)

var sicCodesCmd = &cobra.Command{
	Use:   "siccodes",
	Short: "Fetch the SIC code table from EDGAR and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("siccodes"); err != nil {
			return err
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{UserAgent: cfg.Edgar.UserAgent})
		codes, err := edgar.FetchSICCodes(ctx, f, cfg.Edgar.SICCodesURL)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveSICCodes(ctx, codes); err != nil {
			return err
		}

		zap.L().Info("sic codes stored", zap.Int("count", len(codes)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sicCodesCmd)
}
