package pipeline

import (
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// Raw tags backing the balance-sheet identity Assets = Liabilities + Equity.
const (
	tagAssets      = "Assets"
	tagLiabilities = "Liabilities"
	tagLiabAndSE   = "LiabilitiesAndStockholdersEquity"
	tagEquity      = "StockholdersEquity"
)

// ApplyIdentity runs the accounting-identity backfill: it derives Assets_,
// Liabilities_, and Equity_ per row, drops rows whose Liabilities cannot be
// resolved, and zero-fills every remaining missing cell. Returns the number of
// dropped rows. The drop is an expected data-quality filter, not an error.
func ApplyIdentity(t *model.Table) int {
	t.AddColumn(model.ColAssets)
	t.AddColumn(model.ColLiabilities)
	t.AddColumn(model.ColEquity)

	retained := t.Rows[:0:0]
	dropped := 0
	for _, row := range t.Rows {
		if resolveIdentity(row) {
			retained = append(retained, row)
		} else {
			dropped++
		}
	}
	t.Rows = retained

	zeroFill(t)

	zap.L().Info("applied accounting identity",
		zap.Int("retained", t.Len()),
		zap.Int("dropped", dropped),
	)
	return dropped
}

// resolveIdentity derives the three identity columns for one row, in strict
// order. Reports false when Liabilities cannot be resolved, which excludes the
// row from the dataset entirely.
func resolveIdentity(row *model.Row) bool {
	// 1. Assets_: reported or zero; Assets itself has no fallback derivation.
	assets := row.Val(tagAssets)
	row.Set(model.ColAssets, assets)

	// 2. Liabilities_: reported, else LiabilitiesAndStockholdersEquity minus
	// StockholdersEquity when both are present.
	// 3. Failing that, zero — but only when LiabilitiesAndStockholdersEquity
	// exactly equals Assets_. Otherwise the row is unresolvable.
	liab, liabOK := row.Get(tagLiabilities)
	lse, lseOK := row.Get(tagLiabAndSE)
	se, seOK := row.Get(tagEquity)
	switch {
	case liabOK:
		row.Set(model.ColLiabilities, liab)
	case lseOK && seOK:
		row.Set(model.ColLiabilities, lse-se)
	case lseOK && lse-assets == 0:
		row.Set(model.ColLiabilities, 0)
	default:
		return false
	}

	// 5. Equity_: reported, else by the identity.
	if seOK {
		row.Set(model.ColEquity, se)
	} else {
		row.Set(model.ColEquity, assets-row.Val(model.ColLiabilities))
	}

	return true
}

// zeroFill materializes an explicit zero for every registered column a row is
// still missing. Downstream ratio math reads every input as defined after this.
func zeroFill(t *model.Table) {
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if !row.Has(col) {
				row.Set(col, 0)
			}
		}
	}
}
