package pipeline

import (
	"math"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// DegeneratePolicy fixes up a single ratio result. It is applied uniformly to
// every ratio immediately after computing it, so the final table never carries
// a non-finite value.
type DegeneratePolicy func(float64) float64

// DefaultValue returns the standard policy: any non-finite result (division by
// zero, 0/0, infinity) is replaced by def.
func DefaultValue(def float64) DegeneratePolicy {
	return func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}
}

// daysPerYear is the annualization factor for the receivables day-count. The
// QuickRatio formula also uses it; the name is historical and the formula is
// kept as-is deliberately.
const daysPerYear = 365

type ratioDef struct {
	column  string
	compute func(r *model.Row) float64
}

// ratioDefs lists the ratio battery in computation order. Each reads only
// canonical columns, which the identity backfill guarantees are defined.
var ratioDefs = []ratioDef{
	{model.ColROE, func(r *model.Row) float64 {
		return r.Val(model.ColNetIncome) / r.Val(model.ColEquity)
	}},
	{model.ColROA, func(r *model.Row) float64 {
		return r.Val(model.ColNetIncome) / r.Val(model.ColAssets)
	}},
	{model.ColProfitMargin, func(r *model.Row) float64 {
		return r.Val(model.ColNetIncome) / r.Val(model.ColRevenue)
	}},
	{model.ColEquityMultiplier, func(r *model.Row) float64 {
		return r.Val(model.ColAssets) / r.Val(model.ColEquity)
	}},
	{model.ColFixedAssetsToNetWorth, func(r *model.Row) float64 {
		return (r.Val(model.ColAssets) - r.Val(model.ColCurrentAssets)) / r.Val(model.ColEquity)
	}},
	{model.ColDebtToNetWorth, func(r *model.Row) float64 {
		return (r.Val(model.ColLTDebt) + r.Val(model.ColSTDebt)) / r.Val(model.ColEquity)
	}},
	{model.ColAssetTurnover, func(r *model.Row) float64 {
		return r.Val(model.ColRevenue) / r.Val(model.ColAssets)
	}},
	{model.ColInventoryTurnover, func(r *model.Row) float64 {
		return r.Val(model.ColCOGS) / r.Val(model.ColInventory)
	}},
	{model.ColDaysReceivables, func(r *model.Row) float64 {
		return daysPerYear / (r.Val(model.ColRevenue) / r.Val(model.ColAccountsReceivable))
	}},
	{model.ColQuickRatio, func(r *model.Row) float64 {
		num := r.Val(model.ColCash) + r.Val(model.ColMarketableSec) + r.Val(model.ColAccountsReceivable)
		den := r.Val(model.ColSTDebt) + r.Val(model.ColAccountsPayable) + r.Val(model.ColAccruedLiabilities)
		return daysPerYear / (num / den)
	}},
}

// ComputeRatios computes the full ratio battery per row, passing each result
// through the degenerate-value policy.
func ComputeRatios(t *model.Table, policy DegeneratePolicy) {
	if policy == nil {
		policy = DefaultValue(0)
	}
	for _, def := range ratioDefs {
		t.AddColumn(def.column)
		for _, row := range t.Rows {
			row.Set(def.column, policy(def.compute(row)))
		}
	}
}
