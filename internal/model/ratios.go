package model

import "time"

// Canonical column names produced by the priority resolver and identity
// backfill. The trailing underscore separates derived columns from raw tag
// columns, which never carry one.
const (
	ColAssets             = "Assets_"
	ColLiabilities        = "Liabilities_"
	ColEquity             = "Equity_"
	ColNetIncome          = "NetIncome_"
	ColRevenue            = "Revenue_"
	ColCurrentAssets      = "CurrentAssets_"
	ColCurrentLiabilities = "CurrentLiabilities_"
	ColLTDebt             = "LTDebt_"
	ColSTDebt             = "STDebt_"
	ColCOGS               = "COGS_"
	ColInventory          = "Inventory_"
	ColCash               = "Cash_"
	ColAccountsReceivable = "AccountsReceivable_"
	ColMarketableSec      = "MarketableSec_"
	ColAccountsPayable    = "AccountsPayable_"
	ColAccruedLiabilities = "AccruedLiabilities_"
	ColFixedAssets        = "FixedAssets_"
)

// Ratio column names, in computation order.
const (
	ColROE                   = "ROE_"
	ColROA                   = "ROA_"
	ColProfitMargin          = "ProfitMargin_"
	ColEquityMultiplier      = "EquityMultiplier_"
	ColFixedAssetsToNetWorth = "FixedAssetsToNetWorth_"
	ColDebtToNetWorth        = "DebtToNetWorth_"
	ColAssetTurnover         = "AssetTurnover_"
	ColInventoryTurnover     = "InventoryTurnover_"
	ColDaysReceivables       = "DaysReceivables_"
	ColQuickRatio            = "QuickRatio_"
)

// RatioColumns lists the ten ratio columns in computation order.
var RatioColumns = []string{
	ColROE,
	ColROA,
	ColProfitMargin,
	ColEquityMultiplier,
	ColFixedAssetsToNetWorth,
	ColDebtToNetWorth,
	ColAssetTurnover,
	ColInventoryTurnover,
	ColDaysReceivables,
	ColQuickRatio,
}

// LogFeatureColumns lists the 13 columns the log-transform stage operates on.
var LogFeatureColumns = append([]string{ColAssets, ColLiabilities, ColEquity}, RatioColumns...)

// Run records one pipeline execution over a fiscal cohort.
type Run struct {
	ID        string    `json:"id"`
	FY        int       `json:"fy"`
	FP        string    `json:"fp"`
	Companies int       `json:"companies"`
	CreatedAt time.Time `json:"created_at"`
}

// RatioRow is the persisted per-company result: the balance-sheet canonicals
// plus the ten derived ratios.
type RatioRow struct {
	Company               string  `json:"company"`
	SIC                   int     `json:"sic"`
	Assets                float64 `json:"assets"`
	Liabilities           float64 `json:"liabilities"`
	Equity                float64 `json:"equity"`
	ROE                   float64 `json:"roe"`
	ROA                   float64 `json:"roa"`
	ProfitMargin          float64 `json:"profit_margin"`
	EquityMultiplier      float64 `json:"equity_multiplier"`
	FixedAssetsToNetWorth float64 `json:"fixed_assets_to_net_worth"`
	DebtToNetWorth        float64 `json:"debt_to_net_worth"`
	AssetTurnover         float64 `json:"asset_turnover"`
	InventoryTurnover     float64 `json:"inventory_turnover"`
	DaysReceivables       float64 `json:"days_receivables"`
	QuickRatio            float64 `json:"quick_ratio"`
}

// RatioRowFromTableRow flattens a derived table row into a RatioRow.
func RatioRowFromTableRow(r *Row) RatioRow {
	return RatioRow{
		Company:               r.Company,
		SIC:                   r.SIC,
		Assets:                r.Val(ColAssets),
		Liabilities:           r.Val(ColLiabilities),
		Equity:                r.Val(ColEquity),
		ROE:                   r.Val(ColROE),
		ROA:                   r.Val(ColROA),
		ProfitMargin:          r.Val(ColProfitMargin),
		EquityMultiplier:      r.Val(ColEquityMultiplier),
		FixedAssetsToNetWorth: r.Val(ColFixedAssetsToNetWorth),
		DebtToNetWorth:        r.Val(ColDebtToNetWorth),
		AssetTurnover:         r.Val(ColAssetTurnover),
		InventoryTurnover:     r.Val(ColInventoryTurnover),
		DaysReceivables:       r.Val(ColDaysReceivables),
		QuickRatio:            r.Val(ColQuickRatio),
	}
}

// RatioRowsFromTable flattens every row of a derived table.
func RatioRowsFromTable(t *Table) []RatioRow {
	rows := make([]RatioRow, 0, t.Len())
	for _, r := range t.Rows {
		rows = append(rows, RatioRowFromTableRow(r))
	}
	return rows
}
