package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

func TestApplyIdentity_ReportedValuesPassThrough(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 100)
	row.Set(tagLiabilities, 60)
	row.Set(tagEquity, 40)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 100.0, row.Val(model.ColAssets))
	assert.Equal(t, 60.0, row.Val(model.ColLiabilities))
	assert.Equal(t, 40.0, row.Val(model.ColEquity))
}

func TestApplyIdentity_LiabilitiesFromLSEMinusSE(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 100)
	row.Set(tagLiabAndSE, 100)
	row.Set(tagEquity, 40)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 60.0, row.Val(model.ColLiabilities))
	assert.Equal(t, 40.0, row.Val(model.ColEquity))
}

func TestApplyIdentity_ZeroLiabilitiesWhenLSEMatchesAssets(t *testing.T) {
	// Liabilities and StockholdersEquity both missing; LSE == Assets ⇒ zero.
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 100)
	row.Set(tagLiabAndSE, 100)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 0.0, row.Val(model.ColLiabilities))
	assert.Equal(t, 100.0, row.Val(model.ColEquity))
}

func TestApplyIdentity_DropsWhenLSEDisagreesWithAssets(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 90)
	row.Set(tagLiabAndSE, 100)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, table.Len())
}

func TestApplyIdentity_DropsWhenNothingReported(t *testing.T) {
	table := tableWith(t, model.NewRow("A CORP"))

	dropped := ApplyIdentity(table)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, table.Len())
}

func TestApplyIdentity_MissingAssetsBecomesZero(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagLiabilities, 60)
	row.Set(tagEquity, 40)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 0.0, row.Val(model.ColAssets))
	assert.Equal(t, 40.0, row.Val(model.ColEquity))
}

func TestApplyIdentity_EquityByIdentity(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 100)
	row.Set(tagLiabilities, 60)
	table := tableWith(t, row)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, 40.0, row.Val(model.ColEquity))
}

func TestApplyIdentity_ZeroFillsRemainingColumns(t *testing.T) {
	row := model.NewRow("A CORP")
	row.Set(tagAssets, 100)
	row.Set(tagLiabilities, 60)
	table := tableWith(t, row)
	table.AddColumn("Revenues")
	table.AddColumn(model.ColRevenue)

	ApplyIdentity(table)

	for _, col := range table.Columns {
		v, ok := row.Get(col)
		require.True(t, ok, "column %s not filled", col)
		assert.False(t, v != v, "column %s is NaN", col)
	}
	assert.Equal(t, 0.0, row.Val(model.ColRevenue))
}

func TestApplyIdentity_MixedRetainAndDrop(t *testing.T) {
	keep := model.NewRow("KEEP CORP")
	keep.Set(tagAssets, 100)
	keep.Set(tagLiabilities, 60)

	drop := model.NewRow("DROP CORP")
	drop.Set(tagAssets, 90)
	drop.Set(tagLiabAndSE, 100)

	table := tableWith(t, keep, drop)

	dropped := ApplyIdentity(table)

	assert.Equal(t, 1, dropped)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "KEEP CORP", table.Rows[0].Company)
}
