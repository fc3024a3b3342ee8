package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

func TestWriteRatioXLSX(t *testing.T) {
	rows := []model.RatioRow{
		{Company: "ACME CORP", SIC: 3714, Assets: 100, Liabilities: 60, Equity: 40, ROE: 0.25, QuickRatio: 12.5},
		{Company: "ZENITH INC", SIC: 2834, Assets: 50, Liabilities: 20, Equity: 30},
	}

	path := filepath.Join(t.TempDir(), "ratios.xlsx")
	require.NoError(t, writeRatioXLSX(path, rows))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	sheet, ok := f.Sheet["Ratios"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Company", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Quick Ratio", sheet.Rows[0].Cells[14].String())

	assert.Equal(t, "ACME CORP", sheet.Rows[1].Cells[0].String())
	sic, err := sheet.Rows[1].Cells[1].Int()
	require.NoError(t, err)
	assert.Equal(t, 3714, sic)

	quick, err := sheet.Rows[1].Cells[14].Float()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, quick, 1e-9)
}
