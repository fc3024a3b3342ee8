package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

func TestWriteTableCSV(t *testing.T) {
	table := model.NewTable()
	table.AddColumn("Assets_")
	table.AddColumn("ROE")

	r1 := model.NewRow("ACME CORP")
	r1.Set("Assets_", 100.5)
	r1.Set("ROE", 0.25)
	table.Rows = append(table.Rows, r1)

	r2 := model.NewRow("ZENITH INC")
	r2.Set("Assets_", 50)
	table.Rows = append(table.Rows, r2)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeTableCSV(path, table))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"company", "Assets_", "ROE"}, records[0])
	assert.Equal(t, []string{"ACME CORP", "100.5", "0.25"}, records[1])
	// Missing value renders as zero
	assert.Equal(t, []string{"ZENITH INC", "50", "0"}, records[2])
}

func TestWriteTableCSV_BadPath(t *testing.T) {
	table := model.NewTable()
	err := writeTableCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), table)
	assert.Error(t, err)
}
