package pipeline

import (
	"math"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// logShift keeps ln defined at zero for the mostly non-negative inputs.
const logShift = 0.01

// LogFeatures builds the companion table: ln(0.01 + x) applied element-wise,
// per column per row, over the 13 fixed feature columns. Non-finite results
// (negative inputs past the shift) are zero-filled.
//
// The transform is applied in the conventional per-column orientation; the
// transposed row-reassignment the legacy behavior exhibited is documented as
// unintentional and not reproduced.
func LogFeatures(t *model.Table) *model.Table {
	out := model.NewTable()
	for _, col := range model.LogFeatureColumns {
		out.AddColumn(col)
	}

	for _, row := range t.Rows {
		lr := model.NewRow(row.Company)
		lr.SIC = row.SIC
		for _, col := range model.LogFeatureColumns {
			v := math.Log(logShift + row.Val(col))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			lr.Set(col, v)
		}
		out.Rows = append(out.Rows, lr)
	}

	return out
}
