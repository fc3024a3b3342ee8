package pipeline

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// ErrDuplicateFact reports a (company, tag) pair that still has more than one
// value at pivot time. SelectFacts must guarantee this never happens; a
// violation here means corrupt input rather than a recoverable condition.
var ErrDuplicateFact = eris.New("pipeline: duplicate company/tag pair")

// Pivot reshapes the deduplicated long fact table into a wide table: one row
// per company, one column per tag. Missing (company, tag) combinations stay
// absent rather than zero-filled. Row order follows first appearance, which is
// company-name order when the input comes from SelectFacts.
func Pivot(facts []model.CompanyFact) (*model.Table, error) {
	t := model.NewTable()
	rows := make(map[string]*model.Row, len(facts))

	for _, f := range facts {
		row, ok := rows[f.Company]
		if !ok {
			row = model.NewRow(f.Company)
			row.SIC = f.SIC
			rows[f.Company] = row
			t.Rows = append(t.Rows, row)
		}
		if row.Has(f.Tag) {
			return nil, eris.Wrapf(ErrDuplicateFact, "company %q tag %q", f.Company, f.Tag)
		}
		row.Set(f.Tag, f.Value)
		t.AddColumn(f.Tag)
	}

	zap.L().Info("pivoted to wide table",
		zap.Int("companies", t.Len()),
		zap.Int("columns", len(t.Columns)),
	)
	return t, nil
}
