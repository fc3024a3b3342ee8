package pipeline

import (
	"github.com/sells-group/fundamentals-cli/internal/model"
	"github.com/sells-group/fundamentals-cli/internal/taxonomy"
)

// BuildWideTable is the first pipeline entry point: it selects the relevant
// facts for the requested tag universe and pivots them into the wide
// per-company table.
func BuildWideTable(facts []model.CompanyFact, tags []string) (*model.Table, error) {
	return Pivot(SelectFacts(facts, tags))
}

// DeriveRatios is the second entry point: it resolves the canonical columns,
// applies the accounting-identity backfill (dropping unresolvable rows), and
// computes the ratio battery in place. Returns the number of dropped rows.
func DeriveRatios(t *model.Table, tax *taxonomy.Taxonomy, policy DegeneratePolicy) int {
	ResolvePriority(t, tax.Concepts)
	dropped := ApplyIdentity(t)
	ComputeRatios(t, policy)
	return dropped
}
