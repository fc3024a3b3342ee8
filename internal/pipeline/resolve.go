package pipeline

import (
	"github.com/sells-group/fundamentals-cli/internal/model"
	"github.com/sells-group/fundamentals-cli/internal/taxonomy"
)

// ResolvePriority creates one canonical column per concept by walking each
// concept's tag list in priority order and taking, per company, the first tag
// with a present value. Once set, a row's canonical value is never overwritten
// by a lower-priority tag — a strict priority cascade, not an override chain.
// Rows with no value under any listed tag get zero.
//
// Presence is tracked explicitly on the row, so a reported value of zero under
// a high-priority tag wins over a real value under a lower one. Work is linear
// in rows × tags. Re-running with the same concepts recomputes identical
// columns from the unchanged tag cells, so the operation is idempotent.
func ResolvePriority(t *model.Table, concepts []taxonomy.Concept) {
	for _, c := range concepts {
		t.AddColumn(c.Column)
		for _, row := range t.Rows {
			resolved := 0.0
			for _, tag := range c.Tags {
				if v, ok := row.Get(tag); ok {
					resolved = v
					break
				}
			}
			row.Set(c.Column, resolved)
		}
	}
}
