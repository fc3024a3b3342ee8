// Package pipeline reconciles heterogeneous financial-statement tags into
// canonical per-company columns and derives the standard ratio battery.
package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/model"
)

// reportingUnit is the only unit of measure the numeric pipeline accepts;
// share counts and per-share facts sometimes reuse the same tag names.
const reportingUnit = "USD"

// SelectFacts filters the long fact table down to well-formed, in-period
// facts for the requested tags and deduplicates to one value per
// (company, tag). All of the following must hold:
//
//   - tag is in the requested tag set
//   - report end-date equals the submission's fiscal period end-date
//   - duration is 0 (instant), 1 (quarter), or 2 (two-quarter YTD)
//   - no coregistrant
//   - value present
//   - unit of measure is USD
//
// Survivors are sorted by (company, tag, qtrs) and the first occurrence of
// each (company, tag) pair is kept, which prefers instant over flow durations.
func SelectFacts(facts []model.CompanyFact, tags []string) []model.CompanyFact {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	kept := make([]model.CompanyFact, 0, len(facts))
	for _, f := range facts {
		if !tagSet[f.Tag] {
			continue
		}
		if f.DDate != f.Period {
			continue
		}
		if f.Qtrs != 0 && f.Qtrs != 1 && f.Qtrs != 2 {
			continue
		}
		if f.Coreg != "" {
			continue
		}
		if !f.HasValue {
			continue
		}
		if f.UOM != reportingUnit {
			continue
		}
		kept = append(kept, f)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Company != kept[j].Company {
			return kept[i].Company < kept[j].Company
		}
		if kept[i].Tag != kept[j].Tag {
			return kept[i].Tag < kept[j].Tag
		}
		return kept[i].Qtrs < kept[j].Qtrs
	})

	deduped := kept[:0:0]
	type key struct{ company, tag string }
	seen := make(map[key]bool, len(kept))
	for _, f := range kept {
		k := key{f.Company, f.Tag}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, f)
	}

	zap.L().Info("selected facts",
		zap.Int("input", len(facts)),
		zap.Int("filtered", len(kept)),
		zap.Int("deduplicated", len(deduped)),
	)
	return deduped
}
