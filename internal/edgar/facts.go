package edgar

import (
	"context"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/model"
)

// numColumns are the num.txt columns the pipeline consumes.
var numColumns = []string{
	"adsh", "tag", "ddate", "qtrs", "coreg", "value", "uom", "footnote",
}

// LoadFacts parses a num.txt stream into Fact records. A blank value field
// yields HasValue=false rather than zero; the fact selector filters those out
// later, not the loader.
func LoadFacts(ctx context.Context, r io.Reader) ([]model.Fact, error) {
	headerCh := make(chan []string, 1)
	rowCh, errCh := fetcher.StreamDelimited(ctx, r, fetcher.DelimitedOptions{
		Delimiter:  '\t',
		HasHeader:  true,
		HeaderCh:   headerCh,
		LazyQuotes: true,
	})

	var colIdx map[string]int
	var facts []model.Fact

	for row := range rowCh {
		if colIdx == nil {
			colIdx = mapColumns(<-headerCh)
			if err := requireColumns(colIdx, "num.txt", numColumns...); err != nil {
				return nil, err
			}
		}

		f := model.Fact{
			ADSH:     getCol(row, colIdx, "adsh"),
			Tag:      getCol(row, colIdx, "tag"),
			DDate:    getCol(row, colIdx, "ddate"),
			Qtrs:     parseIntOr(getCol(row, colIdx, "qtrs"), 0),
			Coreg:    getCol(row, colIdx, "coreg"),
			UOM:      getCol(row, colIdx, "uom"),
			Footnote: getCol(row, colIdx, "footnote"),
		}
		if raw := getCol(row, colIdx, "value"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				f.Value = v
				f.HasValue = true
			}
		}
		facts = append(facts, f)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if colIdx == nil {
		select {
		case header := <-headerCh:
			colIdx = mapColumns(header)
			if err := requireColumns(colIdx, "num.txt", numColumns...); err != nil {
				return nil, err
			}
		default:
		}
	}

	zap.L().Info("loaded facts", zap.Int("rows", len(facts)))
	return facts, nil
}

// JoinFacts joins facts to the pre-filtered submission set on adsh, attaching
// company name, SIC, and the submission's fiscal period end-date. Facts whose
// submission is not in the cohort are discarded.
func JoinFacts(subs []model.Submission, facts []model.Fact) []model.CompanyFact {
	byADSH := make(map[string]model.Submission, len(subs))
	for _, s := range subs {
		byADSH[s.ADSH] = s
	}

	var joined []model.CompanyFact
	for _, f := range facts {
		sub, ok := byADSH[f.ADSH]
		if !ok {
			continue
		}
		joined = append(joined, model.CompanyFact{
			Fact:    f,
			Company: sub.Name,
			SIC:     sub.SIC,
			Period:  sub.Period,
		})
	}

	zap.L().Info("joined facts to submissions",
		zap.Int("facts", len(joined)),
		zap.Int("submissions", len(subs)),
	)
	return joined
}
