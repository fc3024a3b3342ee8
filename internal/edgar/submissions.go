// Package edgar loads SEC EDGAR source data: the quarterly financial
// statement data sets (sub.txt, num.txt) and the SIC industry code table.
package edgar

import (
	"context"
	"io"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/model"
)

// subColumns are the sub.txt columns the pipeline consumes. Any of them
// missing from the header is a fatal schema mismatch.
var subColumns = []string{
	"adsh", "name", "sic", "countryba", "form", "fye", "period", "fy", "fp", "detail", "instance",
}

// LoadSubmissions parses a sub.txt stream and returns the 10-Q submissions for
// the given fiscal year and period, sorted by company name and deduplicated to
// one submission per name. When duplicate names exist the first after sorting
// wins, a deliberate and possibly lossy tie-break.
func LoadSubmissions(ctx context.Context, r io.Reader, fy int, fp string) ([]model.Submission, error) {
	headerCh := make(chan []string, 1)
	rowCh, errCh := fetcher.StreamDelimited(ctx, r, fetcher.DelimitedOptions{
		Delimiter:  '\t',
		HasHeader:  true,
		HeaderCh:   headerCh,
		LazyQuotes: true,
	})

	var colIdx map[string]int
	var subs []model.Submission

	for row := range rowCh {
		if colIdx == nil {
			colIdx = mapColumns(<-headerCh)
			if err := requireColumns(colIdx, "sub.txt", subColumns...); err != nil {
				return nil, err
			}
		}

		if getCol(row, colIdx, "form") != "10-Q" {
			continue
		}
		if parseIntOr(getCol(row, colIdx, "fy"), 0) != fy || getCol(row, colIdx, "fp") != fp {
			continue
		}

		subs = append(subs, model.Submission{
			ADSH:     getCol(row, colIdx, "adsh"),
			Name:     getCol(row, colIdx, "name"),
			SIC:      parseIntOr(getCol(row, colIdx, "sic"), 0),
			Country:  getCol(row, colIdx, "countryba"),
			Form:     getCol(row, colIdx, "form"),
			FYE:      getCol(row, colIdx, "fye"),
			Period:   getCol(row, colIdx, "period"),
			FY:       fy,
			FP:       fp,
			Detail:   parseBool01(getCol(row, colIdx, "detail")),
			Instance: getCol(row, colIdx, "instance"),
		})
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	if colIdx == nil {
		// Empty file still surfaces a header so schema errors don't hide.
		select {
		case header := <-headerCh:
			colIdx = mapColumns(header)
			if err := requireColumns(colIdx, "sub.txt", subColumns...); err != nil {
				return nil, err
			}
		default:
		}
	}

	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
	zap.L().Info("submissions matched cohort",
		zap.Int("fy", fy),
		zap.String("fp", fp),
		zap.Int("companies", len(subs)),
	)

	deduped := dedupByName(subs)
	zap.L().Info("submissions after duplicate removal", zap.Int("companies", len(deduped)))

	return deduped, nil
}

// dedupByName keeps the first submission per company name. Input must already
// be sorted by name.
func dedupByName(subs []model.Submission) []model.Submission {
	out := subs[:0:0]
	seen := make(map[string]bool, len(subs))
	for _, s := range subs {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out
}
