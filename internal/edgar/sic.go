package edgar

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/model"
)

// DefaultSICCodesURL is the SEC page listing the SIC code table.
const DefaultSICCodesURL = "https://www.sec.gov/info/edgar/siccodes.htm"

// FetchSICCodes downloads and parses the SIC industry code table. There is no
// retry beyond the fetcher's standard policy; a failed fetch or an unparsable
// page aborts the step with no partial result.
func FetchSICCodes(ctx context.Context, f fetcher.Fetcher, url string) ([]model.SICCode, error) {
	if url == "" {
		url = DefaultSICCodesURL
	}
	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, eris.Wrap(err, "edgar: fetch sic codes")
	}
	defer body.Close() //nolint:errcheck

	codes, err := ParseSICTable(body)
	if err != nil {
		return nil, err
	}

	zap.L().Info("fetched sic codes", zap.Int("count", len(codes)))
	return codes, nil
}

// ParseSICTable parses the SIC code HTML table (class "sic") into rows of
// (code, office, industry title). The office column drops its "Office of"
// prefix and the code column is coerced to an integer.
func ParseSICTable(r io.Reader) ([]model.SICCode, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "edgar: parse sic page")
	}

	table := doc.Find("table.sic").First()
	if table.Length() == 0 {
		// Some vintages of the page put the class on a wrapping element.
		table = doc.Find(".sic").First()
	}
	if table.Length() == 0 {
		return nil, eris.New("edgar: sic code table not found in page")
	}

	var codes []model.SICCode
	var parseErr error
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if parseErr != nil {
			return
		}
		cells := tr.Find("th, td")
		if i == 0 || cells.Length() < 3 {
			return // header or malformed row
		}
		rawCode := strings.TrimSpace(cells.Eq(0).Text())
		code, err := strconv.Atoi(rawCode)
		if err != nil {
			parseErr = eris.Wrapf(err, "edgar: non-numeric sic code %q", rawCode)
			return
		}
		office := strings.TrimSpace(cells.Eq(1).Text())
		office = strings.TrimSpace(strings.TrimPrefix(office, "Office of"))
		codes = append(codes, model.SICCode{
			Code:          code,
			Office:        office,
			IndustryTitle: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(codes) == 0 {
		return nil, eris.New("edgar: sic code table has no data rows")
	}

	return codes, nil
}
