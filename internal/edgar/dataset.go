package edgar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/fundamentals-cli/internal/fetcher"
	"github.com/sells-group/fundamentals-cli/internal/model"
)

// DefaultDatasetBaseURL is the root of the quarterly financial statement data
// set archives (2019q2.zip and friends).
const DefaultDatasetBaseURL = "https://www.sec.gov/files/dera/data/financial-statement-data-sets"

// ArchiveURL builds the archive URL for a fiscal cohort, e.g. (2019, "Q2") →
// <base>/2019q2.zip.
func ArchiveURL(baseURL string, fy int, fp string) string {
	return fmt.Sprintf("%s/%d%s.zip", strings.TrimRight(baseURL, "/"), fy, strings.ToLower(fp))
}

// FetchQuarterArchive downloads the cohort's ZIP and extracts sub.txt and
// num.txt into destDir, returning their paths.
func FetchQuarterArchive(ctx context.Context, f fetcher.Fetcher, baseURL string, fy int, fp string, destDir string) (subPath, numPath string, err error) {
	url := ArchiveURL(baseURL, fy, fp)
	zipPath := filepath.Join(destDir, fmt.Sprintf("%d%s.zip", fy, strings.ToLower(fp)))

	zap.L().Info("downloading financial statement data set", zap.String("url", url))
	if _, err := f.DownloadToFile(ctx, url, zipPath); err != nil {
		return "", "", eris.Wrapf(err, "edgar: download archive %d%s", fy, strings.ToLower(fp))
	}
	defer os.Remove(zipPath) //nolint:errcheck

	subPath, err = fetcher.ExtractZIPFile(zipPath, "sub.txt", destDir)
	if err != nil {
		return "", "", eris.Wrap(err, "edgar: extract sub.txt")
	}
	numPath, err = fetcher.ExtractZIPFile(zipPath, "num.txt", destDir)
	if err != nil {
		return "", "", eris.Wrap(err, "edgar: extract num.txt")
	}

	return subPath, numPath, nil
}

// LoadQuarter parses sub.txt and num.txt concurrently and returns the cohort
// submissions and the raw fact rows. The two files are independent until the
// adsh join, so they parse in parallel.
func LoadQuarter(ctx context.Context, subPath, numPath string, fy int, fp string) ([]model.Submission, []model.Fact, error) {
	var subs []model.Submission
	var facts []model.Fact

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := os.Open(subPath)
		if err != nil {
			return eris.Wrapf(err, "edgar: open %s", subPath)
		}
		defer f.Close() //nolint:errcheck
		subs, err = LoadSubmissions(gctx, f, fy, fp)
		return err
	})

	g.Go(func() error {
		f, err := os.Open(numPath)
		if err != nil {
			return eris.Wrapf(err, "edgar: open %s", numPath)
		}
		defer f.Close() //nolint:errcheck
		facts, err = LoadFacts(gctx, f)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return subs, facts, nil
}
