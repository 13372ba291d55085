// Package dataset loads the EV population dataset from files, URLs or a
// Postgres table and memoizes it for the session.
package dataset

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/ev-dashboard/internal/config"
	"github.com/sells-group/ev-dashboard/internal/fetcher"
	"github.com/sells-group/ev-dashboard/internal/model"
)

// Supported file formats, by extension.
const (
	FormatCSV  = ".csv"
	FormatXLSX = ".xlsx"
	FormatZIP  = ".zip"
)

// Loader resolves the configured source and parses it into vehicles.
type Loader struct {
	cfg  config.DatasetConfig
	http fetcher.Fetcher
	ftp  fetcher.Fetcher
	// connect opens the Postgres source; swapped in tests.
	connect func(ctx context.Context, dsn string) (Querier, func(), error)
}

// NewLoader creates a Loader from dataset configuration.
func NewLoader(cfg config.DatasetConfig) *Loader {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	return &Loader{
		cfg: cfg,
		http: fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.UserAgent,
			Timeout:    timeout,
			MaxRetries: cfg.MaxRetries,
			RateLimit:  rate.Limit(cfg.RateLimit),
		}),
		ftp: fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
		connect: func(ctx context.Context, dsn string) (Querier, func(), error) {
			pool, err := Connect(ctx, dsn)
			if err != nil {
				return nil, nil, err
			}
			return pool, pool.Close, nil
		},
	}
}

// Source describes where Load reads from, for logs and status lines.
func (l *Loader) Source() string {
	if l.cfg.DatabaseURL != "" {
		return "postgres table " + l.cfg.Table
	}
	if u, err := url.Parse(l.cfg.Source); err == nil && u.User != nil {
		return u.Redacted()
	}
	return l.cfg.Source
}

// Load reads the whole dataset. Failures wrap ErrLoadFailure; a source
// without rows yields ErrEmptyDataset.
func (l *Loader) Load(ctx context.Context) ([]model.Vehicle, error) {
	start := time.Now()
	log := zap.L().With(zap.String("source", l.Source()))
	log.Info("dataset: loading")

	rows, err := l.load(ctx)
	if err != nil {
		log.Error("dataset: load failed", zap.Error(err))
		return nil, loadFailure(err, "dataset: "+l.Source())
	}
	if len(rows) == 0 {
		log.Warn("dataset: source has no rows")
		return nil, eris.Wrapf(ErrEmptyDataset, "dataset: %s", l.Source())
	}

	log.Info("dataset: loaded",
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rows, nil
}

func (l *Loader) load(ctx context.Context) ([]model.Vehicle, error) {
	if l.cfg.DatabaseURL != "" {
		return l.loadPostgres(ctx, l.cfg.DatabaseURL)
	}

	src := strings.TrimSpace(l.cfg.Source)
	if src == "" {
		return nil, eris.New("no source configured")
	}

	u, err := url.Parse(src)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain paths, including Windows drive letters.
		return l.loadFile(ctx, src)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return l.loadFile(ctx, filepath.FromSlash(u.Path))
	case "http", "https":
		return l.loadRemote(ctx, l.http, src, u.Path)
	case "ftp":
		return l.loadRemote(ctx, l.ftp, src, u.Path)
	case "postgres", "postgresql":
		return l.loadPostgres(ctx, src)
	default:
		return nil, eris.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func (l *Loader) loadPostgres(ctx context.Context, dsn string) ([]model.Vehicle, error) {
	q, closeFn, err := l.connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return ReadTable(ctx, q, l.cfg.Table)
}

// formatOf returns the lowercased extension, treating a missing one as CSV.
func formatOf(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return FormatCSV
	}
	return ext
}

func (l *Loader) loadRemote(ctx context.Context, f fetcher.Fetcher, rawURL, urlPath string) ([]model.Vehicle, error) {
	format := formatOf(urlPath)
	switch format {
	case FormatCSV:
		body, err := f.Download(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer body.Close() //nolint:errcheck
		return l.readCSV(ctx, body)

	case FormatXLSX, FormatZIP:
		dir, err := os.MkdirTemp(l.cfg.TempDir, "evdash-*")
		if err != nil {
			return nil, eris.Wrap(err, "create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		local := filepath.Join(dir, "source"+format)
		n, err := f.DownloadToFile(ctx, rawURL, local)
		if err != nil {
			return nil, err
		}
		zap.L().Debug("dataset: downloaded", zap.String("url", rawURL), zap.Int64("bytes", n))
		return l.loadFile(ctx, local)

	default:
		return nil, eris.Errorf("unsupported format %q", format)
	}
}

func (l *Loader) loadFile(ctx context.Context, name string) ([]model.Vehicle, error) {
	switch format := formatOf(name); format {
	case FormatCSV:
		file, err := os.Open(name)
		if err != nil {
			return nil, eris.Wrap(err, "open file")
		}
		defer file.Close() //nolint:errcheck
		return l.readCSV(ctx, file)

	case FormatXLSX:
		rowCh, errCh := fetcher.StreamXLSX(ctx, name, fetcher.XLSXOptions{SheetName: l.cfg.Sheet})
		return collect(ctx, rowCh, errCh)

	case FormatZIP:
		dir, err := os.MkdirTemp(l.cfg.TempDir, "evdash-zip-*")
		if err != nil {
			return nil, eris.Wrap(err, "create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		inner, err := fetcher.ExtractZIPData(name, dir, FormatCSV, FormatXLSX)
		if err != nil {
			return nil, err
		}
		return l.loadFile(ctx, inner)

	default:
		return nil, eris.Errorf("unsupported format %q", format)
	}
}

func (l *Loader) readCSV(ctx context.Context, r io.Reader) ([]model.Vehicle, error) {
	rowCh, errCh := fetcher.StreamCSV(ctx, r, fetcher.CSVOptions{StripBOM: true})
	return collect(ctx, rowCh, errCh)
}
