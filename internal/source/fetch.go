package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/logging"
)

const (
	userAgent = "quail"

	defaultRetries       = 3
	defaultRetryInterval = 500 * time.Millisecond
	defaultTimeout       = 5 * time.Minute

	// maxVersionSize bounds version documents and release metadata.
	maxVersionSize = 1 << 20
)

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected HTTP status %s", e.URL, e.Status)
}

// Temporary reports whether the request is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Option configures a remote source.
type Option func(*fetcher)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *fetcher) { f.client = c }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n uint64) Option {
	return func(f *fetcher) { f.retries = n }
}

// WithRetryInterval sets the first backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(f *fetcher) { f.interval = d }
}

// WithDownloadDir sets where archives are downloaded and extracted.
// Defaults to the system temp directory.
func WithDownloadDir(dir string) Option {
	return func(f *fetcher) { f.downloadDir = dir }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *fetcher) { f.logger = l }
}

// fetcher performs GET requests with retry for the remote sources.
type fetcher struct {
	client      *http.Client
	retries     uint64
	interval    time.Duration
	downloadDir string
	logger      *slog.Logger
	header      http.Header
	api         string
}

func newFetcher(opts []Option) *fetcher {
	f := &fetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		retries:  defaultRetries,
		interval: defaultRetryInterval,
		logger:   logging.NewDiscard(),
		header:   http.Header{},
		api:      DefaultGitHubAPI,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *fetcher) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.interval
	b.MaxInterval = 10 * f.interval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, f.retries), ctx)
}

// get runs one GET and hands the successful body to consume. The whole
// exchange is retried on network errors and temporary statuses.
func (f *fetcher) get(ctx context.Context, url string, header http.Header, consume func(io.Reader) error) error {
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "creating request"))
		}
		req.Header.Set("User-Agent", userAgent)
		for k, vs := range f.header {
			req.Header[k] = vs
		}
		for k, vs := range header {
			req.Header[k] = vs
		}

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return errors.Wrapf(err, "GET %s", url)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			serr := &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
			if serr.Temporary() {
				return serr
			}
			return backoff.Permanent(serr)
		}

		return consume(resp.Body)
	}

	notify := func(err error, wait time.Duration) {
		f.logger.Warn("request failed, retrying", "url", url, "attempt", attempt, "wait", wait, "error", err)
	}

	return backoff.RetryNotify(op, f.backOff(ctx), notify)
}

// getBytes returns a response body of at most maxVersionSize bytes.
func (f *fetcher) getBytes(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var data []byte
	err := f.get(ctx, url, header, func(r io.Reader) error {
		var err error
		data, err = io.ReadAll(io.LimitReader(r, maxVersionSize))
		return errors.Wrap(err, "reading response body")
	})
	return data, err
}

// download saves url to dst, truncating it before every attempt.
func (f *fetcher) download(ctx context.Context, url, dst string, header http.Header) error {
	f.logger.Debug("downloading", "url", url, "dest", dst)

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}
	defer out.Close()

	err = f.get(ctx, url, header, func(r io.Reader) error {
		if err := out.Truncate(0); err != nil {
			return backoff.Permanent(errors.Wrap(err, "truncating download"))
		}
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(errors.Wrap(err, "rewinding download"))
		}
		n, err := io.Copy(out, r)
		if err != nil {
			return errors.Wrap(err, "writing download")
		}
		f.logger.Debug("downloaded", "url", url, "bytes", n)
		return nil
	})
	if err != nil {
		return err
	}
	return errors.Wrap(out.Sync(), "syncing download")
}

// tempDir makes a fresh working directory for one snapshot.
func (f *fetcher) tempDir() (string, error) {
	if f.downloadDir != "" {
		if err := os.MkdirAll(f.downloadDir, 0o755); err != nil {
			return "", errors.Wrapf(err, "creating %s", f.downloadDir)
		}
	}
	dir, err := os.MkdirTemp(f.downloadDir, "quail-src-*")
	return dir, errors.Wrap(err, "creating download directory")
}
