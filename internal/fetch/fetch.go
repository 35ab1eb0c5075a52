// Package fetch opens dataset sources, which may be local paths or HTTP URLs.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Code)
}

// Fetcher reads sources, rate limiting and retrying remote ones. It is safe
// for concurrent use.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	attempts uint
	delay    time.Duration
	log      logrus.FieldLogger
}

type Option func(*Fetcher)

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRate allows perSecond requests per second. Zero or less disables
// limiting.
func WithRate(perSecond float64) Option {
	return func(f *Fetcher) {
		if perSecond <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithAttempts(n uint) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		f.log = log
	}
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: time.Minute},
		limiter:  rate.NewLimiter(rate.Every(1*time.Second), 1),
		attempts: 3,
		delay:    500 * time.Millisecond,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader for source. Remote bodies are read fully so retries
// cover the whole transfer. The caller closes the reader.
func (f *Fetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsRemote(source) {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", source, err)
		}
		return file, nil
	}

	var body []byte
	err := retry.Do(
		func() error {
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}
			var err error
			body, err = f.get(ctx, source)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			f.log.WithFields(logrus.Fields{"source": source, "attempt": n + 1}).WithError(err).Warn("Fetch failed, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}
	f.log.WithFields(logrus.Fields{"source": source, "bytes": len(body)}).Debug("Fetched source")
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}

// retryable retries server errors, throttling and transport failures.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code/100 == 5 || serr.Code == http.StatusTooManyRequests
	}
	return true
}
