// Package fetch downloads web pages and reduces them to visible text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
	maxBodyBytes    = 5 << 20

	// UserAgent is sent with every page request.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var (
	errNotHTML    = errors.New("response is not html")
	errBadRequest = errors.New("build request")
)

// HTTPError reports a non-200 response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPClient abstracts outbound HTTP requests for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cache stores extracted page text keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Fetcher retrieves page text, retrying transient failures.
type Fetcher struct {
	client   HTTPClient
	cache    Cache
	logger   *zap.Logger
	timeout  time.Duration
	attempts uint
	delay    time.Duration

	// inflight collapses concurrent downloads of the same URL.
	inflight singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithCache enables caching of extracted text.
func WithCache(c Cache) Option {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithRetry sets the attempt count and base delay between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(f *Fetcher) {
		if attempts > 0 {
			f.attempts = attempts
		}
		f.delay = delay
	}
}

// New builds a Fetcher with sensible defaults.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{},
		logger:   zap.NewNop(),
		timeout:  defaultTimeout,
		attempts: defaultAttempts,
		delay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchText returns the visible text of the page at rawURL. Failures are
// logged and yield an empty string.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) string {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		f.logger.Debug("skip fetch", zap.String("url", rawURL), zap.Error(err))
		return ""
	}
	if f.cache != nil {
		if text, ok := f.cache.Get(ctx, target); ok {
			return text
		}
	}

	// Shared by every caller waiting on target; a cancelled caller leaves it running.
	shared := context.WithoutCancel(ctx)
	ch := f.inflight.DoChan(target, func() (any, error) {
		return f.download(shared, target)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		f.logger.Debug("fetch abandoned", zap.String("url", target), zap.Error(ctx.Err()))
		return ""
	case res = <-ch:
	}
	if res.Err != nil {
		f.logger.Warn("fetch page failed", zap.String("url", target), zap.Error(res.Err))
		return ""
	}
	text := ExtractText(res.Val.(string))
	if text != "" && f.cache != nil {
		f.cache.Set(ctx, target, text)
	}
	return text
}

func (f *Fetcher) download(ctx context.Context, target string) (string, error) {
	body, err := retry.DoWithData(
		func() ([]byte, error) { return f.get(ctx, target) },
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.MaxJitter(f.delay/2),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Debug("retrying page fetch", zap.String("url", target), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: target}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "text/html") {
		return nil, fmt.Errorf("%w: %s", errNotHTML, ct)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

// isRetryable retries network failures, throttling and server errors.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, errNotHTML) || errors.Is(err, errBadRequest) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// NormalizeURL adds an https scheme when missing and rejects hostless input.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty url")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	return u.String(), nil
}
