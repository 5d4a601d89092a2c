// Package search scrapes result links from an HTML search engine page.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/octobees/leads-enricher/internal/fetch"
)

const (
	// DefaultBaseURL is the search endpoint queried when none is configured.
	DefaultBaseURL  = "https://www.google.com/search"
	defaultInterval = 1500 * time.Millisecond
	defaultTimeout  = 10 * time.Second
)

// ErrBlocked reports that the engine refused the request.
var ErrBlocked = errors.New("search engine blocked the request")

var captchaIndicators = []string{"captcha", "unusual traffic", "are you a robot", "verify you are human"}

// HTTPClient abstracts outbound HTTP requests for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues throttled search queries.
type Client struct {
	baseURL string
	client  HTTPClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithInterval sets the minimum spacing between queries. Zero disables
// throttling.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a search client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Every(defaultInterval), 1),
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the external result links for query in page order.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := endpoint.Query()
	q.Set("q", query)
	endpoint.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetch.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("search request blocked", zap.Int("status", resp.StatusCode))
		return nil, ErrBlocked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &fetch.HTTPError{StatusCode: resp.StatusCode, URL: endpoint.String()}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}
	if pageText := strings.ToLower(doc.Find("body").Text()); containsAny(pageText, captchaIndicators) {
		c.logger.Warn("search returned a captcha page", zap.String("query", query))
	}
	return ResultLinks(doc, endpoint.Hostname()), nil
}

// ResultLinks collects absolute result URLs from a search page, unwrapping
// redirect links and skipping links back to the engine itself.
func ResultLinks(doc *goquery.Document, engineHost string) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		target, ok := unwrapResult(href, engineHost)
		if !ok {
			return
		}
		if _, dup := seen[target]; dup {
			return
		}
		seen[target] = struct{}{}
		links = append(links, target)
	})
	return links
}

func unwrapResult(href, engineHost string) (string, bool) {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	// Redirect wrappers: /url?q=<target> and /l/?uddg=<target>.
	if u.Path == "/url" || strings.HasPrefix(u.Path, "/l/") {
		for _, param := range []string{"q", "url", "uddg"} {
			if target := u.Query().Get(param); isExternal(target, engineHost) {
				return target, true
			}
		}
		return "", false
	}
	if isExternal(href, engineHost) {
		return href, true
	}
	return "", false
}

func isExternal(raw, engineHost string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	engine := strings.TrimPrefix(strings.ToLower(engineHost), "www.")
	return engine == "" || (host != engine && !strings.HasSuffix(host, "."+engine))
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
