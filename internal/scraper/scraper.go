// Package scraper turns a company name or website into a company profile.
package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/extract"
)

const maxWebsiteCandidates = 3

var (
	// ErrNoWebsite means no website could be found for a company name.
	ErrNoWebsite = errors.New("no company website found")
	// ErrNoContent means the website yielded no readable text.
	ErrNoContent = errors.New("failed to extract content")
)

// Reason renders a scrape error as the user-facing failure reason.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoWebsite):
		return "No company website found"
	case errors.Is(err, ErrNoContent):
		return "Failed to extract content"
	case err == nil:
		return ""
	default:
		return "Scraping failed"
	}
}

// Searcher returns result links for a query, most relevant first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// TextFetcher returns the visible text of a page, or "" on failure.
type TextFetcher interface {
	FetchText(ctx context.Context, url string) string
}

// Recorder receives scrape outcomes.
type Recorder interface {
	ObserveScrape(outcome string)
}

// Result is a scraped company.
type Result struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	extract.CompanyProfile
}

// Scraper locates a company's website and extracts its profile.
type Scraper struct {
	search    Searcher
	fetch     TextFetcher
	extractor *extract.Extractor
	recorder  Recorder
	logger    *zap.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithExtractor overrides the default extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Scraper) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithRecorder reports scrape outcomes.
func WithRecorder(r Recorder) Option {
	return func(s *Scraper) { s.recorder = r }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wires the search and fetch collaborators.
func New(search Searcher, fetch TextFetcher, opts ...Option) *Scraper {
	s := &Scraper{
		search:    search,
		fetch:     fetch,
		extractor: extract.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape resolves source, a website URL or a company name, into a profile.
// On failure the returned Result still carries the name and any website
// that was tried.
func (s *Scraper) Scrape(ctx context.Context, source string) (Result, error) {
	source = strings.TrimSpace(source)
	var res Result
	if isURL(source) {
		res.Website = source
		res.Name = strings.SplitN(Domain(source), ".", 2)[0]
	} else {
		res.Name = source
		websites := s.FindWebsites(ctx, source)
		if len(websites) == 0 {
			s.logger.Info("no website found", zap.String("company", source))
			s.observe("no_website")
			return res, ErrNoWebsite
		}
		res.Website = websites[0]
	}

	s.logger.Info("scraping company", zap.String("company", res.Name), zap.String("url", res.Website))
	text := s.fetch.FetchText(ctx, res.Website)
	if text == "" {
		s.observe("no_content")
		return res, ErrNoContent
	}

	res.CompanyProfile = s.extractor.Profile(text, res.Name)
	res.Domain = Domain(res.Website)
	if res.Description == "" {
		res.Description = extract.FallbackDescription(res.Name, text)
	}
	s.observe("success")
	return res, nil
}

// FindWebsites searches for a company's site and keeps the first three
// results whose URL mentions the company name.
func (s *Scraper) FindWebsites(ctx context.Context, companyName string) []string {
	if s.search == nil {
		return nil
	}
	links, err := s.search.Search(ctx, companyName+" company about")
	if err != nil {
		s.logger.Warn("company search failed", zap.String("company", companyName), zap.Error(err))
		return nil
	}
	needle := strings.ToLower(strings.ReplaceAll(companyName, " ", ""))
	var out []string
	for _, link := range links {
		if !isURL(link) || needle == "" {
			continue
		}
		if strings.Contains(strings.ToLower(link), needle) {
			out = append(out, link)
			if len(out) == maxWebsiteCandidates {
				break
			}
		}
	}
	return out
}

func (s *Scraper) observe(outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveScrape(outcome)
	}
}

// Domain returns the host of rawURL without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
