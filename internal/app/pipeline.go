// Package app assembles the enrichment pipeline shared by the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/cache"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/fetch"
	"github.com/octobees/leads-enricher/internal/metrics"
	"github.com/octobees/leads-enricher/internal/scraper"
	"github.com/octobees/leads-enricher/internal/search"
	"github.com/octobees/leads-enricher/internal/service"
	"github.com/octobees/leads-enricher/internal/social"
	"github.com/octobees/leads-enricher/internal/summarizer"
)

// Pipeline holds the wired enrichment components.
type Pipeline struct {
	Resolver   *social.Resolver
	Summarizer *summarizer.Service
	Contacts   *service.ContactValidator
	Scrape     *service.ScrapeService

	closers []func() error
}

// NewPipeline builds the scrape pipeline from configuration. Redis and
// Gemini are optional: without them pages are not cached and the
// summarizer returns its fallbacks.
func NewPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg *metrics.Registry) (*Pipeline, error) {
	p := &Pipeline{}
	e := cfg.Enrichment

	fetchOpts := []fetch.Option{fetch.WithLogger(logger), fetch.WithTimeout(e.FetchTimeout)}
	if cfg.RedisURL != "" {
		client, err := cache.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open page cache: %w", err)
		}
		p.closers = append(p.closers, client.Close)
		fetchOpts = append(fetchOpts, fetch.WithCache(cache.NewTextCache(client, e.PageCacheTTL, cache.WithLogger(logger))))
	}
	fetcher := fetch.New(fetchOpts...)

	searcher := search.New(e.SearchBaseURL, search.WithInterval(e.SearchInterval), search.WithLogger(logger))
	verifier := social.NewHTTPVerifier(
		social.WithVerifyTimeout(e.VerifyTimeout),
		social.WithVerifierLogger(logger),
		social.WithRecorder(reg),
	)
	p.Resolver = social.NewResolver(searcher, verifier, social.WithLogger(logger))

	var gen summarizer.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := summarizer.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		p.closers = append(p.closers, gemini.Close)
		gen = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, summaries and analysis use fallbacks")
	}
	p.Summarizer = summarizer.New(gen, summarizer.WithLogger(logger))

	p.Contacts = service.NewContactValidator(e.PhoneRegion)
	scr := scraper.New(searcher, fetcher, scraper.WithRecorder(reg), scraper.WithLogger(logger))
	p.Scrape = service.NewScrapeService(scr, p.Resolver, p.Summarizer,
		service.WithConcurrency(e.Concurrency),
		service.WithCleaner(p.Contacts),
		service.WithScrapeLogger(logger),
	)
	return p, nil
}

// Close releases the cache and LLM clients.
func (p *Pipeline) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		_ = p.closers[i]()
	}
	p.closers = nil
}
