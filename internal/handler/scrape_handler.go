package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/dto"
)

// CompanyEnricher scrapes and enriches companies.
type CompanyEnricher interface {
	Enrich(ctx context.Context, source string) (*dto.CompanyData, error)
	ScrapeMany(ctx context.Context, sources []string) []dto.BatchScrapeItem
}

// ScrapeHandler exposes on-demand company scraping.
type ScrapeHandler struct {
	enricher CompanyEnricher
}

// NewScrapeHandler constructs a scrape handler.
func NewScrapeHandler(enricher CompanyEnricher) *ScrapeHandler {
	return &ScrapeHandler{enricher: enricher}
}

// Scrape handles POST /scrape requests.
func (h *ScrapeHandler) Scrape(c echo.Context) error {
	var req dto.ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.SourceURL = strings.TrimSpace(req.SourceURL)
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	data, err := h.enricher.Enrich(c.Request().Context(), req.SourceURL)
	if err != nil {
		return serviceError(c, err, "Scraping failed")
	}
	return Success(c, http.StatusOK, "Company data scraped successfully", data)
}

// ScrapeBatch handles POST /scrape/batch requests. Per-source failures are
// reported inside the result list.
func (h *ScrapeHandler) ScrapeBatch(c echo.Context) error {
	var req dto.BatchScrapeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	items := h.enricher.ScrapeMany(c.Request().Context(), req.Sources)
	succeeded := 0
	for _, item := range items {
		if item.Success {
			succeeded++
		}
	}
	return Success(c, http.StatusOK, "batch scrape completed", map[string]any{
		"results":   items,
		"succeeded": succeeded,
		"failed":    len(items) - succeeded,
	})
}
