package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/extract"
	"github.com/octobees/leads-enricher/internal/scraper"
	"github.com/octobees/leads-enricher/internal/social"
	"github.com/octobees/leads-enricher/internal/summarizer"
)

const defaultConcurrency = 4

// CompanyScraper turns a website or company name into a profile.
type CompanyScraper interface {
	Scrape(ctx context.Context, source string) (scraper.Result, error)
}

// SocialResolver finds the official social profiles of a company.
type SocialResolver interface {
	Resolve(ctx context.Context, companyName string) social.Links
}

// Analyst writes summaries and value assessments.
type Analyst interface {
	Summarize(ctx context.Context, description string) string
	Analyze(ctx context.Context, subject summarizer.Subject) summarizer.Analysis
}

// CompanyCleaner normalises the contact details of scraped data.
type CompanyCleaner interface {
	CleanCompany(ctx context.Context, data *dto.CompanyData)
}

// ScrapeService runs the full enrichment of a company: scrape, summary,
// social profiles and contact clean-up.
type ScrapeService struct {
	scraper     CompanyScraper
	socials     SocialResolver
	analyst     Analyst
	cleaner     CompanyCleaner
	concurrency int
	logger      *zap.Logger
}

// ScrapeOption configures a ScrapeService.
type ScrapeOption func(*ScrapeService)

// WithConcurrency bounds ScrapeMany.
func WithConcurrency(n int) ScrapeOption {
	return func(s *ScrapeService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithCleaner normalises contact details after scraping.
func WithCleaner(c CompanyCleaner) ScrapeOption {
	return func(s *ScrapeService) { s.cleaner = c }
}

// WithScrapeLogger attaches a logger.
func WithScrapeLogger(logger *zap.Logger) ScrapeOption {
	return func(s *ScrapeService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScrapeService wires the enrichment collaborators.
func NewScrapeService(scr CompanyScraper, socials SocialResolver, analyst Analyst, opts ...ScrapeOption) *ScrapeService {
	s := &ScrapeService{
		scraper:     scr,
		socials:     socials,
		analyst:     analyst,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich scrapes source and completes the result. Errors are the scraper's
// sentinels, see scraper.Reason.
func (s *ScrapeService) Enrich(ctx context.Context, source string) (*dto.CompanyData, error) {
	res, err := s.scraper.Scrape(ctx, source)
	if err != nil {
		s.logger.Info("scrape failed", zap.String("source", source), zap.Error(err))
		return nil, err
	}
	data := companyDataFromResult(res)
	s.Complete(ctx, data)
	s.logger.Info("scraped company", zap.String("company", data.Name), zap.String("website", data.Website))
	return data, nil
}

// Complete fills in what a caller-supplied company lacks: a summary of its
// description and its social profiles.
func (s *ScrapeService) Complete(ctx context.Context, data *dto.CompanyData) {
	if data == nil {
		return
	}
	if data.Summary == "" && data.Description != "" && s.analyst != nil {
		data.Summary = s.analyst.Summarize(ctx, data.Description)
	}
	if (data.SocialMedia == nil || data.SocialMedia.Count() == 0) && s.socials != nil {
		links := s.socials.Resolve(ctx, data.Name)
		data.SocialMedia = &links
	}
	if data.SocialMedia == nil {
		data.SocialMedia = &social.Links{}
	}
	if s.cleaner != nil {
		s.cleaner.CleanCompany(ctx, data)
	}
}

// ScrapeMany enriches every source in parallel. Results keep the input
// order; one failing source does not stop the others.
func (s *ScrapeService) ScrapeMany(ctx context.Context, sources []string) []dto.BatchScrapeItem {
	items := make([]dto.BatchScrapeItem, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, source := range sources {
		source = strings.TrimSpace(source)
		items[i].Source = source
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				items[i].Error = "Scraping cancelled"
				return nil
			}
			data, err := s.Enrich(gCtx, source)
			if err != nil {
				items[i].Error = scraper.Reason(err)
				return nil
			}
			items[i].Success = true
			items[i].Company = data
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func companyDataFromResult(res scraper.Result) *dto.CompanyData {
	return &dto.CompanyData{
		Name:             res.Name,
		Industry:         res.Industry,
		Size:             string(res.Size),
		Description:      res.Description,
		Website:          res.Website,
		Domain:           res.Domain,
		Country:          res.Country,
		Revenue:          res.Revenue,
		LinkedInActivity: string(res.LinkedInActivity),
		TargetAudience:   res.TargetAudience,
		OwnerName:        res.OwnerInfo.Name,
		OwnerEmail:       res.OwnerInfo.Email,
		OwnerEmailStatus: string(res.OwnerInfo.EmailStatus),
		OwnerPhone:       res.OwnerInfo.Phone,
		OwnerLinkedIn:    res.OwnerInfo.LinkedIn,
	}
}

// subjectFor builds the analysis input for a company.
func subjectFor(name, industry, size, description string, platforms []string) summarizer.Subject {
	return summarizer.Subject{
		Name:        name,
		Industry:    orUnknown(industry),
		Size:        orUnknown(size),
		Description: description,
		Social:      platforms,
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return extract.Unknown
	}
	return s
}
