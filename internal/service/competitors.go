package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/repository"
)

const (
	marketPositionChallenger = "challenger"
	weaknessesPlaceholder    = "Further analysis required to determine specific weaknesses."
)

// CompetitorService records competitor analyses for tracked companies.
type CompetitorService struct {
	companies   repository.CompaniesRepository
	competitors repository.CompetitorsRepository
	enricher    CompanyEnricher
	logger      *zap.Logger
}

// NewCompetitorService creates a new instance of CompetitorService.
func NewCompetitorService(companies repository.CompaniesRepository, competitors repository.CompetitorsRepository, enricher CompanyEnricher, logger *zap.Logger) *CompetitorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompetitorService{companies: companies, competitors: competitors, enricher: enricher, logger: logger}
}

// List returns the competitors of an existing company.
func (s *CompetitorService) List(ctx context.Context, companyID uuid.UUID) ([]entity.Competitor, error) {
	if _, err := s.companies.Get(ctx, companyID); err != nil {
		return nil, err
	}
	return s.competitors.ListByCompany(ctx, companyID)
}

// Add scrapes the named competitor and stores a comparison against the
// company. Scrape failures are returned unchanged.
func (s *CompetitorService) Add(ctx context.Context, req dto.CreateCompetitorRequest) (*entity.Competitor, error) {
	company, err := s.companies.Get(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	data, err := s.enricher.Enrich(ctx, strings.TrimSpace(req.CompetitorName))
	if err != nil {
		return nil, err
	}

	competitor := compareCompetitor(company, data)
	if competitor.Name == "" {
		competitor.Name = req.CompetitorName
	}
	if err := s.competitors.Create(ctx, competitor); err != nil {
		return nil, err
	}
	s.logger.Info("competitor added",
		zap.String("company", company.Name),
		zap.String("competitor", competitor.Name),
		zap.Int("similarity", competitor.SimilarityScore),
	)
	return competitor, nil
}

func compareCompetitor(company *entity.Company, data *dto.CompanyData) *entity.Competitor {
	industry := orUnknown(data.Industry)
	size := orUnknown(data.Size)
	country := orUnknown(data.Country)

	similarity := 30
	if company.Industry == industry {
		similarity += 30
	}
	if company.Size == size {
		similarity += 20
	}
	if company.Country == country {
		similarity += 20
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Both %s and %s operate in the %s industry.", company.Name, data.Name, company.Industry)
	if company.Size == size {
		fmt.Fprintf(&b, " They are similar in size (%s).", company.Size)
	} else {
		fmt.Fprintf(&b, " While %s is %s, %s is %s.", company.Name, company.Size, data.Name, size)
	}

	strengths := data.Name + " has limited online visibility."
	if data.SocialMedia != nil && data.SocialMedia.Count() > 0 {
		strengths = data.Name + " has a strong online presence."
	}

	return &entity.Competitor{
		CompanyID:       company.ID,
		Name:            data.Name,
		Website:         data.Website,
		Industry:        industry,
		Size:            size,
		MarketPosition:  marketPositionChallenger,
		Strengths:       strengths,
		Weaknesses:      weaknessesPlaceholder,
		SimilarityScore: similarity,
		AIComparison:    b.String(),
	}
}
