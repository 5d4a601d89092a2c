package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/extract"
	"github.com/octobees/leads-enricher/internal/repository"
	"github.com/octobees/leads-enricher/internal/service/scoring"
	"github.com/octobees/leads-enricher/internal/social"
)

const defaultPriority = "medium"

// CompanyEnricher scrapes companies and completes caller-supplied data.
type CompanyEnricher interface {
	Enrich(ctx context.Context, source string) (*dto.CompanyData, error)
	Complete(ctx context.Context, data *dto.CompanyData)
}

// ContactChecker validates lead contact details.
type ContactChecker interface {
	ValidateEmail(ctx context.Context, email string) EmailResult
	NormalizePhone(raw string) string
}

// LeadService manages leads and the companies they belong to.
type LeadService struct {
	leads     repository.LeadsRepository
	companies repository.CompaniesRepository
	enricher  CompanyEnricher
	analyst   Analyst
	contacts  ContactChecker
	logger    *zap.Logger
}

// LeadOption configures a LeadService.
type LeadOption func(*LeadService)

// WithLeadLogger attaches a logger.
func WithLeadLogger(logger *zap.Logger) LeadOption {
	return func(s *LeadService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(
	leads repository.LeadsRepository,
	companies repository.CompaniesRepository,
	enricher CompanyEnricher,
	analyst Analyst,
	contacts ContactChecker,
	opts ...LeadOption,
) *LeadService {
	s := &LeadService{
		leads:     leads,
		companies: companies,
		enricher:  enricher,
		analyst:   analyst,
		contacts:  contacts,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns leads matching the filter.
func (s *LeadService) List(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error) {
	return s.leads.List(ctx, filter)
}

// Get returns one lead with its company.
func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error) {
	return s.leads.Get(ctx, id)
}

// Create validates the lead's email, finds or builds its company and stores
// the scored lead.
func (s *LeadService) Create(ctx context.Context, req dto.CreateLeadRequest) (*entity.Lead, error) {
	emailResult := s.contacts.ValidateEmail(ctx, req.Email)

	company, socials, err := s.findOrCreateCompany(ctx, req)
	if err != nil {
		return nil, err
	}

	platforms := socials.Platforms()
	analysis := s.analyst.Analyze(ctx, subjectFor(company.Name, company.Industry, company.Size, company.Description, platforms))

	priority := req.Priority
	if priority == "" {
		priority = defaultPriority
	}
	lead := &entity.Lead{
		CompanyID:       company.ID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		EmailStatus:     emailResult.Status,
		Phone:           s.contacts.NormalizePhone(req.Phone),
		Position:        req.Position,
		LinkedInProfile: req.LinkedInProfile,
		Priority:        priority,
		FollowUpNotes:   req.FollowUpNotes,
		FollowUpType:    req.FollowUpType,
		AIAnalysis:      analysis.Reasoning,
		Score:           leadScore(emailResult.Status, company, len(platforms)),
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.logger.Info("lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("company", company.Name),
		zap.Int("score", lead.Score),
	)
	return lead, nil
}

func (s *LeadService) findOrCreateCompany(ctx context.Context, req dto.CreateLeadRequest) (*entity.Company, *entity.SocialMedia, error) {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" && req.CompanyData != nil {
		name = strings.TrimSpace(req.CompanyData.Name)
	}
	if name == "" {
		return nil, nil, errors.New("company_name or company_data is required")
	}

	company, err := s.companies.FindByName(ctx, name)
	switch {
	case err == nil:
		socials, err := s.companies.SocialMedia(ctx, company.ID)
		if err != nil {
			return nil, nil, err
		}
		return company, socials, nil
	case !errors.Is(err, repository.ErrCompanyNotFound):
		return nil, nil, err
	}

	var data *dto.CompanyData
	if req.CompanyData != nil {
		data = req.CompanyData
		s.enricher.Complete(ctx, data)
	} else {
		data, err = s.enricher.Enrich(ctx, name)
		if err != nil {
			s.logger.Warn("company scrape failed, storing name only", zap.String("company", name), zap.Error(err))
			data = &dto.CompanyData{Name: name}
			s.enricher.Complete(ctx, data)
		}
	}

	company = companyFromData(name, data)
	socials := socialMediaFromLinks(data.SocialMedia)
	if err := s.companies.Save(ctx, company, socials); err != nil {
		return nil, nil, fmt.Errorf("save company: %w", err)
	}
	return company, socials, nil
}

// Update applies a partial update, re-validating a changed email and
// recomputing the score.
func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLeadRequest) (*entity.LeadDetail, error) {
	detail, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lead := &detail.Lead

	if req.Name != nil {
		lead.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		lead.Email = strings.TrimSpace(*req.Email)
		lead.EmailStatus = s.contacts.ValidateEmail(ctx, lead.Email).Status
	}
	if req.Position != nil {
		lead.Position = *req.Position
	}
	if req.Phone != nil {
		lead.Phone = s.contacts.NormalizePhone(*req.Phone)
	}
	if req.LinkedInProfile != nil {
		lead.LinkedInProfile = *req.LinkedInProfile
	}
	if req.Priority != nil {
		lead.Priority = *req.Priority
	}
	if req.FollowUpNotes != nil {
		lead.FollowUpNotes = *req.FollowUpNotes
	}
	if req.FollowUpType != nil {
		lead.FollowUpType = *req.FollowUpType
	}

	if req.Company != nil && applyCompanyUpdate(&detail.Company, *req.Company) {
		if err := s.companies.Save(ctx, &detail.Company, nil); err != nil {
			return nil, fmt.Errorf("save company: %w", err)
		}
	}

	lead.Score = leadScore(lead.EmailStatus, &detail.Company, len(detail.SocialMedia.Platforms()))
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return detail, nil
}

func applyCompanyUpdate(c *entity.Company, u dto.CompanyUpdate) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	set(&c.Name, u.Name)
	set(&c.Industry, u.Industry)
	set(&c.Size, u.Size)
	set(&c.Description, u.Description)
	set(&c.Website, u.Website)
	set(&c.Country, u.Country)
	return changed
}

func leadScore(emailStatus string, company *entity.Company, socialProfiles int) int {
	return scoring.ComputeScore(scoring.LeadFeatures{
		EmailStatus:    emailStatus,
		CompanySize:    company.Size,
		Industry:       company.Industry,
		SocialProfiles: socialProfiles,
	}).Total
}

func companyFromData(name string, d *dto.CompanyData) *entity.Company {
	return &entity.Company{
		Name:             name,
		Industry:         orUnknown(d.Industry),
		Size:             orUnknown(d.Size),
		Description:      d.Description,
		Summary:          d.Summary,
		Website:          d.Website,
		Domain:           d.Domain,
		Country:          orUnknown(d.Country),
		Revenue:          orUnknown(d.Revenue),
		LinkedInActivity: orUnknown(d.LinkedInActivity),
		TargetAudience:   d.TargetAudience,
		OwnerName:        d.OwnerName,
		OwnerEmail:       d.OwnerEmail,
		OwnerEmailStatus: orDefault(d.OwnerEmailStatus, string(extract.EmailUnknown)),
		OwnerPhone:       d.OwnerPhone,
		OwnerLinkedIn:    d.OwnerLinkedIn,
	}
}

func socialMediaFromLinks(l *social.Links) *entity.SocialMedia {
	if l == nil {
		return &entity.SocialMedia{}
	}
	return &entity.SocialMedia{
		LinkedIn:  l.LinkedIn,
		Twitter:   l.Twitter,
		Instagram: l.Instagram,
		Facebook:  l.Facebook,
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
