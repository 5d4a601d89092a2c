package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/repository"
	"github.com/octobees/leads-enricher/internal/scraper"
	"github.com/octobees/leads-enricher/internal/social"
	"github.com/octobees/leads-enricher/internal/summarizer"
)

type mockLeadsRepository struct {
	list    func(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error)
	get     func(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error)
	created []entity.Lead
	updated []entity.Lead
	err     error
}

func (m *mockLeadsRepository) List(ctx context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error) {
	if m.list != nil {
		return m.list(ctx, filter)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockLeadsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.LeadDetail, error) {
	if m.get != nil {
		return m.get(ctx, id)
	}
	return nil, repository.ErrLeadNotFound
}

func (m *mockLeadsRepository) Create(_ context.Context, lead *entity.Lead) error {
	if m.err != nil {
		return m.err
	}
	lead.ID = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	m.created = append(m.created, *lead)
	return nil
}

func (m *mockLeadsRepository) Update(_ context.Context, lead *entity.Lead) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, *lead)
	return nil
}

type mockCompaniesRepository struct {
	byName  map[string]*entity.Company
	byID    map[uuid.UUID]*entity.Company
	socials map[uuid.UUID]*entity.SocialMedia
	saved   []entity.Company
}

func (m *mockCompaniesRepository) Get(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrCompanyNotFound
}

func (m *mockCompaniesRepository) FindByName(_ context.Context, name string) (*entity.Company, error) {
	if c, ok := m.byName[name]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrCompanyNotFound
}

func (m *mockCompaniesRepository) Save(_ context.Context, company *entity.Company, socials *entity.SocialMedia) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	}
	if socials != nil {
		socials.CompanyID = company.ID
		if m.socials == nil {
			m.socials = map[uuid.UUID]*entity.SocialMedia{}
		}
		m.socials[company.ID] = socials
	}
	m.saved = append(m.saved, *company)
	return nil
}

func (m *mockCompaniesRepository) SocialMedia(_ context.Context, id uuid.UUID) (*entity.SocialMedia, error) {
	if s, ok := m.socials[id]; ok {
		return s, nil
	}
	return &entity.SocialMedia{CompanyID: id}, nil
}

type mockCompetitorsRepository struct {
	created []entity.Competitor
	listed  []entity.Competitor
}

func (m *mockCompetitorsRepository) Create(_ context.Context, c *entity.Competitor) error {
	c.ID = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	m.created = append(m.created, *c)
	return nil
}

func (m *mockCompetitorsRepository) ListByCompany(context.Context, uuid.UUID) ([]entity.Competitor, error) {
	return m.listed, nil
}

type stubEnricher struct {
	data      map[string]*dto.CompanyData
	sources   []string
	completed []string
	links     social.Links
}

func (s *stubEnricher) Enrich(_ context.Context, source string) (*dto.CompanyData, error) {
	s.sources = append(s.sources, source)
	d, ok := s.data[source]
	if !ok {
		return nil, scraper.ErrNoWebsite
	}
	cp := *d
	return &cp, nil
}

func (s *stubEnricher) Complete(_ context.Context, d *dto.CompanyData) {
	s.completed = append(s.completed, d.Name)
	if d.SocialMedia == nil {
		links := s.links
		d.SocialMedia = &links
	}
}

type stubAnalyst struct {
	analysis summarizer.Analysis
	subjects []summarizer.Subject
}

func (s *stubAnalyst) Summarize(_ context.Context, d string) string { return "summary: " + d }

func (s *stubAnalyst) Analyze(_ context.Context, subject summarizer.Subject) summarizer.Analysis {
	s.subjects = append(s.subjects, subject)
	return s.analysis
}

type stubContacts struct {
	statuses map[string]string
}

func (s stubContacts) ValidateEmail(_ context.Context, email string) EmailResult {
	if status, ok := s.statuses[email]; ok {
		return EmailResult{Status: status}
	}
	return EmailResult{Status: entity.EmailInvalid}
}

func (stubContacts) NormalizePhone(raw string) string { return "+1" + raw }

func strPtr(s string) *string { return &s }
