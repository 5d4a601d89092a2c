package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/repository"
	"github.com/octobees/leads-enricher/internal/social"
	"github.com/octobees/leads-enricher/internal/summarizer"
)

var (
	testCompanyID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	testLeadID    = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
)

func acmeLinks() *social.Links {
	var l social.Links
	l.Set(social.LinkedIn, "https://www.linkedin.com/company/acme")
	l.Set(social.Twitter, "https://twitter.com/acme")
	return &l
}

func newLeadService(leads *mockLeadsRepository, companies *mockCompaniesRepository, enricher *stubEnricher, analyst *stubAnalyst) *LeadService {
	contacts := stubContacts{statuses: map[string]string{"jane@acme.com": entity.EmailValid, "ops@mailinator.com": entity.EmailRisky}}
	return NewLeadService(leads, companies, enricher, analyst, contacts)
}

func TestLeadService_CreateScrapesNewCompany(t *testing.T) {
	leads := &mockLeadsRepository{}
	companies := &mockCompaniesRepository{}
	enricher := &stubEnricher{data: map[string]*dto.CompanyData{
		"Acme": {Name: "acme", Industry: "Technology", Size: "Enterprise", Description: "Cloud", SocialMedia: acmeLinks()},
	}}
	analyst := &stubAnalyst{analysis: summarizer.Analysis{Score: 80, Reasoning: "Strong fit"}}
	svc := newLeadService(leads, companies, enricher, analyst)

	lead, err := svc.Create(context.Background(), dto.CreateLeadRequest{
		Name: " Jane Williams ", Email: "jane@acme.com", Phone: "5551234", CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(companies.saved) != 1 || companies.saved[0].Name != "Acme" || companies.saved[0].Country != "Unknown" {
		t.Fatalf("unexpected saved company: %+v", companies.saved)
	}
	if got := companies.socials[testCompanyID]; got == nil || got.LinkedIn == nil || got.Instagram != nil {
		t.Fatalf("expected socials stored with company, got %+v", got)
	}
	if lead.Score != 40+20+10+20 {
		t.Fatalf("unexpected score %d", lead.Score)
	}
	if lead.CompanyID != testCompanyID || lead.Name != "Jane Williams" || lead.Phone != "+15551234" {
		t.Fatalf("unexpected lead: %+v", lead)
	}
	if lead.Priority != "medium" || lead.AIAnalysis != "Strong fit" || lead.EmailStatus != entity.EmailValid {
		t.Fatalf("unexpected lead defaults: %+v", lead)
	}
	subject := analyst.subjects[0]
	if subject.Name != "Acme" || strings.Join(subject.Social, ",") != "linkedin,twitter" {
		t.Fatalf("unexpected analysis subject: %+v", subject)
	}
}

func TestLeadService_CreateReusesExistingCompany(t *testing.T) {
	existing := &entity.Company{ID: testCompanyID, Name: "Acme", Industry: "Education", Size: "SMB"}
	companies := &mockCompaniesRepository{
		byName:  map[string]*entity.Company{"Acme": existing},
		socials: map[uuid.UUID]*entity.SocialMedia{testCompanyID: {LinkedIn: strPtr("https://www.linkedin.com/company/acme")}},
	}
	enricher := &stubEnricher{}
	svc := newLeadService(&mockLeadsRepository{}, companies, enricher, &stubAnalyst{})

	lead, err := svc.Create(context.Background(), dto.CreateLeadRequest{Name: "Ops", Email: "ops@mailinator.com", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enricher.sources) != 0 || len(companies.saved) != 0 {
		t.Fatalf("expected no scrape or save for an existing company")
	}
	if lead.Score != 20+10+5+10 {
		t.Fatalf("unexpected score %d", lead.Score)
	}
}

func TestLeadService_CreateFallsBackToNameOnly(t *testing.T) {
	companies := &mockCompaniesRepository{}
	enricher := &stubEnricher{}
	svc := newLeadService(&mockLeadsRepository{}, companies, enricher, &stubAnalyst{})

	lead, err := svc.Create(context.Background(), dto.CreateLeadRequest{Name: "Bob", Email: "bob@ghost.example", CompanyName: "Ghost Co"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enricher.completed) != 1 || enricher.completed[0] != "Ghost Co" {
		t.Fatalf("expected name-only company to be completed, got %v", enricher.completed)
	}
	saved := companies.saved[0]
	if saved.Industry != "Unknown" || saved.Size != "Unknown" || saved.OwnerEmailStatus != "unknown" {
		t.Fatalf("expected defaults on name-only company, got %+v", saved)
	}
	if lead.Score != 10 {
		t.Fatalf("expected industry-only score, got %d", lead.Score)
	}
}

func TestLeadService_CreateWithSuppliedCompanyData(t *testing.T) {
	companies := &mockCompaniesRepository{}
	enricher := &stubEnricher{}
	svc := newLeadService(&mockLeadsRepository{}, companies, enricher, &stubAnalyst{})

	_, err := svc.Create(context.Background(), dto.CreateLeadRequest{
		Name: "Jane", Email: "jane@acme.com",
		CompanyData: &dto.CompanyData{Name: "Acme Corp", Industry: "Retail", Size: "Mid-Market"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enricher.sources) != 0 || len(enricher.completed) != 1 {
		t.Fatalf("expected supplied data to be completed, not scraped")
	}
	if companies.saved[0].Name != "Acme Corp" || companies.saved[0].Industry != "Retail" {
		t.Fatalf("unexpected saved company: %+v", companies.saved[0])
	}
}

func TestLeadService_CreateDuplicateEmail(t *testing.T) {
	leads := &mockLeadsRepository{err: repository.ErrDuplicateEmail}
	companies := &mockCompaniesRepository{byName: map[string]*entity.Company{"Acme": {ID: testCompanyID, Name: "Acme"}}}
	svc := newLeadService(leads, companies, &stubEnricher{}, &stubAnalyst{})

	_, err := svc.Create(context.Background(), dto.CreateLeadRequest{Name: "Jane", Email: "jane@acme.com", CompanyName: "Acme"})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func leadDetail() *entity.LeadDetail {
	return &entity.LeadDetail{
		Lead: entity.Lead{
			ID: testLeadID, CompanyID: testCompanyID, Name: "Jane Williams", Email: "jane@acme.com",
			EmailStatus: entity.EmailValid, Score: 50, Priority: "medium",
		},
		Company: entity.Company{
			ID: testCompanyID, Name: "Acme", Industry: "Technology", Size: "SMB",
			OwnerLinkedIn: "https://www.linkedin.com/in/owner",
		},
		SocialMedia: entity.SocialMedia{CompanyID: testCompanyID, Twitter: strPtr("https://twitter.com/acme")},
	}
}

func detailRepo() *mockLeadsRepository {
	return &mockLeadsRepository{get: func(_ context.Context, id uuid.UUID) (*entity.LeadDetail, error) {
		if id != testLeadID {
			return nil, repository.ErrLeadNotFound
		}
		return leadDetail(), nil
	}}
}

func TestLeadService_Update(t *testing.T) {
	leads := detailRepo()
	companies := &mockCompaniesRepository{}
	svc := newLeadService(leads, companies, &stubEnricher{}, &stubAnalyst{})

	detail, err := svc.Update(context.Background(), testLeadID, dto.UpdateLeadRequest{
		Email:    strPtr("ops@mailinator.com"),
		Priority: strPtr("high"),
		Company:  &dto.CompanyUpdate{Size: strPtr("Enterprise")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.EmailStatus != entity.EmailRisky || detail.Priority != "high" {
		t.Fatalf("unexpected lead: %+v", detail.Lead)
	}
	if len(companies.saved) != 1 || companies.saved[0].Size != "Enterprise" {
		t.Fatalf("expected company update saved, got %+v", companies.saved)
	}
	if detail.Score != 20+20+5+20 {
		t.Fatalf("unexpected recomputed score %d", detail.Score)
	}
	if len(leads.updated) != 1 {
		t.Fatalf("expected lead update")
	}

	if _, err := svc.Update(context.Background(), uuid.New(), dto.UpdateLeadRequest{}); !errors.Is(err, repository.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadService_UpdateWithoutCompanyChangesSkipsSave(t *testing.T) {
	companies := &mockCompaniesRepository{}
	svc := newLeadService(detailRepo(), companies, &stubEnricher{}, &stubAnalyst{})

	if _, err := svc.Update(context.Background(), testLeadID, dto.UpdateLeadRequest{Company: &dto.CompanyUpdate{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies.saved) != 0 {
		t.Fatalf("expected no company save")
	}
}

func TestLeadService_EmailTemplate(t *testing.T) {
	leads := detailRepo()
	svc := newLeadService(leads, &mockCompaniesRepository{}, &stubEnricher{}, &stubAnalyst{})

	template, err := svc.EmailTemplate(context.Background(), testLeadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(template, "Subject: Helping Acme improve results in Technology\n\nHi Jane Williams,") {
		t.Fatalf("unexpected template start: %q", template)
	}
	if !strings.Contains(template, "- 30% increase in qualified leads") {
		t.Fatalf("expected literal percentages, got %q", template)
	}
	if leads.updated[0].ColdEmailTemplate != template {
		t.Fatalf("expected template stored on lead")
	}
}

func TestLeadService_LinkedInConnect(t *testing.T) {
	leads := &mockLeadsRepository{get: func(context.Context, uuid.UUID) (*entity.LeadDetail, error) {
		d := leadDetail()
		d.Company.Industry = "Unknown"
		return d, nil
	}}
	svc := newLeadService(leads, &mockCompaniesRepository{}, &stubEnricher{}, &stubAnalyst{})

	resp, err := svc.LinkedInConnect(context.Background(), testLeadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hi Jane, I noticed your work at Acme in the your industry space. I'd love to connect and share ideas on how we might collaborate. Looking forward to connecting!"
	if resp.ConnectionMessage != want {
		t.Fatalf("unexpected message: %q", resp.ConnectionMessage)
	}
	if resp.ProfileLink != "https://www.linkedin.com/in/owner" {
		t.Fatalf("expected owner profile fallback, got %q", resp.ProfileLink)
	}
}

func TestLeadService_ScheduleFollowUp(t *testing.T) {
	leads := detailRepo()
	svc := newLeadService(leads, &mockCompaniesRepository{}, &stubEnricher{}, &stubAnalyst{})

	if _, err := svc.ScheduleFollowUp(context.Background(), testLeadID, dto.FollowUpRequest{}); !errors.Is(err, ErrFollowUpDateRequired) {
		t.Fatalf("expected ErrFollowUpDateRequired, got %v", err)
	}

	date := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	lead, err := svc.ScheduleFollowUp(context.Background(), testLeadID, dto.FollowUpRequest{FollowUpDate: &date, FollowUpNotes: "demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.FollowUpType != "email" || lead.FollowUpNotes != "demo" {
		t.Fatalf("unexpected follow-up: %+v", lead)
	}
	if lead.NextFollowUp == nil || !lead.NextFollowUp.Equal(date) || lead.NextFollowUp.Location() != time.UTC {
		t.Fatalf("expected follow-up stored in UTC, got %v", lead.NextFollowUp)
	}
}

func TestLeadService_Analyze(t *testing.T) {
	leads := detailRepo()
	analyst := &stubAnalyst{analysis: summarizer.Analysis{Score: 30, Reasoning: "Weak fit"}}
	svc := newLeadService(leads, &mockCompaniesRepository{}, &stubEnricher{}, analyst)

	resp, err := svc.Analyze(context.Background(), testLeadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Score != 30 || resp.LeadScore != 50 || leads.updated[0].AIAnalysis != "Weak fit" {
		t.Fatalf("expected current score kept, got %+v", resp)
	}

	analyst.analysis = summarizer.Analysis{Score: 90, Reasoning: "Great"}
	resp, err = svc.Analyze(context.Background(), testLeadID)
	if err != nil || resp.LeadScore != 90 {
		t.Fatalf("expected AI score to raise lead score, got %+v (%v)", resp, err)
	}
	if got := analyst.subjects[0].Social; len(got) != 1 || got[0] != "twitter" {
		t.Fatalf("unexpected subject socials: %v", got)
	}
}

func TestLeadService_Export(t *testing.T) {
	var gotFilter dto.LeadFilter
	leads := &mockLeadsRepository{list: func(_ context.Context, filter dto.LeadFilter) ([]entity.LeadDetail, error) {
		gotFilter = filter
		return []entity.LeadDetail{*leadDetail()}, nil
	}}
	svc := newLeadService(leads, &mockCompaniesRepository{}, &stubEnricher{}, &stubAnalyst{})

	if _, err := svc.Export(context.Background(), dto.ExportRequest{Format: "xlsx"}); !errors.Is(err, ErrInvalidExportFormat) {
		t.Fatalf("expected ErrInvalidExportFormat, got %v", err)
	}

	records, err := svc.Export(context.Background(), dto.ExportRequest{Format: "JSON", LeadIDs: []uuid.UUID{testLeadID}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotFilter.IDs) != 1 || gotFilter.IDs[0] != testLeadID {
		t.Fatalf("expected ids forwarded, got %+v", gotFilter)
	}
	r := records[0]
	if r.CompanyName != "Acme" || r.Twitter == nil || r.LinkedIn != nil || r.NextFollowUp != nil {
		t.Fatalf("unexpected record: %+v", r)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "id" || rows[1][0] != testLeadID.String() || rows[1][4] != "50" {
		t.Fatalf("unexpected csv rows: %v", rows)
	}
	if rows[1][26] != "https://twitter.com/acme" || rows[1][25] != "" {
		t.Fatalf("unexpected social columns: %v", rows[1][25:])
	}
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]string{"": "csv", "CSV": "csv", " json ": "json"} {
		got, err := ParseExportFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseExportFormat(%q) = %q, %v", in, got, err)
		}
	}
}
