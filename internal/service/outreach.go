package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

// ErrFollowUpDateRequired is returned when a follow-up has no date.
var ErrFollowUpDateRequired = errors.New("follow-up date is required")

const defaultFollowUpType = "email"

const coldEmailTemplate = `Subject: Helping %[1]s improve results in %[2]s

Hi %[3]s,

I noticed %[1]s has been doing great work in the %[2]s space, and I thought you might be interested in how we've been helping similar companies improve their results.

Our platform has helped companies like yours achieve:
- 30%% increase in qualified leads
- 25%% reduction in customer acquisition costs
- 40%% faster sales cycle

Would you be open to a quick 15-minute call next week to discuss how we might help %[1]s achieve similar results?

Looking forward to hearing from you,

[Your Name]
[Your Position]
[Your Company]
[Your Contact Info]`

// EmailTemplate writes a cold email for the lead and stores it on the lead.
func (s *LeadService) EmailTemplate(ctx context.Context, id uuid.UUID) (string, error) {
	detail, err := s.leads.Get(ctx, id)
	if err != nil {
		return "", err
	}
	recipient := strings.TrimSpace(detail.Name)
	if recipient == "" {
		recipient = "there"
	}
	template := fmt.Sprintf(coldEmailTemplate, detail.Company.Name, industryPhrase(detail.Company.Industry), recipient)

	detail.ColdEmailTemplate = template
	if err := s.leads.Update(ctx, &detail.Lead); err != nil {
		return "", err
	}
	return template, nil
}

// LinkedInConnect writes a connection request for the lead. The profile link
// falls back to the company owner's profile.
func (s *LeadService) LinkedInConnect(ctx context.Context, id uuid.UUID) (dto.LinkedInConnectResponse, error) {
	detail, err := s.leads.Get(ctx, id)
	if err != nil {
		return dto.LinkedInConnectResponse{}, err
	}
	firstName := "there"
	if fields := strings.Fields(detail.Name); len(fields) > 0 {
		firstName = fields[0]
	}
	message := fmt.Sprintf(
		"Hi %s, I noticed your work at %s in the %s space. I'd love to connect and share ideas on how we might collaborate. Looking forward to connecting!",
		firstName, detail.Company.Name, industryPhrase(detail.Company.Industry),
	)
	profile := detail.LinkedInProfile
	if profile == "" {
		profile = detail.Company.OwnerLinkedIn
	}
	return dto.LinkedInConnectResponse{ConnectionMessage: message, ProfileLink: profile}, nil
}

// ScheduleFollowUp records the next contact with a lead.
func (s *LeadService) ScheduleFollowUp(ctx context.Context, id uuid.UUID, req dto.FollowUpRequest) (*entity.Lead, error) {
	if req.FollowUpDate == nil || req.FollowUpDate.IsZero() {
		return nil, ErrFollowUpDateRequired
	}
	detail, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	followUpType := strings.TrimSpace(req.FollowUpType)
	if followUpType == "" {
		followUpType = defaultFollowUpType
	}
	date := req.FollowUpDate.UTC()
	detail.NextFollowUp = &date
	detail.FollowUpType = followUpType
	detail.FollowUpNotes = req.FollowUpNotes
	if err := s.leads.Update(ctx, &detail.Lead); err != nil {
		return nil, err
	}
	return &detail.Lead, nil
}

// Analyze asks the analyst to rate the lead's company, stores the reasoning
// and raises the lead score when the AI score is higher.
func (s *LeadService) Analyze(ctx context.Context, id uuid.UUID) (dto.AnalysisResponse, error) {
	detail, err := s.leads.Get(ctx, id)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}
	c := detail.Company
	analysis := s.analyst.Analyze(ctx, subjectFor(c.Name, c.Industry, c.Size, c.Description, detail.SocialMedia.Platforms()))

	detail.AIAnalysis = analysis.Reasoning
	detail.Score = max(detail.Score, analysis.Score)
	if err := s.leads.Update(ctx, &detail.Lead); err != nil {
		return dto.AnalysisResponse{}, err
	}
	return dto.AnalysisResponse{Score: analysis.Score, Reasoning: analysis.Reasoning, LeadScore: detail.Score}, nil
}

func industryPhrase(industry string) string {
	if industry == "" || industry == "Unknown" {
		return "your industry"
	}
	return industry
}
