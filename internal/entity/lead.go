package entity

import (
	"time"

	"github.com/google/uuid"
)

// Email validation outcomes stored on leads.
const (
	EmailValid   = "valid"
	EmailInvalid = "invalid"
	EmailRisky   = "risky"
	EmailUnknown = "unknown"
)

// Lead is a sales contact at a company.
type Lead struct {
	ID                uuid.UUID  `json:"id"`
	CompanyID         uuid.UUID  `json:"company_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	EmailStatus       string     `json:"email_status"`
	Score             int        `json:"score"`
	Phone             string     `json:"phone"`
	Position          string     `json:"position"`
	LinkedInProfile   string     `json:"linkedin_profile"`
	LastContactDate   *time.Time `json:"last_contact_date"`
	NextFollowUp      *time.Time `json:"next_follow_up"`
	FollowUpNotes     string     `json:"follow_up_notes"`
	FollowUpType      string     `json:"follow_up_type"`
	Priority          string     `json:"priority"`
	AIAnalysis        string     `json:"ai_analysis"`
	ColdEmailTemplate string     `json:"cold_email_template"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Competitor is a competing company recorded against a tracked company.
type Competitor struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"company_id"`
	Name            string    `json:"name"`
	Website         string    `json:"website"`
	Industry        string    `json:"industry"`
	Size            string    `json:"size"`
	MarketPosition  string    `json:"market_position"`
	Strengths       string    `json:"strengths"`
	Weaknesses      string    `json:"weaknesses"`
	SimilarityScore int       `json:"similarity_score"`
	AIComparison    string    `json:"ai_comparison"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LeadDetail is a lead joined with its company and the company's social
// profiles.
type LeadDetail struct {
	Lead
	Company     Company     `json:"company"`
	SocialMedia SocialMedia `json:"social_media"`
}
