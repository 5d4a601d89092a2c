package dto

import (
	"time"

	"github.com/google/uuid"
)

// LeadFilter contains query parameters for lead listing and export.
type LeadFilter struct {
	Industry    string
	EmailStatus string
	CompanySize string
	IDs         []uuid.UUID
}

// CreateLeadRequest is the payload for adding a lead. Either CompanyName or
// CompanyData must identify the company.
type CreateLeadRequest struct {
	Name            string       `json:"name" validate:"required,max=100"`
	Email           string       `json:"email" validate:"required,max=120"`
	Phone           string       `json:"phone" validate:"omitempty,max=30"`
	Position        string       `json:"position" validate:"omitempty,max=100"`
	LinkedInProfile string       `json:"linkedin_profile" validate:"omitempty,max=255"`
	Priority        string       `json:"priority" validate:"omitempty,oneof=low medium high"`
	FollowUpNotes   string       `json:"follow_up_notes"`
	FollowUpType    string       `json:"follow_up_type" validate:"omitempty,max=50"`
	CompanyName     string       `json:"company_name" validate:"required_without=CompanyData,max=100"`
	CompanyData     *CompanyData `json:"company_data"`
}

// CompanyUpdate patches the company attached to a lead.
type CompanyUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Industry    *string `json:"industry,omitempty"`
	Size        *string `json:"size,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,max=255"`
	Country     *string `json:"country,omitempty"`
}

// UpdateLeadRequest captures partial lead updates.
type UpdateLeadRequest struct {
	Name            *string        `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email           *string        `json:"email,omitempty" validate:"omitempty,max=120"`
	Position        *string        `json:"position,omitempty" validate:"omitempty,max=100"`
	Phone           *string        `json:"phone,omitempty" validate:"omitempty,max=30"`
	LinkedInProfile *string        `json:"linkedin_profile,omitempty" validate:"omitempty,max=255"`
	Priority        *string        `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	FollowUpNotes   *string        `json:"follow_up_notes,omitempty"`
	FollowUpType    *string        `json:"follow_up_type,omitempty" validate:"omitempty,max=50"`
	Company         *CompanyUpdate `json:"company,omitempty"`
}

// FollowUpRequest schedules the next contact with a lead.
type FollowUpRequest struct {
	FollowUpDate  *time.Time `json:"follow_up_date"`
	FollowUpType  string     `json:"follow_up_type" validate:"omitempty,max=50"`
	FollowUpNotes string     `json:"follow_up_notes"`
}

// ExportRequest selects leads and an output format.
type ExportRequest struct {
	Format  string      `json:"format"`
	LeadIDs []uuid.UUID `json:"lead_ids"`
}

// LeadCreatedResponse is returned after a lead is stored.
type LeadCreatedResponse struct {
	ID    uuid.UUID `json:"id"`
	Score int       `json:"score"`
}

// LinkedInConnectResponse is a connection message for a lead.
type LinkedInConnectResponse struct {
	ConnectionMessage string `json:"connection_message"`
	ProfileLink       string `json:"profile_link"`
}

// EmailTemplateResponse is a generated cold email.
type EmailTemplateResponse struct {
	EmailTemplate string `json:"email_template"`
}

// AnalysisResponse is an AI assessment of a lead's company.
type AnalysisResponse struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
	LeadScore int    `json:"lead_score"`
}
