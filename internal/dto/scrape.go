package dto

import "github.com/octobees/leads-enricher/internal/social"

// ScrapeRequest is the payload used by the scraping endpoint. SourceURL is
// either a website URL or a company name.
type ScrapeRequest struct {
	SourceURL string `json:"source_url" validate:"required,max=255"`
}

// BatchScrapeRequest scrapes several sources in one call.
type BatchScrapeRequest struct {
	Sources []string `json:"sources" validate:"required,min=1,max=25,dive,required,max=255"`
}

// CompanyData is an enriched company as returned by the scraper and accepted
// when creating a lead.
type CompanyData struct {
	Name             string        `json:"name" validate:"required,max=100"`
	Industry         string        `json:"industry"`
	Size             string        `json:"size"`
	Description      string        `json:"description"`
	Summary          string        `json:"summary"`
	Website          string        `json:"website" validate:"omitempty,max=255"`
	Domain           string        `json:"domain"`
	Country          string        `json:"country"`
	Revenue          string        `json:"revenue"`
	LinkedInActivity string        `json:"linkedin_activity"`
	TargetAudience   string        `json:"target_audience"`
	OwnerName        string        `json:"owner_name"`
	OwnerEmail       string        `json:"owner_email"`
	OwnerEmailStatus string        `json:"owner_email_status"`
	OwnerPhone       string        `json:"owner_phone"`
	OwnerLinkedIn    string        `json:"owner_linkedin"`
	SocialMedia      *social.Links `json:"social_media,omitempty"`
}

// BatchScrapeItem is one entry of a batch scrape response.
type BatchScrapeItem struct {
	Source  string       `json:"source"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Company *CompanyData `json:"company_data,omitempty"`
}
