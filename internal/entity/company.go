package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an enriched business profile.
type Company struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Industry         string    `json:"industry"`
	Size             string    `json:"size"`
	Description      string    `json:"description"`
	Summary          string    `json:"summary"`
	Website          string    `json:"website"`
	Domain           string    `json:"domain"`
	Country          string    `json:"country"`
	Revenue          string    `json:"revenue"`
	LinkedInActivity string    `json:"linkedin_activity"`
	TargetAudience   string    `json:"target_audience"`
	OwnerName        string    `json:"owner_name"`
	OwnerEmail       string    `json:"owner_email"`
	OwnerEmailStatus string    `json:"owner_email_status"`
	OwnerPhone       string    `json:"owner_phone"`
	OwnerLinkedIn    string    `json:"owner_linkedin"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SocialMedia holds the confirmed social profiles of a company. Nil means
// the platform is unknown.
type SocialMedia struct {
	CompanyID uuid.UUID `json:"-"`
	LinkedIn  *string   `json:"linkedin"`
	Twitter   *string   `json:"twitter"`
	Instagram *string   `json:"instagram"`
	Facebook  *string   `json:"facebook"`
}

// Platforms lists the platforms with a stored URL.
func (s SocialMedia) Platforms() []string {
	var out []string
	for _, p := range []struct {
		name string
		url  *string
	}{
		{"linkedin", s.LinkedIn},
		{"twitter", s.Twitter},
		{"instagram", s.Instagram},
		{"facebook", s.Facebook},
	} {
		if p.url != nil && *p.url != "" {
			out = append(out, p.name)
		}
	}
	return out
}
