// Package extract turns scraped page text into a structured company profile.
//
// Everything in this package is pure: no I/O, no shared mutable state. An
// Extractor may be used from many goroutines at once.
package extract

import "strings"

// Size is the coarse headcount tier of a company.
type Size string

const (
	SizeEnterprise Size = "Enterprise"
	SizeMidMarket  Size = "Mid-Market"
	SizeSMB        Size = "SMB"
	SizeUnknown    Size = "Unknown"
)

// Activity describes how active a company is on LinkedIn.
type Activity string

const (
	ActivityHigh    Activity = "High"
	ActivityMedium  Activity = "Medium"
	ActivityLow     Activity = "Low"
	ActivityUnknown Activity = "Unknown"
)

// EmailStatus is the confidence attached to an extracted owner email.
type EmailStatus string

const (
	EmailValid   EmailStatus = "valid"
	EmailInvalid EmailStatus = "invalid"
	EmailUnknown EmailStatus = "unknown"
)

// Unknown is the placeholder for free-text attributes that could not be inferred.
const Unknown = "Unknown"

// OwnerInfo identifies the person most likely to own or run the company.
type OwnerInfo struct {
	Name        string      `json:"owner_name"`
	Email       string      `json:"owner_email"`
	EmailStatus EmailStatus `json:"owner_email_status"`
	Phone       string      `json:"owner_phone"`
	LinkedIn    string      `json:"owner_linkedin"`
}

// Attributes are the descriptive fields of a company profile.
type Attributes struct {
	Industry         string   `json:"industry"`
	Size             Size     `json:"size"`
	Description      string   `json:"description"`
	Country          string   `json:"country"`
	Revenue          string   `json:"revenue"`
	TargetAudience   string   `json:"target_audience"`
	LinkedInActivity Activity `json:"linkedin_activity"`
	Domain           string   `json:"domain"`
}

// CompanyProfile is the flattened result of an extraction. Every field is
// always populated with at least its default.
type CompanyProfile struct {
	Attributes
	OwnerInfo
}

// DefaultOwner returns an OwnerInfo with nothing found.
func DefaultOwner() OwnerInfo {
	return OwnerInfo{EmailStatus: EmailUnknown}
}

// DefaultAttributes returns the attribute defaults used before inference.
func DefaultAttributes() Attributes {
	return Attributes{
		Industry:         Unknown,
		Size:             SizeUnknown,
		Country:          Unknown,
		Revenue:          Unknown,
		LinkedInActivity: ActivityUnknown,
	}
}

// Extractor runs the owner, attribute and profile extraction rules against a
// known-entity directory.
type Extractor struct {
	directory *Directory
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDirectory replaces the built-in known-entity directory.
func WithDirectory(d *Directory) Option {
	return func(e *Extractor) {
		if d != nil {
			e.directory = d
		}
	}
}

// New builds an Extractor backed by the default directory unless overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{directory: DefaultDirectory()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Directory exposes the known-entity table the extractor consults.
func (e *Extractor) Directory() *Directory {
	return e.directory
}

// Profile assembles the complete profile for companyName from text. Known
// entities keep their curated attributes; owner fields are always extracted.
func (e *Extractor) Profile(text, companyName string) CompanyProfile {
	owner := e.Owner(text, companyName)
	if attrs, ok := e.directory.Attributes(companyName); ok {
		return CompanyProfile{Attributes: attrs, OwnerInfo: owner}
	}
	return CompanyProfile{Attributes: e.Attributes(text), OwnerInfo: owner}
}

// FallbackDescription synthesizes a description from the first fifty words of
// text when nothing better was found.
func FallbackDescription(companyName, text string) string {
	words := strings.Fields(text)
	if len(words) > 50 {
		words = words[:50]
	}
	return companyName + " is a company that " + strings.Join(words, " ") + "..."
}
