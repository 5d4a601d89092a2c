package scoring

import (
	"github.com/octobees/leads-enricher/internal/entity"
	"github.com/octobees/leads-enricher/internal/extract"
)

const (
	categoryEmail    = "email_validity"
	categorySize     = "company_size"
	categorySocial   = "social_presence"
	categoryIndustry = "industry_relevance"
)

var relevantIndustries = map[string]struct{}{
	"Technology": {},
	"Finance":    {},
	"Healthcare": {},
	"Retail":     {},
}

// LeadFeatures captures the signals used for scoring a lead.
type LeadFeatures struct {
	EmailStatus    string
	CompanySize    string
	Industry       string
	SocialProfiles int
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeScore evaluates the provided features and returns the score breakdown.
func ComputeScore(input LeadFeatures) ScoreResult {
	breakdown := map[string]int{
		categoryEmail:    scoreEmail(input.EmailStatus),
		categorySize:     scoreSize(input.CompanySize),
		categorySocial:   scoreSocialPresence(input.SocialProfiles),
		categoryIndustry: scoreIndustry(input.Industry),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scoreEmail(status string) int {
	switch status {
	case entity.EmailValid:
		return 40
	case entity.EmailRisky:
		return 20
	default:
		return 0
	}
}

func scoreSize(size string) int {
	switch extract.Size(size) {
	case extract.SizeEnterprise:
		return 20
	case extract.SizeMidMarket:
		return 15
	case extract.SizeSMB:
		return 10
	default:
		return 0
	}
}

func scoreSocialPresence(profiles int) int {
	if profiles <= 0 {
		return 0
	}
	return min(profiles*5, 20)
}

func scoreIndustry(industry string) int {
	if _, ok := relevantIndustries[industry]; ok {
		return 20
	}
	return 10
}
