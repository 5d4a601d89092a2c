package extract

import (
	"strings"
	"unicode/utf8"
)

const minDescriptionLength = 50

// Attributes infers the descriptive company fields from text. Each attribute
// is extracted independently; fields without evidence keep their defaults.
func (e *Extractor) Attributes(text string) Attributes {
	lower := strings.ToLower(text)

	attrs := DefaultAttributes()
	attrs.Industry = inferIndustry(lower)
	attrs.Size = inferSize(lower)
	attrs.Description = inferDescription(text, lower)
	if country, ok := inferCountry(text); ok {
		attrs.Country = country
	}
	if revenue, ok := firstSubmatch(revenuePatterns, text); ok {
		attrs.Revenue = revenue
	}
	if audience, ok := firstSubmatch(audiencePatterns, text); ok {
		attrs.TargetAudience = audience
	}
	return attrs
}

func inferIndustry(lower string) string {
	best, bestCount := Unknown, 0
	for _, rule := range industryRules {
		if count := countPresent(lower, rule.keywords); count > bestCount {
			best, bestCount = rule.industry, count
		}
	}
	return best
}

func inferSize(lower string) Size {
	scores := sizeScores{
		enterprise: countPresent(lower, enterpriseIndicators),
		midMarket:  countPresent(lower, midMarketIndicators),
		smb:        countPresent(lower, smbIndicators),
	}
	for _, rule := range sizeRules {
		if rule.when(scores) {
			return rule.size
		}
	}
	return SizeSMB
}

func inferDescription(text, lower string) string {
	for _, pattern := range descriptionPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if candidate := strings.TrimSpace(m[1]); utf8.RuneCountInString(candidate) > minDescriptionLength {
			return candidate
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); utf8.RuneCountInString(line) > 100 {
			return line
		}
	}
	return ""
}

func inferCountry(text string) (string, bool) {
	for _, pattern := range countryPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if _, stop := countryStopWords[strings.ToLower(candidate)]; stop || len(candidate) <= 3 {
			continue
		}
		return candidate, true
	}
	return "", false
}

// countPresent counts how many of the keywords occur at least once.
func countPresent(lower string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}
