package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Owner extracts the best guess at the company owner and their contact
// details. Known entities return their curated record untouched.
func (e *Extractor) Owner(text, companyName string) OwnerInfo {
	if owner, ok := e.directory.Owner(companyName); ok {
		return owner
	}

	info := DefaultOwner()
	info.Name = synthesizedOwnerName(companyName)
	if name, ok := firstOwnerName(text); ok {
		info.Name = name
	}
	if email, ok := pickOwnerEmail(emailPattern.FindAllString(text, -1), info.Name, companyName); ok {
		info.Email = email
		info.EmailStatus = EmailValid
	}
	if phone, ok := firstSubmatch(phonePatterns, text); ok {
		info.Phone = phone
	}
	for _, rule := range linkedInRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			info.LinkedIn = rule.prefix + m[1]
			break
		}
	}
	return info
}

func synthesizedOwnerName(companyName string) string {
	lower := strings.ToLower(companyName)
	if !containsAny(lower, financialNameTerms) {
		return ""
	}
	if strings.Contains(lower, "partner") {
		return companyName + " Managing Partner"
	}
	return companyName + " Founder"
}

func firstOwnerName(text string) (string, bool) {
	for _, pattern := range ownerNamePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if _, placeholder := placeholderNames[m[1]]; placeholder {
				continue
			}
			return m[1], true
		}
	}
	return "", false
}

// pickOwnerEmail ranks candidates into priority buckets and returns the first
// email of the best non-empty bucket.
func pickOwnerEmail(candidates []string, ownerName, companyName string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	firstName := ""
	if fields := strings.Fields(ownerName); len(fields) > 0 {
		firstName = strings.ToLower(fields[0])
	}
	companySlug := alnumOnly(strings.ToLower(companyName))

	buckets := []func(email string) bool{
		func(email string) bool { return firstName != "" && strings.Contains(email, firstName) },
		func(email string) bool { return containsAny(email, ownerRoleEmailTerms) },
		func(email string) bool { return containsAny(email, contactEmailTerms) },
		func(email string) bool { return companySlug != "" && strings.Contains(alnumOnly(email), companySlug) },
	}

	best, bestRank := "", len(buckets)+1
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		rank := len(buckets)
		for i, matches := range buckets {
			if matches(lower) {
				rank = i
				break
			}
		}
		if rank < bestRank {
			best, bestRank = candidate, rank
		}
	}
	return best, true
}

func firstSubmatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value, true
			}
		}
	}
	return "", false
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func alnumOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
