package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/leads-enricher/internal/dto"
	"github.com/octobees/leads-enricher/internal/entity"
)

var idnaProfile = idna.Lookup

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
	mxLookupTimeout    = 3 * time.Second
)

var disposableDomains = map[string]struct{}{
	"mailinator.com":     {},
	"tempmail.com":       {},
	"temp-mail.org":      {},
	"guerrillamail.com":  {},
	"yopmail.com":        {},
	"maildrop.cc":        {},
	"10minutemail.com":   {},
	"trashmail.com":      {},
	"disposablemail.com": {},
	"sharklasers.com":    {},
	"throwawaymail.com":  {},
}

// EmailResult is the outcome of validating one address.
type EmailResult struct {
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	Disposable bool   `json:"is_disposable"`
}

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// ContactValidator checks and normalises contact details of leads and
// scraped companies.
type ContactValidator struct {
	DefaultRegion string
	dnsResolver   DNSResolver
}

// ContactValidatorOption configures optional dependencies.
type ContactValidatorOption func(*ContactValidator)

// WithDNSResolver overrides the default DNS resolver.
func WithDNSResolver(resolver DNSResolver) ContactValidatorOption {
	return func(v *ContactValidator) {
		v.dnsResolver = resolver
	}
}

// NewContactValidator builds a validator for phone numbers in defaultRegion.
func NewContactValidator(defaultRegion string, opts ...ContactValidatorOption) *ContactValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	v := &ContactValidator{
		DefaultRegion: region,
		dnsResolver:   systemDNSResolver{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateEmail classifies an address as valid, invalid or risky.
func (v *ContactValidator) ValidateEmail(ctx context.Context, email string) EmailResult {
	email = strings.TrimSpace(email)
	if email == "" {
		return EmailResult{Status: entity.EmailInvalid, Reason: "Empty or invalid email format"}
	}
	if !dto.ValidEmail(email) {
		return EmailResult{Status: entity.EmailInvalid, Reason: "The email address is not valid"}
	}

	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	if !isDomainValid(domain) {
		return EmailResult{Status: entity.EmailInvalid, Reason: "The domain name is not valid"}
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return EmailResult{Status: entity.EmailInvalid, Reason: "The domain name is not valid"}
	}
	if !v.hasMXRecord(ctx, asciiDomain) {
		return EmailResult{Status: entity.EmailInvalid, Reason: "The domain does not accept email"}
	}

	if _, ok := disposableDomains[asciiDomain]; ok {
		return EmailResult{Status: entity.EmailRisky, Reason: "Disposable email domain detected", Disposable: true}
	}
	return EmailResult{Status: entity.EmailValid}
}

// NormalizePhone formats raw as E.164 when it parses as a valid number in
// the default region and returns the trimmed input otherwise.
func (v *ContactValidator) NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if normalized := normalizePhone(raw, v.DefaultRegion); normalized != "" {
		return normalized
	}
	return raw
}

// CleanCompany re-checks the owner contact details and strips tracking
// parameters from every URL of a scraped company.
func (v *ContactValidator) CleanCompany(ctx context.Context, data *dto.CompanyData) {
	if data == nil {
		return
	}
	if data.OwnerEmail != "" {
		data.OwnerEmailStatus = v.ValidateEmail(ctx, data.OwnerEmail).Status
	}
	if data.OwnerPhone != "" {
		data.OwnerPhone = v.NormalizePhone(data.OwnerPhone)
	}
	data.OwnerLinkedIn = CleanProfileURL(data.OwnerLinkedIn)
	data.Website = CleanProfileURL(data.Website)
	if data.SocialMedia != nil {
		for _, p := range data.SocialMedia.Present() {
			link, _ := data.SocialMedia.Get(p)
			data.SocialMedia.Set(p, CleanProfileURL(link))
		}
	}
}

// CleanProfileURL forces https and drops utm_* parameters. Unparseable
// input yields "".
func CleanProfileURL(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	stripTracking(u)
	return u.String()
}

func (v *ContactValidator) hasMXRecord(ctx context.Context, domain string) bool {
	if v.dnsResolver == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, mxLookupTimeout)
	defer cancel()
	records, err := v.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
