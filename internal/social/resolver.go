// Package social resolves a company's official social-media profiles.
package social

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/leads-enricher/internal/extract"
)

const maxVerifiedCandidates = 3

// Searcher returns result links for a query, most relevant first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Verifier reports whether a profile URL is live.
type Verifier interface {
	ProfileExists(ctx context.Context, url string) bool
}

// slugs holds the name variants candidate URLs are matched against.
type slugs struct {
	compact string // lower-case, spaces and punctuation removed
	dashed  string // lower-case, spaces replaced with dashes
	pages   string // original case, spaces replaced with dashes
}

func newSlugs(name string) slugs {
	lower := strings.ToLower(name)
	strip := strings.NewReplacer(".", "", ",", "")
	return slugs{
		compact: strip.Replace(strings.ReplaceAll(lower, " ", "")),
		dashed:  strip.Replace(strings.ReplaceAll(lower, " ", "-")),
		pages:   strings.ReplaceAll(name, " ", "-"),
	}
}

type platformRule struct {
	platform Platform
	query    string
	// hostMatches reports whether a host and path belong to the platform.
	hostMatches func(host, path string) bool
	// handleHints are platform specific ways of spelling the slug in a URL.
	handleHints func(s slugs) []string
	// fallbacks are deterministic profile URLs tried when search finds nothing.
	fallbacks func(s slugs) []string
	// trustFirst accepts the first search candidate without verification.
	trustFirst bool
}

var platformRules = []platformRule{
	{
		platform: LinkedIn,
		query:    "%s linkedin official company page",
		hostMatches: func(host, path string) bool {
			return hostIs(host, "linkedin.com") && (strings.HasPrefix(path, "/company") || strings.HasPrefix(path, "/in"))
		},
		handleHints: func(s slugs) []string { return []string{"company/" + s.compact} },
		fallbacks: func(s slugs) []string {
			return []string{
				"https://www.linkedin.com/company/" + s.compact,
				"https://www.linkedin.com/company/" + s.dashed,
			}
		},
	},
	{
		platform: Twitter,
		query:    "%s twitter official account",
		hostMatches: func(host, _ string) bool {
			return hostIs(host, "twitter.com") || hostIs(host, "x.com")
		},
		handleHints: func(s slugs) []string { return []string{"@" + s.compact} },
		fallbacks: func(s slugs) []string {
			return []string{
				"https://twitter.com/" + s.compact,
				"https://twitter.com/" + s.dashed,
				"https://x.com/" + s.compact,
			}
		},
		trustFirst: true,
	},
	{
		platform:    Instagram,
		query:       "%s instagram official account",
		hostMatches: func(host, _ string) bool { return hostIs(host, "instagram.com") },
		handleHints: func(slugs) []string { return nil },
		fallbacks: func(s slugs) []string {
			return []string{
				"https://www.instagram.com/" + s.compact,
				"https://www.instagram.com/" + s.dashed,
			}
		},
	},
	{
		platform: Facebook,
		query:    "%s facebook official page",
		hostMatches: func(host, _ string) bool {
			return hostIs(host, "facebook.com") || hostIs(host, "fb.com")
		},
		handleHints: func(s slugs) []string { return []string{"pages/" + s.compact} },
		fallbacks: func(s slugs) []string {
			return []string{
				"https://www.facebook.com/" + s.compact,
				"https://www.facebook.com/" + s.dashed,
				"https://www.facebook.com/pages/" + s.pages,
			}
		},
	},
}

// Resolver finds social profiles for a company by name.
type Resolver struct {
	directory *extract.Directory
	searcher  Searcher
	verifier  Verifier
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDirectory replaces the built-in known-entity table.
func WithDirectory(d *extract.Directory) Option {
	return func(r *Resolver) {
		if d != nil {
			r.directory = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver wires the search and verification collaborators.
func NewResolver(searcher Searcher, verifier Verifier, opts ...Option) *Resolver {
	r := &Resolver{
		directory: extract.DefaultDirectory(),
		searcher:  searcher,
		verifier:  verifier,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the profile URL for every platform it can confirm. Search
// and verification failures leave the platform empty; they are never
// returned as errors.
func (r *Resolver) Resolve(ctx context.Context, companyName string) Links {
	name := strings.TrimSpace(companyName)
	if name == "" {
		return Links{}
	}
	if known, ok := r.directory.Social(name); ok {
		return FromProfiles(known)
	}

	s := newSlugs(name)
	var links Links
	for _, rule := range platformRules {
		if ctx.Err() != nil {
			break
		}
		if found, ok := r.fromSearch(ctx, rule, name, s); ok {
			links.Set(rule.platform, found)
			continue
		}
		if found, ok := r.fromFallbacks(ctx, rule, s); ok {
			links.Set(rule.platform, found)
		}
	}
	return links
}

func (r *Resolver) fromSearch(ctx context.Context, rule platformRule, name string, s slugs) (string, bool) {
	if r.searcher == nil {
		return "", false
	}
	query := fmt.Sprintf(rule.query, name)
	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		r.logger.Debug("social search failed", zap.String("platform", string(rule.platform)), zap.Error(err))
		return "", false
	}

	candidates := filterCandidates(rule, s, results)
	if len(candidates) == 0 {
		return "", false
	}
	if rule.trustFirst {
		return candidates[0], true
	}
	for i, candidate := range candidates {
		if i == maxVerifiedCandidates {
			break
		}
		if r.verify(ctx, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) fromFallbacks(ctx context.Context, rule platformRule, s slugs) (string, bool) {
	if s.compact == "" {
		return "", false
	}
	for _, candidate := range rule.fallbacks(s) {
		if r.verify(ctx, candidate) {
			return normalizeTwitter(candidate), true
		}
	}
	return "", false
}

func (r *Resolver) verify(ctx context.Context, candidate string) bool {
	if r.verifier == nil || ctx.Err() != nil {
		return false
	}
	return r.verifier.ProfileExists(ctx, candidate)
}

// filterCandidates keeps the result links that live on the platform and
// mention the company slug, cleaned and de-duplicated.
func filterCandidates(rule platformRule, s slugs, results []string) []string {
	hints := rule.handleHints(s)
	seen := make(map[string]struct{}, len(results))
	var out []string
	for _, raw := range results {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Host == "" {
			continue
		}
		host := canonicalHost(u.Hostname())
		if !rule.hostMatches(host, u.Path) {
			continue
		}
		lower := strings.ToLower(raw)
		if !mentionsSlug(lower, s.compact, hints) {
			continue
		}
		u.RawQuery = ""
		u.Fragment = ""
		cleaned := u.String()
		if rule.platform == Twitter {
			cleaned = normalizeTwitter(cleaned)
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}

func mentionsSlug(lowerURL, compact string, hints []string) bool {
	if compact == "" {
		return false
	}
	squashed := strings.NewReplacer("-", "", "_", "").Replace(lowerURL)
	if strings.Contains(squashed, compact) {
		return true
	}
	return containsAny(lowerURL, hints)
}

// normalizeTwitter rewrites x.com hosts to twitter.com.
func normalizeTwitter(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || canonicalHost(u.Hostname()) != "x.com" {
		return raw
	}
	u.Host = "twitter.com"
	return u.String()
}

func canonicalHost(host string) string {
	host = strings.ToLower(strings.Trim(host, "."))
	for _, prefix := range []string{"www.", "m.", "mobile."} {
		host = strings.TrimPrefix(host, prefix)
	}
	return host
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
