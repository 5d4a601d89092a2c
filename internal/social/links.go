package social

import "github.com/octobees/leads-enricher/internal/extract"

// Platform names a supported social network.
type Platform string

const (
	LinkedIn  Platform = "linkedin"
	Twitter   Platform = "twitter"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
)

// Platforms lists the supported networks in resolution order.
var Platforms = []Platform{LinkedIn, Twitter, Instagram, Facebook}

// Links maps each platform to an optional profile URL. A nil field means no
// profile could be confirmed.
type Links struct {
	LinkedIn  *string `json:"linkedin"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
}

// Get returns the URL stored for p.
func (l Links) Get(p Platform) (string, bool) {
	var v *string
	switch p {
	case LinkedIn:
		v = l.LinkedIn
	case Twitter:
		v = l.Twitter
	case Instagram:
		v = l.Instagram
	case Facebook:
		v = l.Facebook
	}
	if v == nil || *v == "" {
		return "", false
	}
	return *v, true
}

// Set stores url for p. An empty url clears the platform.
func (l *Links) Set(p Platform, url string) {
	var v *string
	if url != "" {
		v = &url
	}
	switch p {
	case LinkedIn:
		l.LinkedIn = v
	case Twitter:
		l.Twitter = v
	case Instagram:
		l.Instagram = v
	case Facebook:
		l.Facebook = v
	}
}

// Count reports how many platforms have a URL.
func (l Links) Count() int {
	n := 0
	for _, p := range Platforms {
		if _, ok := l.Get(p); ok {
			n++
		}
	}
	return n
}

// Present lists the platforms that have a URL, in resolution order.
func (l Links) Present() []Platform {
	var out []Platform
	for _, p := range Platforms {
		if _, ok := l.Get(p); ok {
			out = append(out, p)
		}
	}
	return out
}

// FromProfiles converts curated directory profiles into Links.
func FromProfiles(p extract.SocialProfiles) Links {
	var l Links
	l.Set(LinkedIn, p.LinkedIn)
	l.Set(Twitter, p.Twitter)
	l.Set(Instagram, p.Instagram)
	l.Set(Facebook, p.Facebook)
	return l
}
