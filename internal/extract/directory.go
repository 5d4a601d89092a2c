package extract

import "strings"

// SocialProfiles holds curated social URLs for a known entity.
type SocialProfiles struct {
	LinkedIn  string
	Twitter   string
	Instagram string
	Facebook  string
}

// KnownEntity is a curated record for a recognizable company. Any of the
// three facets may be nil when the entity is only known for some of them.
type KnownEntity struct {
	Key        string
	Attributes *Attributes
	Owner      *OwnerInfo
	Social     *SocialProfiles
}

// Directory is an ordered, read-only table of known entities. Lookups match
// when an entity key is a substring of the lower-cased company name; the
// first matching entry wins.
type Directory struct {
	entries []KnownEntity
}

// NewDirectory copies entries into a new Directory, preserving their order.
func NewDirectory(entries ...KnownEntity) *Directory {
	copied := make([]KnownEntity, 0, len(entries))
	for _, entry := range entries {
		entry.Key = strings.ToLower(strings.TrimSpace(entry.Key))
		if entry.Key == "" {
			continue
		}
		copied = append(copied, entry)
	}
	return &Directory{entries: copied}
}

// Attributes returns the curated attributes for companyName.
func (d *Directory) Attributes(companyName string) (Attributes, bool) {
	entry, ok := d.find(companyName, func(e KnownEntity) bool { return e.Attributes != nil })
	if !ok {
		return Attributes{}, false
	}
	return *entry.Attributes, true
}

// Owner returns the curated owner record for companyName.
func (d *Directory) Owner(companyName string) (OwnerInfo, bool) {
	entry, ok := d.find(companyName, func(e KnownEntity) bool { return e.Owner != nil })
	if !ok {
		return OwnerInfo{}, false
	}
	return *entry.Owner, true
}

// Social returns the curated social profiles for companyName.
func (d *Directory) Social(companyName string) (SocialProfiles, bool) {
	entry, ok := d.find(companyName, func(e KnownEntity) bool { return e.Social != nil })
	if !ok {
		return SocialProfiles{}, false
	}
	return *entry.Social, true
}

// Keys lists entity keys in lookup order.
func (d *Directory) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, entry := range d.entries {
		keys[i] = entry.Key
	}
	return keys
}

func (d *Directory) find(companyName string, has func(KnownEntity) bool) (KnownEntity, bool) {
	if d == nil {
		return KnownEntity{}, false
	}
	name := strings.ToLower(companyName)
	if strings.TrimSpace(name) == "" {
		return KnownEntity{}, false
	}
	for _, entry := range d.entries {
		if has(entry) && strings.Contains(name, entry.Key) {
			return entry, true
		}
	}
	return KnownEntity{}, false
}

var defaultDirectory = NewDirectory(
	KnownEntity{
		Key: "microsoft",
		Attributes: &Attributes{
			Industry:         "Technology",
			Size:             SizeEnterprise,
			Description:      "Microsoft Corporation is an American multinational technology company that develops, licenses, and supports a wide range of software products, computing devices, and services.",
			Country:          "United States",
			Revenue:          "Over $150 billion",
			TargetAudience:   "Businesses, consumers, developers, and educational institutions worldwide.",
			LinkedInActivity: ActivityHigh,
			Domain:           "microsoft.com",
		},
		Owner: &OwnerInfo{
			Name:        "Satya Nadella",
			Email:       "ceo@microsoft.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (425) 882-8080",
			LinkedIn:    "https://www.linkedin.com/in/satyanadella",
		},
		Social: &SocialProfiles{
			LinkedIn:  "https://www.linkedin.com/company/microsoft",
			Twitter:   "https://twitter.com/Microsoft",
			Instagram: "https://www.instagram.com/microsoft",
			Facebook:  "https://www.facebook.com/Microsoft",
		},
	},
	KnownEntity{
		Key: "apple",
		Attributes: &Attributes{
			Industry:         "Technology",
			Size:             SizeEnterprise,
			Description:      "Apple Inc. is an American multinational technology company that designs, develops, and sells consumer electronics, computer software, and online services.",
			Country:          "United States",
			Revenue:          "Over $350 billion",
			TargetAudience:   "Consumers, professionals, creatives, and businesses.",
			LinkedInActivity: ActivityHigh,
			Domain:           "apple.com",
		},
		Owner: &OwnerInfo{
			Name:        "Tim Cook",
			Email:       "investor_relations@apple.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (408) 996-1010",
			LinkedIn:    "https://www.linkedin.com/company/apple",
		},
		Social: &SocialProfiles{
			LinkedIn:  "https://www.linkedin.com/company/apple",
			Twitter:   "https://twitter.com/Apple",
			Instagram: "https://www.instagram.com/apple",
			Facebook:  "https://www.facebook.com/apple",
		},
	},
	KnownEntity{
		Key: "google",
		Attributes: &Attributes{
			Industry:         "Technology",
			Size:             SizeEnterprise,
			Description:      "Google LLC is an American multinational technology company that specializes in Internet-related services and products, including search, cloud computing, software, and hardware.",
			Country:          "United States",
			Revenue:          "Over $250 billion",
			TargetAudience:   "Internet users, advertisers, businesses, and developers.",
			LinkedInActivity: ActivityHigh,
			Domain:           "google.com",
		},
		Owner: &OwnerInfo{
			Name:        "Sundar Pichai",
			Email:       "press@google.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (650) 253-0000",
			LinkedIn:    "https://www.linkedin.com/company/google",
		},
		Social: &SocialProfiles{
			LinkedIn:  "https://www.linkedin.com/company/google",
			Twitter:   "https://twitter.com/Google",
			Instagram: "https://www.instagram.com/google",
			Facebook:  "https://www.facebook.com/Google",
		},
	},
	KnownEntity{
		Key: "amazon",
		Attributes: &Attributes{
			Industry:         "Retail & Technology",
			Size:             SizeEnterprise,
			Description:      "Amazon.com, Inc. is an American multinational technology company focusing on e-commerce, cloud computing, digital streaming, and artificial intelligence.",
			Country:          "United States",
			Revenue:          "Over $450 billion",
			TargetAudience:   "Consumers, businesses, developers, and content creators.",
			LinkedInActivity: ActivityHigh,
			Domain:           "amazon.com",
		},
		Owner: &OwnerInfo{
			Name:        "Andy Jassy",
			Email:       "investor-relations@amazon.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (206) 266-1000",
			LinkedIn:    "https://www.linkedin.com/company/amazon",
		},
		Social: &SocialProfiles{
			LinkedIn:  "https://www.linkedin.com/company/amazon",
			Twitter:   "https://twitter.com/amazon",
			Instagram: "https://www.instagram.com/amazon",
			Facebook:  "https://www.facebook.com/Amazon",
		},
	},
	KnownEntity{
		Key: "netflix",
		Attributes: &Attributes{
			Industry:         "Entertainment & Technology",
			Size:             SizeEnterprise,
			Description:      "Netflix, Inc. is an American subscription streaming service and production company offering a library of films and television series.",
			Country:          "United States",
			Revenue:          "Over $30 billion",
			TargetAudience:   "Global streaming content consumers.",
			LinkedInActivity: ActivityHigh,
			Domain:           "netflix.com",
		},
		Owner: &OwnerInfo{
			Name:        "Ted Sarandos",
			Email:       "ir@netflix.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (408) 540-3700",
			LinkedIn:    "https://www.linkedin.com/company/netflix",
		},
		Social: &SocialProfiles{
			LinkedIn:  "https://www.linkedin.com/company/netflix",
			Twitter:   "https://twitter.com/netflix",
			Instagram: "https://www.instagram.com/netflix",
			Facebook:  "https://www.facebook.com/netflix",
		},
	},
	KnownEntity{
		Key: "meta",
		Attributes: &Attributes{
			Industry:         "Technology & Social Media",
			Size:             SizeEnterprise,
			Description:      "Meta Platforms, Inc. (formerly Facebook, Inc.) is an American multinational technology conglomerate that owns Facebook, Instagram, WhatsApp, and other subsidiaries.",
			Country:          "United States",
			Revenue:          "Over $110 billion",
			TargetAudience:   "Global social media users, businesses, advertisers, and developers.",
			LinkedInActivity: ActivityHigh,
			Domain:           "meta.com",
		},
		Owner: &OwnerInfo{
			Name:        "Mark Zuckerberg",
			Email:       "press@fb.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (650) 543-4800",
			LinkedIn:    "https://www.linkedin.com/company/meta",
		},
	},
	KnownEntity{
		Key: "facebook",
		Attributes: &Attributes{
			Industry:         "Technology & Social Media",
			Size:             SizeEnterprise,
			Description:      "Meta Platforms, Inc. (formerly Facebook, Inc.) is an American multinational technology conglomerate that owns Facebook, Instagram, WhatsApp, and other subsidiaries.",
			Country:          "United States",
			Revenue:          "Over $110 billion",
			TargetAudience:   "Global social media users, businesses, advertisers, and developers.",
			LinkedInActivity: ActivityHigh,
			Domain:           "facebook.com",
		},
		Owner: &OwnerInfo{
			Name:        "Mark Zuckerberg",
			Email:       "press@fb.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (650) 543-4800",
			LinkedIn:    "https://www.linkedin.com/company/facebook",
		},
	},
	KnownEntity{
		Key: "tesla",
		Attributes: &Attributes{
			Industry:         "Automotive & Technology",
			Size:             SizeEnterprise,
			Description:      "Tesla, Inc. is an American electric vehicle and clean energy company that designs and manufactures electric cars, battery energy storage, solar panels, and related products and services.",
			Country:          "United States",
			Revenue:          "Over $80 billion",
			TargetAudience:   "Environmentally conscious consumers, automotive enthusiasts, and energy companies.",
			LinkedInActivity: ActivityHigh,
			Domain:           "tesla.com",
		},
		Owner: &OwnerInfo{
			Name:        "Elon Musk",
			Email:       "press@tesla.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (888) 518-3752",
			LinkedIn:    "https://www.linkedin.com/company/tesla-motors",
		},
	},
	KnownEntity{
		Key: "capraecapital",
		Attributes: &Attributes{
			Industry:         "Finance & Investment",
			Size:             SizeMidMarket,
			Description:      "Caprae Capital is an experienced group of founders, entrepreneurs, and investors with a proven track record of growing and operating successful businesses. Their mission is to find great companies, help businesses reach their potential, while enhancing the company's legacy.",
			Country:          "United States",
			Revenue:          "$10-50 million",
			TargetAudience:   "Business owners who are mission-driven and aim to achieve long-term value.",
			LinkedInActivity: ActivityMedium,
			Domain:           "capraecapital.com",
		},
		Owner: &OwnerInfo{
			Name:        "Kevin Hong",
			Email:       "info@capraecapital.com",
			EmailStatus: EmailValid,
			Phone:       "+1 (800) 555-1234",
			LinkedIn:    "https://www.linkedin.com/company/caprae-capital-partners",
		},
	},
)

// DefaultDirectory returns the built-in table of known entities.
func DefaultDirectory() *Directory {
	return defaultDirectory
}
