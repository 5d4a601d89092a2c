package extract

import "regexp"

// Capitalised two or three word person name. Kept case-sensitive so that
// trailing lower-case words are never swallowed into the name.
const personName = `([A-Z][a-z]+ [A-Z][a-z]+(?: [A-Z][a-z]+)?)`

// ownerNamePatterns are tried top to bottom; the first pattern with an
// acceptable match decides the owner name.
var ownerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:founder|ceo|owner|president|chief executive officer|managing director|director|partner|chairman|head)[\s:]+` + personName),
	regexp.MustCompile(personName + `[\s,]+(?i:is|as|serves as)[\s,]+(?i:the|our|a)[\s,]+(?i:founder|ceo|owner|president|managing director|partner|director|chairman)`),
	regexp.MustCompile(`(?i:founded by|created by|established by|led by|run by|managed by)[\s:]+` + personName),
	regexp.MustCompile(`(?i:leadership|management|team|about|board|executive)[\s\w]*?:?\s*` + personName + `\s*(?i:founder|ceo|owner|president|director|partner|lead)`),
	regexp.MustCompile(`(?i:contact|meet|about|team)\s+([A-Z][a-z]+ [A-Z][a-z]+)`),
	regexp.MustCompile(`(?i:our)\s+(?i:founder|leader|ceo|president|managing partner|director)\s+([A-Z][a-z]+ [A-Z][a-z]+)`),
}

var placeholderNames = map[string]struct{}{
	"Lorem Ipsum":    {},
	"John Doe":       {},
	"Jane Doe":       {},
	"Privacy Policy": {},
	"Terms Service":  {},
}

var financialNameTerms = []string{"capital", "finance", "investment", "partners", "group", "advisors", "fund"}

var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// Email bucket terms, highest priority first.
var (
	ownerRoleEmailTerms = []string{"founder", "ceo", "owner", "president"}
	contactEmailTerms   = []string{"contact", "info@", "hello", "support"}
)

const phoneKeyword = `(?i:phone|tel|call|contact)`

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(phoneKeyword + `[\s:]+(\+?\d[\d\s\-()]{8,})`),
	regexp.MustCompile(phoneKeyword + `[\s:]*?([0-9]{3}[\s\-.]?[0-9]{3}[\s\-.]?[0-9]{4})`),
	regexp.MustCompile(phoneKeyword + `[\s:]*?((?:\+[0-9]{1,4}[\s\-.]?)?(?:\([0-9]{3}\)|[0-9]{3})[\s\-.]?[0-9]{3}[\s\-.]?[0-9]{4})`),
}

type linkedInRule struct {
	pattern *regexp.Regexp
	prefix  string
}

var linkedInRules = []linkedInRule{
	{pattern: regexp.MustCompile(`linkedin\.com/in/([a-zA-Z0-9_-]+)`), prefix: "https://linkedin.com/in/"},
	{pattern: regexp.MustCompile(`linkedin\.com/company/([a-zA-Z0-9_-]+)`), prefix: "https://linkedin.com/company/"},
}

type industryRule struct {
	industry string
	keywords []string
}

// industryRules are declared in tie-break order.
var industryRules = []industryRule{
	{"Technology", []string{"software", "technology", "digital", "tech", "computer", "app", "internet", "cloud", "data"}},
	{"Finance", []string{"finance", "banking", "investment", "financial", "bank", "insurance", "wealth", "capital", "trading", "fintech"}},
	{"Healthcare", []string{"health", "medical", "healthcare", "hospital", "clinic", "patient", "doctor", "pharma", "medicine", "biotech"}},
	{"Retail", []string{"retail", "store", "shop", "ecommerce", "e-commerce", "consumer", "shopping", "product", "marketplace"}},
	{"Manufacturing", []string{"manufacturing", "factory", "production", "industry", "industrial", "supply chain", "assembly", "fabrication"}},
	{"Education", []string{"education", "learning", "school", "university", "college", "academic", "student", "course", "teaching"}},
	{"Real Estate", []string{"real estate", "property", "housing", "commercial", "residential", "construction", "building", "development"}},
	{"Marketing", []string{"marketing", "advertising", "brand", "media", "promotion", "campaign", "market research"}},
	{"Hospitality", []string{"hospitality", "hotel", "travel", "tourism", "restaurant", "booking", "reservation", "accommodation"}},
	{"Legal", []string{"legal", "law", "attorney", "lawyer", "counsel", "compliance", "regulation", "justice"}},
}

// Industries lists the inferable industry categories in declaration order.
func Industries() []string {
	out := make([]string, len(industryRules))
	for i, rule := range industryRules {
		out[i] = rule.industry
	}
	return out
}

var (
	enterpriseIndicators = []string{
		"fortune 500", "global leader", "multinational", "worldwide", "international presence",
		"thousands of employees", "large enterprise", "enterprise solutions", "global offices",
		"industry leader", "1000+ employees", "billion", "millions of customers",
	}
	midMarketIndicators = []string{
		"growing company", "medium-sized", "regional leader", "hundreds of employees",
		"expanding business", "mid-sized", "mid-market", "100+ employees", "million",
		"multiple offices", "national presence",
	}
	smbIndicators = []string{
		"small business", "startup", "family-owned", "local business", "small team",
		"boutique", "independent", "founded recently", "small company",
	}
)

type sizeScores struct {
	enterprise, midMarket, smb int
}

type sizeRule struct {
	when func(sizeScores) bool
	size Size
}

// sizeRules resolve indicator counts top to bottom; the last rule always
// matches.
var sizeRules = []sizeRule{
	{func(s sizeScores) bool { return s.enterprise == 0 && s.midMarket == 0 && s.smb == 0 }, SizeSMB},
	{func(s sizeScores) bool { return s.enterprise >= s.midMarket && s.enterprise >= s.smb }, SizeEnterprise},
	{func(s sizeScores) bool { return s.midMarket > s.smb }, SizeMidMarket},
	{func(sizeScores) bool { return true }, SizeSMB},
}

// Matched against the lower-cased text.
var descriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)(?:about us|company profile|who we are)\s*(.{50,500})`),
	regexp.MustCompile(`(?s)(?:our mission|our vision|our story)\s*(.{50,500})`),
}

// Case-insensitive throughout, so a lower-case capture such as "our" reaches
// countryStopWords.
var countryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:headquarters|based in|located in|office in)[\s:]*([a-z]+(?:,?\s+[a-z]+)?)`),
	regexp.MustCompile(`(?i)\b(?:in|from)[\s:]*([a-z]+),?\s*(?:and|with)\b`),
	regexp.MustCompile(`(?i)([a-z]+)[\s-]*based`),
}

var countryStopWords = map[string]struct{}{
	"the": {}, "our": {}, "their": {}, "we": {}, "company": {},
}

var revenuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:revenue|sales|turnover)[\s:]*(?:of|up to|over)?[\s:]*[$£€¥]?(\d+(?:\.\d+)?\s*(?:million|billion|trillion|M|B|K|T))`),
	regexp.MustCompile(`(?i)[$£€¥]?(\d+(?:\.\d+)?\s*(?:million|billion|trillion|M|B|T))\s*(?:in|of)?\s*(?:revenue|sales|turnover)`),
}

var audiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:target|serve|focus on|cater to)[\s:]*([^.]+?(?:customers|clients|users|audience|individuals|businesses|organizations))`),
	regexp.MustCompile(`(?i)(?:designed for|tailored to|specialized in)[\s:]*([^.]{10,100})`),
}
