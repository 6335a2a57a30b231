package insider

import (
	"regexp"
	"strings"
)

// InsiderIdentity names the person or entity behind a filing. Name is
// never empty ("Unknown" when nothing extracts) and Role always carries
// a controlled-vocabulary value rather than raw document text.
type InsiderIdentity struct {
	Name string `json:"name"`
	CIK  string `json:"personCik,omitempty"`
	Role string `json:"role"`
}

const (
	defaultInsiderName = "Unknown"
	defaultRole        = "Executive"
	entityRole         = "Entity/Issuer"

	roleDirector        = "Director"
	roleOfficer         = "Officer"
	roleTenPercentOwner = "10% Owner"

	maxNameLength  = 40
	minNameSegment = 3
)

// EDGAR index titles carry the reporting person as
// "4 - SMITH JOHN (0001234567) (Reporting)". The form-prefixed pattern
// runs first so the prefix stays out of the captured name.
var titleReportingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(?:3|4|5)(?:/A)?\s*-\s*(.+?)\s*\((\d{10})\)\s*\(Reporting\)`),
	regexp.MustCompile(`(?i)(.+?)\s*\((\d{10})\)\s*\(Reporting\)`),
}

var (
	summaryPersonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)reporting\s+person[:\s]+([A-Za-z][A-Za-z .,'&-]{2,60})`),
		regexp.MustCompile(`(?i)filed\s+by[:\s]+([A-Za-z][A-Za-z .,'&-]{2,60})`),
	}
	summaryCikPattern = regexp.MustCompile(`(?i)\bcik\b[#:\s]*(\d{1,10})`)

	contentNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<rptOwnerName[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`),
		regexp.MustCompile(`(?i)reporting\s+person[:\s]+([A-Za-z][A-Za-z .,'&-]{2,60})`),
	}
	contentCikPattern = regexp.MustCompile(`(?is)<rptOwnerCik[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`)
)

var (
	directorFlagPattern   = regexp.MustCompile(`(?is)<isDirector[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`)
	officerFlagPattern    = regexp.MustCompile(`(?is)<isOfficer[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`)
	tenPercentFlagPattern = regexp.MustCompile(`(?is)<isTenPercentOwner[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`)
)

// Structured role tags, most specific first.
var roleTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<officerTitle[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`),
	regexp.MustCompile(`(?is)<directorTitle[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`),
	regexp.MustCompile(`(?is)<positionTitle[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`),
	regexp.MustCompile(`(?is)<relationship[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`),
}

// Common job titles worth pulling out of free text, long forms before
// their abbreviations.
var commonTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(chief\s+executive\s+officer|chief\s+financial\s+officer|chief\s+operating\s+officer|chief\s+technology\s+officer|chief\s+information\s+officer)\b`),
	regexp.MustCompile(`(?i)\b(executive\s+vice\s+president|senior\s+vice\s+president|vice\s+president|managing\s+director|general\s+counsel)\b`),
	regexp.MustCompile(`(?i)\b(ceo|cfo|coo|cto|cio|evp|svp)\b`),
	regexp.MustCompile(`(?i)\b(chairman|chairwoman|president|director|officer|secretary|treasurer|controller)\b`),
	regexp.MustCompile(`(?i)\b(10%\s+owner|ten\s+percent\s+owner|beneficial\s+owner)\b`),
}

// invalidPositionPattern rejects document structure masquerading as a
// job title, like "SEC Form 4" or "XML header".
var invalidPositionPattern = regexp.MustCompile(`(?i)(form\s*4|document|xml|html|filing|title|header|page)`)

var (
	form4BoilerplatePattern = regexp.MustCompile(`(?i)\bform\s*(?:3|4|5)(?:/A)?\b`)
	formPrefixPattern       = regexp.MustCompile(`^\s*\d\s*-\s*`)
	companyIndicatorPattern = regexp.MustCompile(`(?i)\b(inc|corp|corporation|company|co|llc|llp|lp|ltd|trust|fund|partners|capital|holdings|group)\b\.?`)
)

// roleAbbreviations expands the short forms that turn up in officer
// title fields.
var roleAbbreviations = map[string]string{
	"md":   "Managing Director",
	"vp":   "Vice President",
	"evp":  "Executive Vice President",
	"svp":  "Senior Vice President",
	"ceo":  "CEO",
	"cfo":  "CFO",
	"coo":  "COO",
	"cto":  "CTO",
	"cio":  "CIO",
	"gc":   "General Counsel",
	"pres": "President",
}

// ExtractInsiderIdentity derives the insider's name, CIK and role from a
// filing's title, summary and content. Tiers run in that order and each
// later tier runs only when the earlier ones found no name.
func ExtractInsiderIdentity(title, summary, content string) InsiderIdentity {
	name, cik := insiderNameAndCIK(title, summary, content)
	role := roleWithHint(content, name)

	if name == "" {
		name = defaultInsiderName
	}

	return InsiderIdentity{Name: name, CIK: cik, Role: role}
}

// ExtractInsiderRole derives only the role from filing content.
func ExtractInsiderRole(content string) string {
	return roleWithHint(content, "")
}

func insiderNameAndCIK(title, summary, content string) (string, string) {
	if name, cik := nameFromTitle(title); name != "" {
		return name, cik
	}
	if name, cik := nameFromSummary(summary); name != "" {
		return name, cik
	}
	return nameFromContent(content)
}

func nameFromTitle(title string) (string, string) {
	for _, re := range titleReportingPatterns {
		if m := re.FindStringSubmatch(title); len(m) > 2 {
			if name := cleanInsiderName(m[1]); name != "" {
				return name, m[2]
			}
		}
	}
	return "", ""
}

func nameFromSummary(summary string) (string, string) {
	for _, re := range summaryPersonPatterns {
		if m := re.FindStringSubmatch(summary); len(m) > 1 {
			if name := cleanInsiderName(m[1]); name != "" {
				return name, firstSubmatch(summaryCikPattern, summary)
			}
		}
	}
	return "", ""
}

func nameFromContent(content string) (string, string) {
	for _, re := range contentNamePatterns {
		if m := re.FindStringSubmatch(content); len(m) > 1 {
			if name := cleanInsiderName(m[1]); name != "" {
				return name, firstSubmatch(contentCikPattern, content)
			}
		}
	}
	return "", ""
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// cleanInsiderName strips form boilerplate and shortens implausibly long
// captures to the segment before the first comma, dash or parenthesis,
// keeping the full string when that segment would be too short to be a
// name.
func cleanInsiderName(name string) string {
	name = formPrefixPattern.ReplaceAllString(name, "")
	name = form4BoilerplatePattern.ReplaceAllString(name, "")
	name = strings.Trim(name, " \t\n\r-,:")

	if len(name) > maxNameLength {
		if cut := strings.IndexAny(name, ",-("); cut >= 0 {
			segment := strings.TrimSpace(name[:cut])
			if len(segment) >= minNameSegment {
				name = segment
			}
		}
	}

	return name
}

// roleWithHint runs the role pipeline. The relationship flags are
// authoritative when present; everything after them is heuristic.
// nameHint, when non-empty, decides between the individual and entity
// defaults.
func roleWithHint(content, nameHint string) string {
	if flagIsSet(directorFlagPattern, content) {
		return roleDirector
	}
	if flagIsSet(officerFlagPattern, content) {
		return roleOfficer
	}
	if flagIsSet(tenPercentFlagPattern, content) {
		return roleTenPercentOwner
	}

	for _, re := range roleTagPatterns {
		if m := re.FindStringSubmatch(content); len(m) > 1 {
			if candidate := strings.TrimSpace(m[1]); isValidPosition(candidate) {
				return normalizeRole(candidate)
			}
		}
	}

	for _, re := range commonTitlePatterns {
		if m := re.FindStringSubmatch(content); len(m) > 1 {
			if candidate := strings.TrimSpace(m[1]); isValidPosition(candidate) {
				return normalizeRole(candidate)
			}
		}
	}

	if role := roleFromContext(content); role != "" {
		return role
	}

	if nameHint != "" && companyIndicatorPattern.MatchString(nameHint) {
		return entityRole
	}
	return defaultRole
}

func flagIsSet(re *regexp.Regexp, content string) bool {
	m := re.FindStringSubmatch(content)
	return len(m) > 1 && parseXMLBool(m[1])
}

// roleFromContext falls back to loose keyword clues when no explicit
// title exists anywhere in the document.
func roleFromContext(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "issuer"):
		return entityRole
	case strings.Contains(lower, "board member"):
		return roleDirector
	case strings.Contains(lower, "executive"):
		return "Executive"
	case strings.Contains(lower, "manager"):
		return "Manager"
	case strings.Contains(lower, "analyst"):
		return "Analyst"
	}
	return ""
}

// isValidPosition rejects candidates that are document structure rather
// than a person's position.
func isValidPosition(s string) bool {
	if len(s) < 2 || len(s) > 60 {
		return false
	}
	return !invalidPositionPattern.MatchString(s)
}

// normalizeRole expands known abbreviations and title-cases everything
// else, preserving words that already carry uppercase.
func normalizeRole(s string) string {
	key := strings.ToLower(strings.Trim(s, " ."))
	if full, ok := roleAbbreviations[key]; ok {
		return full
	}
	return titleCase(s)
}

// titleCase capitalizes fully lowercase words and leaves mixed-case and
// uppercase words alone, so acronyms like CEO survive.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToLower(w) {
			r := []rune(w)
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
