package insider

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// Submissions is the SEC submissions JSON for one CIK, as served by
// data.sec.gov/submissions/CIK{cik}.json. Fetching is the caller's
// concern; this package only parses already-available bytes.
type Submissions struct {
	CIK                               string      `json:"cik"`
	EntityType                        string      `json:"entityType"`
	SIC                               string      `json:"sic"`
	SICDescription                    string      `json:"sicDescription"`
	Name                              string      `json:"name"`
	Tickers                           []string    `json:"tickers"`
	Exchanges                         []string    `json:"exchanges"`
	Category                          string      `json:"category"`
	FiscalYearEnd                     string      `json:"fiscalYearEnd"`
	Filings                           FilingsData `json:"filings"`
	InsiderTransactionForOwnerExists  int         `json:"insiderTransactionForOwnerExists"`
	InsiderTransactionForIssuerExists int         `json:"insiderTransactionForIssuerExists"`
}

// FilingsData holds the recent filings plus pointers to paginated files
// of older ones.
type FilingsData struct {
	Recent FilingArrays `json:"recent"`
	Files  []FilingFile `json:"files"`
}

// FilingFile names a paginated file of older filings.
type FilingFile struct {
	Name        string `json:"name"`
	FilingCount int    `json:"filingCount"`
	FilingFrom  string `json:"filingFrom"`
	FilingTo    string `json:"filingTo"`
}

// FilingArrays is the SEC's column-oriented filing list: parallel arrays
// where index i across every array describes one filing.
type FilingArrays struct {
	AccessionNumber       []string `json:"accessionNumber"`
	FilingDate            []string `json:"filingDate"`
	ReportDate            []string `json:"reportDate"`
	AcceptanceDateTime    []string `json:"acceptanceDateTime"`
	Form                  []string `json:"form"`
	FileNumber            []string `json:"fileNumber"`
	Size                  []int    `json:"size"`
	PrimaryDocument       []string `json:"primaryDocument"`
	PrimaryDocDescription []string `json:"primaryDocDescription"`
}

// Filing is one row of the submissions list with its archive URL derived.
type Filing struct {
	AccessionNumber       string `json:"accessionNumber"`
	FilingDate            string `json:"filingDate"`
	ReportDate            string `json:"reportDate,omitempty"`
	AcceptanceDateTime    string `json:"acceptanceDateTime,omitempty"`
	Form                  string `json:"form"`
	FileNumber            string `json:"fileNumber,omitempty"`
	Size                  int    `json:"size,omitempty"`
	PrimaryDocument       string `json:"primaryDocument"`
	PrimaryDocDescription string `json:"primaryDocDescription,omitempty"`
	CIK                   string `json:"cik"`
	URL                   string `json:"url"`
}

// ParseSubmissions parses a submissions JSON document.
func ParseSubmissions(r io.Reader) (*Submissions, error) {
	var subs Submissions
	if err := json.NewDecoder(r).Decode(&subs); err != nil {
		return nil, fmt.Errorf("parse submissions JSON: %w", err)
	}
	return &subs, nil
}

// GetFilings expands the parallel arrays into Filing values. Arrays can
// be ragged in practice, so every optional column is bounds-checked.
func (fa *FilingArrays) GetFilings(cik string) []Filing {
	count := len(fa.AccessionNumber)
	filings := make([]Filing, count)

	for i := 0; i < count; i++ {
		filing := Filing{
			CIK:             cik,
			AccessionNumber: fa.AccessionNumber[i],
		}

		if i < len(fa.FilingDate) {
			filing.FilingDate = fa.FilingDate[i]
		}
		if i < len(fa.Form) {
			filing.Form = fa.Form[i]
		}
		if i < len(fa.PrimaryDocument) {
			filing.PrimaryDocument = fa.PrimaryDocument[i]
		}
		if i < len(fa.ReportDate) {
			filing.ReportDate = fa.ReportDate[i]
		}
		if i < len(fa.AcceptanceDateTime) {
			filing.AcceptanceDateTime = fa.AcceptanceDateTime[i]
		}
		if i < len(fa.FileNumber) {
			filing.FileNumber = fa.FileNumber[i]
		}
		if i < len(fa.Size) {
			filing.Size = fa.Size[i]
		}
		if i < len(fa.PrimaryDocDescription) {
			filing.PrimaryDocDescription = fa.PrimaryDocDescription[i]
		}

		filing.URL = filing.BuildURL()
		filings[i] = filing
	}

	return filings
}

// GetRecentFilings returns the recent filings as Filing values.
func (s *Submissions) GetRecentFilings() []Filing {
	return s.Filings.Recent.GetFilings(s.CIK)
}

// BuildURL constructs the EDGAR archive URL for the filing's primary
// document. Ownership filings often list the primary document behind an
// XSL rendering path like "xslF345X05/doc4.xml"; the prefix is stripped
// to reach the raw document.
func (f *Filing) BuildURL() string {
	accessionPath := strings.ReplaceAll(f.AccessionNumber, "-", "")

	doc := f.PrimaryDocument
	if strings.Contains(doc, "/") {
		parts := strings.Split(doc, "/")
		doc = parts[len(parts)-1]
	}

	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s",
		strings.TrimLeft(f.CIK, "0"),
		accessionPath,
		doc,
	)
}

// FilterByForm keeps filings whose form matches exactly. Amendments must
// be requested explicitly: form "4" does not match "4/A".
func FilterByForm(filings []Filing, formType string) []Filing {
	formType = strings.TrimSpace(formType)
	return lo.Filter(filings, func(f Filing, _ int) bool {
		return f.Form == formType
	})
}

// OwnershipFilings keeps the insider ownership forms 3, 4 and 5,
// amendments included.
func OwnershipFilings(filings []Filing) []Filing {
	return lo.Filter(filings, func(f Filing, _ int) bool {
		base := strings.TrimSuffix(f.Form, "/A")
		return base == "3" || base == "4" || base == "5"
	})
}

// FilterByDateRange keeps filings whose filing date falls inside the
// inclusive range. Dates are YYYY-MM-DD strings, so lexicographic
// comparison is date comparison. An empty bound leaves that side of
// the range open.
func FilterByDateRange(filings []Filing, from, to string) []Filing {
	return lo.Filter(filings, func(f Filing, _ int) bool {
		if from != "" && f.FilingDate < from {
			return false
		}
		if to != "" && f.FilingDate > to {
			return false
		}
		return true
	})
}
