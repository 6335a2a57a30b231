package insider

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Filing documents rarely agree on where the "real" date lives: structured
// forms carry periodOfReport, index pages carry a "Document Date" label,
// and text fallbacks have free-form dates scattered everywhere. The rules
// below run in a fixed priority order and the first date inside the
// plausibility window wins.

const (
	// maxFilingAgeDays bounds how far in the past an extracted date may
	// lie. Anything older is stale boilerplate, not the filing date.
	maxFilingAgeDays = 730
	// maxFutureSlackDays tolerates clock skew on same-day filings.
	maxFutureSlackDays = 1
)

// dateTagPriority lists the structured tags that can hold the filing date,
// most authoritative first. periodOfReport is the date the form itself
// reports on, so it outranks signature and acceptance timestamps.
var dateTagPriority = []string{
	"periodOfReport",
	"signatureDate",
	"transactionDate",
	"filingDate",
	"acceptanceDateTime",
	"notificationDate",
}

// dateTagPatterns holds one compiled regex per structured tag. The optional
// <value> hop covers the Form 4 convention of nesting values one level down.
var dateTagPatterns = compileDateTagPatterns()

func compileDateTagPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(dateTagPriority))
	for i, tag := range dateTagPriority {
		patterns[i] = regexp.MustCompile(`(?is)<` + tag + `[^>]*>\s*(?:<value[^>]*>\s*)?([^<]+)`)
	}
	return patterns
}

var (
	// "Document Date: 03/15/2025" on rendered filing pages.
	documentDateLabelPattern = regexp.MustCompile(`(?i)document\s+date[:\s]+([0-9]{1,2}/[0-9]{1,2}/[0-9]{4})`)

	// Free-text pattern families, tried in this order.
	isoDatePattern    = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	usDatePattern     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	dashedDatePattern = regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`)
)

// freeTextFamilies pairs each free-text pattern family with its layout.
var freeTextFamilies = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{isoDatePattern, "2006-01-02"},
	{usDatePattern, "1/2/2006"},
	{dashedDatePattern, "1-2-2006"},
}

// ExtractFilingDate finds the filing's date in content, or returns nil when
// no plausible date exists. A nil return is not an error; callers proceed
// without a date.
func ExtractFilingDate(content string) *time.Time {
	return ExtractFilingDateAt(content, time.Now())
}

// ExtractFilingDateAt is ExtractFilingDate with an explicit reference time
// for the plausibility window.
func ExtractFilingDateAt(content string, now time.Time) *time.Time {
	// Structured tags first. These values may be bare dates or full
	// ISO timestamps (acceptanceDateTime), so parsing is format-agnostic.
	for _, pattern := range dateTagPatterns {
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if t, err := dateparse.ParseAny(trimDateToken(m[1])); err == nil && withinWindow(t, now) {
			return &t
		}
	}

	// Labeled "Document Date" on index-style pages.
	if m := documentDateLabelPattern.FindStringSubmatch(content); m != nil {
		if t, err := dateparse.ParseAny(m[1]); err == nil && withinWindow(t, now) {
			return &t
		}
	}

	// Free-text scan, one pattern family at a time; within a family the
	// first in-window match in document order wins.
	for _, family := range freeTextFamilies {
		for _, candidate := range family.pattern.FindAllString(content, -1) {
			t, err := time.Parse(family.layout, candidate)
			if err != nil {
				continue
			}
			if withinWindow(t, now) {
				return &t
			}
		}
	}

	return nil
}

// withinWindow reports whether t is plausible as a filing date: at most
// maxFutureSlackDays ahead of now and at most maxFilingAgeDays behind it.
func withinWindow(t, now time.Time) bool {
	if t.After(now.AddDate(0, 0, maxFutureSlackDays)) {
		return false
	}
	if t.Before(now.AddDate(0, 0, -maxFilingAgeDays)) {
		return false
	}
	return true
}

func trimDateToken(s string) string {
	return strings.Trim(s, " \t\n\r\"'")
}
