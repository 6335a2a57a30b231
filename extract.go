package insider

import "time"

// FilingRecord is the complete extraction output for one filing
// document: the numeric result, the filing's true date when one could be
// established, the insider's identity, and when extraction ran. Records
// are constructed fresh per document and never mutated after return.
type FilingRecord struct {
	Extraction  ExtractionResult `json:"extraction"`
	FilingDate  *time.Time       `json:"filingDate,omitempty"`
	Insider     InsiderIdentity  `json:"insider"`
	ExtractedAt time.Time        `json:"extractedAt"`
}

// strategy is one numeric-extraction attempt. applies gates it on the
// content class; run must tolerate any input and yield an empty partial
// rather than fail.
type strategy struct {
	method  Method
	applies func(ContentClass) bool
	run     func(string) partialResult
}

// strategies in priority order. Index pages come first because their
// tables are the cleanest source when present, then structured XML, then
// the progressively blunter fallbacks.
var strategies = []strategy{
	{
		method:  MethodSECIndex,
		applies: func(c ContentClass) bool { return c == ClassSECIndex },
		run:     extractFromTables,
	},
	{
		method:  MethodXMLStructured,
		applies: func(c ContentClass) bool { return c == ClassXMLOwnership },
		run:     extractFromOwnershipXML,
	},
	{
		method:  MethodXMLRegex,
		applies: func(c ContentClass) bool { return c == ClassXMLOwnership || c == ClassText },
		run:     extractFromXMLTags,
	},
	{
		method:  MethodHTMLTable,
		applies: func(c ContentClass) bool { return c == ClassSECIndex || c == ClassGenericHTML },
		run:     extractFromTables,
	},
	{
		method:  MethodGenericRegex,
		applies: func(ContentClass) bool { return true },
		run:     extractFromText,
	},
}

// ExtractFilingRecord turns raw filing content into a FilingRecord. It
// never returns an error: malformed input is routine here, and when no
// strategy extracts anything the record reports an explicit failure with
// zeroed numbers instead of invented ones.
func ExtractFilingRecord(content string) FilingRecord {
	return extractRecord("", "", content, time.Now())
}

// ExtractFilingRecordAt is ExtractFilingRecord with a caller-supplied
// clock for the date plausibility window and the extractedAt stamp.
func ExtractFilingRecordAt(content string, now time.Time) FilingRecord {
	return extractRecord("", "", content, now)
}

func extractRecord(title, summary, content string, now time.Time) FilingRecord {
	record := FilingRecord{ExtractedAt: now}

	if contentTooShort(content) {
		record.Extraction = failedResult("content too short to contain filing data")
		record.Insider = InsiderIdentity{Name: defaultInsiderName, Role: defaultRole}
		return record
	}

	class := ClassifyContent(content)

	record.Extraction = runCascade(content, class)
	record.FilingDate = ExtractFilingDateAt(content, now)
	record.Insider = ExtractInsiderIdentity(title, summary, content)

	return record
}

// runCascade tries each applicable strategy in priority order, stopping
// at the first significant result. Strategies that match nothing advance
// the cascade; only full exhaustion marks the record failed.
func runCascade(content string, class ContentClass) ExtractionResult {
	for _, s := range strategies {
		if !s.applies(class) {
			continue
		}
		p := runStrategy(s, content)
		if p.significant() {
			return finalizeResult(p, s.method)
		}
	}
	return failedResult("no extraction strategy found transaction data")
}

// runStrategy isolates a strategy crash. A panicking strategy counts as
// having yielded nothing.
func runStrategy(s strategy, content string) (p partialResult) {
	defer func() {
		if r := recover(); r != nil {
			p = partialResult{}
		}
	}()
	return s.run(content)
}
