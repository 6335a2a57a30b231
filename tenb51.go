package insider

import (
	"regexp"
	"strings"
	"time"
)

// TradingPlan describes whether a piece of filing text indicates a
// Rule 10b5-1 trading plan and, when stated, the plan's adoption date
// in ISO-8601 form (YYYY-MM-DD).
type TradingPlan struct {
	Detected     bool    `json:"detected"`
	AdoptionDate *string `json:"adoptionDate,omitempty"`
}

// remarksKey marks plan language found in the remarks field rather than
// a specific footnote. It applies to transactions without footnote refs.
const remarksKey = "__REMARKS__"

var (
	// Plan references appear as 10b5-1, 10b5–1, Rule 10b5-1 and so on.
	planPattern = regexp.MustCompile(`(?i)\b(rule\s*)?10b5[-–]?1\b`)

	// Language indicating the plan was in active use, as opposed to a
	// cancellation or termination notice.
	planUsagePattern = regexp.MustCompile(`(?i)\b(pursuant\s+to|adopted|in\s+accordance\s+with|under|effected\s+pursuant\s+to)\b`)

	// Adoption dates follow phrasing like "adopted on March 13, 2025"
	// or "entered into in September 2025".
	planAdoptionPattern = regexp.MustCompile(
		`(?i)\b(adopted|established|entered\s+into).*?\b(on|in)\s+` +
			`((?:January|February|March|April|May|June|July|August|September|October|November|December|` +
			`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)` +
			`\s+\d{1,2},\s+\d{4}|` +
			`(?:January|February|March|April|May|June|July|August|September|October|November|December|` +
			`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)` +
			`\s+\d{4})`,
	)
)

// parsePlanDate normalizes the spelled-out date forms that appear in
// footnote prose. Returns nil when no layout matches.
func parsePlanDate(raw string) *string {
	raw = strings.TrimSpace(raw)

	// time.Parse knows Sep but not the four-letter Sept.
	if strings.HasPrefix(raw, "Sept") && !strings.HasPrefix(raw, "September") {
		raw = "Sep" + raw[len("Sept"):]
	}

	layouts := []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"January, 2006",
		"Jan, 2006",
		"January 2006",
		"Jan 2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}

	return nil
}

// AnalyzeTradingPlan inspects text, typically a footnote, for evidence
// that the reported trade was executed under a 10b5-1 plan. A bare plan
// mention without usage language (for example a termination notice) does
// not count as detection.
func AnalyzeTradingPlan(text string) TradingPlan {
	var plan TradingPlan

	if !planPattern.MatchString(text) {
		return plan
	}
	if !planUsagePattern.MatchString(text) {
		return plan
	}

	plan.Detected = true

	match := planAdoptionPattern.FindStringSubmatch(text)
	if len(match) >= 4 {
		plan.AdoptionDate = parsePlanDate(match[3])
	}

	return plan
}

// TradingPlans scans every footnote plus the remarks field and maps each
// plan-bearing footnote ID to its adoption date. A detected plan with no
// stated date maps to the empty string. Remarks-level plan language is
// keyed under remarksKey.
func (d *OwnershipDocument) TradingPlans() map[string]string {
	plans := make(map[string]string)

	for _, fn := range d.Footnotes {
		plan := AnalyzeTradingPlan(fn.Text)
		if !plan.Detected {
			continue
		}
		if plan.AdoptionDate != nil {
			plans[fn.ID] = *plan.AdoptionDate
		} else {
			plans[fn.ID] = ""
		}
	}

	if d.Remarks != "" {
		plan := AnalyzeTradingPlan(d.Remarks)
		if plan.Detected {
			if plan.AdoptionDate != nil {
				plans[remarksKey] = *plan.AdoptionDate
			} else {
				plans[remarksKey] = ""
			}
		}
	}

	return plans
}

// Is10b51Plan reports whether the filing indicates 10b5-1 plan usage,
// either through the checkbox flag or through footnote/remarks language.
func (d *OwnershipDocument) Is10b51Plan() bool {
	if d.Aff10b5One {
		return true
	}
	return len(d.TradingPlans()) > 0
}

// TransactionPlan resolves plan status for one transaction: footnotes
// referenced by the transaction take priority, then remarks-level plan
// language, then the document checkbox.
func (d *OwnershipDocument) TransactionPlan(txn Transaction) TradingPlan {
	plans := d.TradingPlans()

	for _, id := range txn.FootnoteIDs {
		if date, ok := plans[id]; ok {
			return planFromDate(date)
		}
	}

	if date, ok := plans[remarksKey]; ok {
		return planFromDate(date)
	}

	if d.Aff10b5One {
		return TradingPlan{Detected: true}
	}

	return TradingPlan{}
}

func planFromDate(date string) TradingPlan {
	plan := TradingPlan{Detected: true}
	if date != "" {
		plan.AdoptionDate = &date
	}
	return plan
}
