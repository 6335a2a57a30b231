package insider

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Filing documents write numbers every way imaginable: "1,874,978",
// "$12.3456", "-0-", "1,500 (1)", "(2,000)". These helpers pull the first
// usable number out of a string and give up quietly (zero) on garbage.

var (
	intPattern     = regexp.MustCompile(`[0-9][0-9,]*`)
	decimalPattern = regexp.MustCompile(`[0-9][0-9,]*\.?[0-9]*`)
)

// parseShareCount extracts the first integer-looking number from a string.
// Commas are treated as thousands separators. "-0-" (the EDGAR convention
// for an explicit zero) parses as 0. Returns 0 when nothing parses.
func parseShareCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.Contains(s, "-0-") {
		return 0
	}

	match := intPattern.FindString(s)
	if match == "" {
		return 0
	}
	match = strings.ReplaceAll(match, ",", "")

	if val, err := strconv.ParseInt(match, 10, 64); err == nil {
		return val
	}

	// Fallback: share counts occasionally carry a fractional part
	if f, err := strconv.ParseFloat(match, 64); err == nil {
		return int64(f)
	}

	return 0
}

// parseMoney extracts the first decimal amount from a string, stripping
// currency symbols and thousands separators. Accounting-style parentheses
// mark a negative amount. Returns decimal.Zero when nothing parses.
func parseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, "-0-") {
		return decimal.Zero
	}

	negative := strings.Contains(s, "(") && strings.Contains(s, ")")
	s = strings.NewReplacer("$", "", "USD", "", " ", " ").Replace(s)

	match := decimalPattern.FindString(s)
	if match == "" {
		return decimal.Zero
	}
	match = strings.ReplaceAll(match, ",", "")

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// numericCellPattern matches table cells that hold a single number and
// nothing else: optional currency symbol, thousands separators, optional
// fraction, optional trailing percent sign.
var numericCellPattern = regexp.MustCompile(`^\$?\s*[0-9][0-9,]*(\.[0-9]+)?\s*%?$`)

// isNumericCell reports whether a table cell's text is purely numeric.
// Cells with surrounding prose ("Form 4", "page 2 of 4") are not numeric
// even though they contain digits.
func isNumericCell(s string) bool {
	return numericCellPattern.MatchString(strings.TrimSpace(s))
}

// isIntegerForm reports whether a numeric token is written as a bare
// integer: no decimal point, no currency symbol, no percent sign. Share
// counts are written this way; prices and dollar totals usually are not.
func isIntegerForm(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.ContainsAny(s, ".$%")
}
