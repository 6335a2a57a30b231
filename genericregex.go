package insider

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// minPlausibleTotal rejects tiny "value" matches. In free text a small
// number next to the word value is usually a per-share figure, not a
// transaction total.
var minPlausibleTotal = decimal.NewFromInt(100)

// Pattern families per field, tried in order. Each family scans the whole
// document and the first candidate that parses to a positive number wins.
var (
	sharesTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([0-9][0-9,]*)\s+shares?\b`),
		regexp.MustCompile(`(?i)\bshares?\b[^0-9%]{0,10}([0-9][0-9,]*)\b`),
		regexp.MustCompile(`(?i)\bquantity\b[^0-9%]{0,10}([0-9][0-9,]*)\b`),
	}
	priceTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bprice\s+per\s+share\b[^0-9$%]{0,10}\$?\s*([0-9][0-9,]*\.?[0-9]*)`),
		regexp.MustCompile(`(?i)\$\s*([0-9][0-9,]*\.?[0-9]*)\s*per\s+share\b`),
		regexp.MustCompile(`(?i)\bprice\b[^0-9$%]{0,10}\$?\s*([0-9][0-9,]*\.?[0-9]*)`),
		regexp.MustCompile(`(?i)\bat\s+\$\s*([0-9][0-9,]*\.?[0-9]*)`),
	}
	valueTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\btotal\s+value\b[^0-9$%]{0,10}\$?\s*([0-9][0-9,]*\.?[0-9]*)`),
		regexp.MustCompile(`(?i)\bvalue\b[^0-9$%]{0,10}\$?\s*([0-9][0-9,]*\.?[0-9]*)`),
		regexp.MustCompile(`(?i)\btotal\b[^0-9$%]{0,10}\$?\s*([0-9][0-9,]*\.?[0-9]*)`),
	}
)

// extractFromText is the last-resort strategy over arbitrary text. Trade
// direction is left unknown; free-text numbers carry no reliable signal
// for it.
func extractFromText(content string) partialResult {
	return partialResult{
		Shares:        firstPositiveIntMatch(content, sharesTextPatterns),
		PricePerShare: firstPositiveMoneyMatch(content, priceTextPatterns, decimal.Zero),
		TotalValue:    firstPositiveMoneyMatch(content, valueTextPatterns, minPlausibleTotal),
	}
}

func firstPositiveIntMatch(content string, patterns []*regexp.Regexp) int64 {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if v := parseShareCount(m[1]); v > 0 {
				return v
			}
		}
	}
	return 0
}

// firstPositiveMoneyMatch returns the first positive candidate at or
// above floor, scanning each pattern's matches in document order.
func firstPositiveMoneyMatch(content string, patterns []*regexp.Regexp, floor decimal.Decimal) decimal.Decimal {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			v := parseMoney(m[1])
			if v.IsPositive() && !v.LessThan(floor) {
				return v
			}
		}
	}
	return decimal.Zero
}
