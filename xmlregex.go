package insider

import "regexp"

// Tag-level patterns for ownership XML that a tree parser cannot read.
// Each accepts an optional nested <value> element before the text, since
// EDGAR schemas wrap most leaf fields that way.
var (
	xmlSharesTagPattern = regexp.MustCompile(`(?is)<(?:sharesOwned|amountOfSecuritiesOwned)\b[^>]*>(?:\s*<value\b[^>]*>)?\s*([^<]+)`)
	xmlPriceTagPattern  = regexp.MustCompile(`(?is)<priceOfSecurity\b[^>]*>(?:\s*<value\b[^>]*>)?\s*([^<]+)`)
	xmlValueTagPattern  = regexp.MustCompile(`(?is)<(?:valueOfSecurities|marketValue)\b[^>]*>(?:\s*<value\b[^>]*>)?\s*([^<]+)`)
	xmlTypeTagPattern   = regexp.MustCompile(`(?is)<(?:transactionType|code)\b[^>]*>(?:\s*<value\b[^>]*>)?\s*([^<]+)`)
)

// extractFromXMLTags pulls fields straight out of tag text without
// requiring a well-formed tree. It backs up the structured parser when
// the XML is too broken to parse or uses tag names outside the standard
// ownership schema.
func extractFromXMLTags(content string) partialResult {
	var p partialResult

	if m := xmlSharesTagPattern.FindStringSubmatch(content); len(m) > 1 {
		p.Shares = parseShareCount(m[1])
	}
	if m := xmlPriceTagPattern.FindStringSubmatch(content); len(m) > 1 {
		p.PricePerShare = parseMoney(m[1])
	}
	if m := xmlValueTagPattern.FindStringSubmatch(content); len(m) > 1 {
		p.TotalValue = parseMoney(m[1])
	}
	if m := xmlTypeTagPattern.FindStringSubmatch(content); len(m) > 1 {
		p.TradeType = ParseTradeType(m[1])
	}

	return p
}
