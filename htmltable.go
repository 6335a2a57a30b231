package insider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// Magnitude bounds for classifying unlabeled numeric cells. Bare integers
// inside the share-count range read as share counts, small currency
// amounts read as per-share prices, large amounts read as total value.
const (
	minShareCell = 10
	maxShareCell = 50_000_000
)

var (
	maxPriceCell = decimal.NewFromInt(1_000)
	minTotalCell = decimal.NewFromInt(10_000)
)

// extractFromTables walks every table cell in document order and assigns
// each purely numeric cell to the first unset field it qualifies for.
// The heuristic is order-sensitive: EDGAR transaction tables list share
// counts before prices before totals, so first-match assignment tracks
// column meaning without reading headers.
func extractFromTables(content string) partialResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return partialResult{}
	}

	var p partialResult
	doc.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		classifyCellValue(&p, cellText(cell))
	})

	p.TradeType = directionFromKeywords(doc.Text())
	return p
}

// classifyCellValue fills the first unset slot the cell qualifies for.
// Routing follows the cell's written form: bare integers are share counts
// or, when too large for that, dollar totals, while amounts with a
// currency symbol or fraction are prices or totals by magnitude. Small
// bare integers (sequence and form-number columns on index pages) claim
// nothing. Cells containing anything beyond a single number are ignored,
// as are percentages.
func classifyCellValue(p *partialResult, text string) {
	if text == "" || !isNumericCell(text) {
		return
	}
	if strings.Contains(text, "%") {
		return
	}

	if isIntegerForm(text) {
		if p.Shares == 0 {
			if v := parseShareCount(text); v >= minShareCell && v <= maxShareCell {
				p.Shares = v
				return
			}
		}
		if p.TotalValue.IsZero() {
			if v := parseMoney(text); v.GreaterThan(minTotalCell) {
				p.TotalValue = v
			}
		}
		return
	}

	if p.PricePerShare.IsZero() {
		if v := parseMoney(text); v.IsPositive() && v.LessThan(maxPriceCell) {
			p.PricePerShare = v
			return
		}
	}

	if p.TotalValue.IsZero() {
		if v := parseMoney(text); v.GreaterThan(minTotalCell) {
			p.TotalValue = v
		}
	}
}

// cellText collects the text nodes under a cell, space-joined with
// whitespace collapsed.
func cellText(cell *goquery.Selection) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range cell.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

// directionFromKeywords infers trade direction from wording anywhere in
// the page text. Buy language wins when both directions appear, and buy
// is the default when nothing matches.
func directionFromKeywords(text string) TradeType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "purchase") || strings.Contains(lower, "acquisition") || strings.Contains(lower, "bought"):
		return TradeBuy
	case strings.Contains(lower, "disposition") || strings.Contains(lower, "sale") || strings.Contains(lower, "sold"):
		return TradeSell
	case strings.Contains(lower, "grant"):
		return TradeGrant
	case strings.Contains(lower, "award"):
		return TradeAward
	}
	return TradeBuy
}
