package insider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"
)

// ErrNoOwnershipDocument is returned when content parses as XML but no
// ownershipDocument element exists anywhere in the tree.
var ErrNoOwnershipDocument = errors.New("insider: no ownership document element found")

// OwnershipDocument is a leniently parsed Form 3/4/5 ownership filing.
// Parsing tolerates malformed markup where it can: entities and control
// characters are scrubbed first, the document root is located under any
// nesting (full-submission <XML> envelopes included), and numeric fields
// resolve through ordered candidate paths instead of one rigid schema.
type OwnershipDocument struct {
	DocumentType   string
	SchemaVersion  string
	PeriodOfReport string
	Aff10b5One     bool
	Issuer         Issuer
	Owners         []ReportingOwner
	NonDerivative  []Transaction
	Derivative     []Transaction
	Footnotes      []Footnote
	Signatures     []Signature
	Remarks        string
}

// Issuer is the company whose stock was traded.
type Issuer struct {
	CIK           string `json:"cik"`
	Name          string `json:"name"`
	TradingSymbol string `json:"ticker"`
}

// ReportingOwner is the insider filing the form, with the relationship
// flags the form declares for them.
type ReportingOwner struct {
	CIK               string `json:"cik"`
	Name              string `json:"name"`
	IsDirector        bool   `json:"isDirector"`
	IsOfficer         bool   `json:"isOfficer"`
	IsTenPercentOwner bool   `json:"isTenPercentOwner"`
	IsOther           bool   `json:"isOther"`
	OfficerTitle      string `json:"officerTitle,omitempty"`
}

// Transaction is one reported transaction row, non-derivative or
// derivative. Shares, PricePerShare and TotalValue hold whatever the
// candidate-path resolution found; zero means the document did not state
// that field.
type Transaction struct {
	SecurityTitle        string          `json:"securityTitle"`
	Date                 string          `json:"date"`
	Code                 string          `json:"code"`
	Shares               int64           `json:"shares"`
	PricePerShare        decimal.Decimal `json:"pricePerShare"`
	TotalValue           decimal.Decimal `json:"totalValue"`
	AcquiredDisposed     string          `json:"acquiredDisposed"`
	SharesOwnedFollowing int64           `json:"sharesOwnedFollowing"`
	Derivative           bool            `json:"derivative"`
	FootnoteIDs          []string        `json:"footnoteIds,omitempty"`
}

// Footnote is a referenced footnote from the footnotes block.
type Footnote struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Signature is an owner signature block entry.
type Signature struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Candidate paths per field, most specific first. Transaction-level paths
// outrank holding-level ones: sharesOwnedFollowingTransaction reflects the
// post-transaction total, which is only a stand-in when the transaction
// itself states no share count.
var (
	sharesPaths = []string{
		"transactionShares/value",
		"transactionAmounts/transactionShares/value",
		"transactionAmounts/transactionShares",
		"postTransactionAmounts/sharesOwnedFollowingTransaction/value",
	}
	pricePaths = []string{
		"transactionPricePerShare/value",
		"transactionAmounts/transactionPricePerShare/value",
		"transactionAmounts/transactionPricePerShare",
		"conversionOrExercisePrice/value",
	}
	valuePaths = []string{
		"transactionTotalValue/value",
		"transactionAmounts/transactionTotalValue/value",
	}
	codePaths = []string{
		"transactionCoding/transactionCode",
		"transactionCode",
	}
	acquiredDisposedPaths = []string{
		"transactionAcquiredDisposedCode/value",
		"transactionAmounts/transactionAcquiredDisposedCode/value",
	}
	ownedFollowingPaths = []string{
		"sharesOwnedFollowingTransaction/value",
		"postTransactionAmounts/sharesOwnedFollowingTransaction/value",
	}
)

// ParseOwnershipDocument parses Form 3/4/5 XML into an OwnershipDocument.
// Content may be a bare ownership document or a full EDGAR submission with
// the document wrapped in an <XML> envelope.
func ParseOwnershipDocument(content string) (*OwnershipDocument, error) {
	cleaned := string(NormalizeXMLText([]byte(unwrapXMLEnvelope(content))))

	tree, err := xmlquery.Parse(strings.NewReader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("parse ownership xml: %w", err)
	}

	root := xmlquery.FindOne(tree, "//ownershipDocument")
	if root == nil {
		return nil, ErrNoOwnershipDocument
	}

	doc := &OwnershipDocument{
		DocumentType:   nodeText(root, "documentType"),
		SchemaVersion:  nodeText(root, "schemaVersion"),
		PeriodOfReport: nodeText(root, "periodOfReport"),
		Aff10b5One:     parseXMLBool(nodeText(root, "aff10b5One")),
		Remarks:        CleanExtractedText(nodeText(root, "remarks")),
		Issuer: Issuer{
			CIK:           nodeText(root, "issuer/issuerCik"),
			Name:          nodeText(root, "issuer/issuerName"),
			TradingSymbol: nodeText(root, "issuer/issuerTradingSymbol"),
		},
	}

	for _, owner := range xmlquery.Find(root, "reportingOwner") {
		doc.Owners = append(doc.Owners, ReportingOwner{
			CIK:               nodeText(owner, "reportingOwnerId/rptOwnerCik"),
			Name:              nodeText(owner, "reportingOwnerId/rptOwnerName"),
			IsDirector:        parseXMLBool(nodeText(owner, "reportingOwnerRelationship/isDirector")),
			IsOfficer:         parseXMLBool(nodeText(owner, "reportingOwnerRelationship/isOfficer")),
			IsTenPercentOwner: parseXMLBool(nodeText(owner, "reportingOwnerRelationship/isTenPercentOwner")),
			IsOther:           parseXMLBool(nodeText(owner, "reportingOwnerRelationship/isOther")),
			OfficerTitle:      nodeText(owner, "reportingOwnerRelationship/officerTitle"),
		})
	}

	for _, txn := range xmlquery.Find(root, "nonDerivativeTable/nonDerivativeTransaction") {
		doc.NonDerivative = append(doc.NonDerivative, parseTransaction(txn, false))
	}
	for _, txn := range xmlquery.Find(root, "derivativeTable/derivativeTransaction") {
		doc.Derivative = append(doc.Derivative, parseTransaction(txn, true))
	}

	for _, fn := range xmlquery.Find(root, "footnotes/footnote") {
		doc.Footnotes = append(doc.Footnotes, Footnote{
			ID:   fn.SelectAttr("id"),
			Text: CleanExtractedText(fn.InnerText()),
		})
	}

	for _, sig := range xmlquery.Find(root, "ownerSignature") {
		doc.Signatures = append(doc.Signatures, Signature{
			Name: nodeText(sig, "signatureName"),
			Date: nodeText(sig, "signatureDate"),
		})
	}

	return doc, nil
}

func parseTransaction(n *xmlquery.Node, derivative bool) Transaction {
	return Transaction{
		SecurityTitle:        firstText(n, "securityTitle/value", "securityTitle"),
		Date:                 firstText(n, "transactionDate/value", "transactionDate"),
		Code:                 firstText(n, codePaths...),
		Shares:               firstPositiveShares(n, sharesPaths...),
		PricePerShare:        firstPositiveMoney(n, pricePaths...),
		TotalValue:           firstPositiveMoney(n, valuePaths...),
		AcquiredDisposed:     firstText(n, acquiredDisposedPaths...),
		SharesOwnedFollowing: firstPositiveShares(n, ownedFollowingPaths...),
		Derivative:           derivative,
		FootnoteIDs:          footnoteRefs(n),
	}
}

// footnoteRefs collects the deduplicated footnote IDs referenced anywhere
// inside a transaction element.
func footnoteRefs(n *xmlquery.Node) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, ref := range xmlquery.Find(n, ".//footnoteId") {
		id := ref.SelectAttr("id")
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// nodeText returns the trimmed inner text at path, or "" when absent.
func nodeText(n *xmlquery.Node, path string) string {
	child := xmlquery.FindOne(n, path)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}

// firstText returns the first non-empty trimmed text among paths.
func firstText(n *xmlquery.Node, paths ...string) string {
	for _, path := range paths {
		if text := nodeText(n, path); text != "" {
			return text
		}
	}
	return ""
}

// firstPositiveShares resolves paths in order and returns the first value
// that parses to a positive share count.
func firstPositiveShares(n *xmlquery.Node, paths ...string) int64 {
	for _, path := range paths {
		if v := parseShareCount(nodeText(n, path)); v > 0 {
			return v
		}
	}
	return 0
}

// firstPositiveMoney resolves paths in order and returns the first value
// that parses to a positive amount.
func firstPositiveMoney(n *xmlquery.Node, paths ...string) decimal.Decimal {
	for _, path := range paths {
		if v := parseMoney(nodeText(n, path)); v.IsPositive() {
			return v
		}
	}
	return decimal.Zero
}

// parseXMLBool interprets the boolean spellings that appear in ownership
// XML: "1" and "true" are true, everything else is false.
func parseXMLBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true
	}
	return false
}

// unwrapXMLEnvelope extracts the payload between <XML> and </XML> markers
// when present. Full EDGAR submission files wrap each document this way.
func unwrapXMLEnvelope(content string) string {
	upper := strings.ToUpper(content)
	start := strings.Index(upper, "<XML>")
	if start < 0 {
		return content
	}
	start += len("<XML>")
	end := strings.Index(upper[start:], "</XML>")
	if end < 0 {
		return content[start:]
	}
	return content[start : start+end]
}

// FirstTransaction selects the transaction the record should describe:
// the first non-derivative transaction when one exists, otherwise the
// first derivative transaction. Non-derivative rows describe the common
// stock itself, which is what insider-trade analysis cares about.
func (d *OwnershipDocument) FirstTransaction() (Transaction, bool) {
	if len(d.NonDerivative) > 0 {
		return d.NonDerivative[0], true
	}
	if len(d.Derivative) > 0 {
		return d.Derivative[0], true
	}
	return Transaction{}, false
}

// MarketTrades returns the non-derivative open market purchases and sales.
func (d *OwnershipDocument) MarketTrades() []Transaction {
	var trades []Transaction
	for _, txn := range d.NonDerivative {
		if txn.Code == "P" || txn.Code == "S" {
			trades = append(trades, txn)
		}
	}
	return trades
}

// Purchases returns the non-derivative open market purchases.
func (d *OwnershipDocument) Purchases() []Transaction {
	var purchases []Transaction
	for _, txn := range d.MarketTrades() {
		if txn.Code == "P" {
			purchases = append(purchases, txn)
		}
	}
	return purchases
}

// Sales returns the non-derivative open market sales.
func (d *OwnershipDocument) Sales() []Transaction {
	var sales []Transaction
	for _, txn := range d.MarketTrades() {
		if txn.Code == "S" {
			sales = append(sales, txn)
		}
	}
	return sales
}

// TransactionCodeDescription returns the human-readable meaning of a
// Form 4 transaction code.
func TransactionCodeDescription(code string) string {
	descriptions := map[string]string{
		"P": "Open Market Purchase",
		"S": "Open Market Sale",
		"A": "Grant, Award or Other Acquisition",
		"D": "Disposition to the Issuer",
		"F": "Payment of Exercise Price or Tax Liability",
		"G": "Gift",
		"M": "Exercise or Conversion of Derivative Security",
		"C": "Conversion of Derivative Security",
		"E": "Expiration of Short Derivative Position",
		"H": "Expiration of Long Derivative Position",
		"I": "Discretionary Transaction",
		"O": "Exercise of Out-of-the-Money Derivative Security",
		"U": "Disposition Pursuant to a Tender",
		"X": "Exercise of In-the-Money or At-the-Money Derivative Security",
		"Z": "Deposit into or Withdrawal from Voting Trust",
	}
	return descriptions[code]
}

// extractFromOwnershipXML is the structured-XML strategy. A parse failure
// or a document with no transactions yields an empty partial; the cascade
// moves on, nothing is invented.
func extractFromOwnershipXML(content string) partialResult {
	doc, err := ParseOwnershipDocument(content)
	if err != nil {
		return partialResult{}
	}

	txn, ok := doc.FirstTransaction()
	if !ok {
		return partialResult{}
	}

	// Codes like M (exercise) or F (tax withholding) name a mechanism, not
	// a direction; the acquired/disposed code still carries one.
	trade := tradeTypeFromCode(txn.Code)
	if trade == TradeUnknown {
		trade = tradeTypeFromCode(txn.AcquiredDisposed)
	}

	return partialResult{
		Shares:        txn.Shares,
		PricePerShare: txn.PricePerShare,
		TotalValue:    txn.TotalValue,
		TradeType:     trade,
	}
}
