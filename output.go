package insider

import "time"

// RecordOutput is the flattened JSON shape downstream consumers persist:
// one level deep, plain floats for money, ISO strings for dates.
type RecordOutput struct {
	Shares           int64   `json:"shares"`
	PricePerShare    float64 `json:"pricePerShare"`
	TotalValue       float64 `json:"totalValue"`
	TradeType        string  `json:"tradeType"`
	ExtractionMethod string  `json:"extractionMethod"`
	Failed           bool    `json:"failed"`
	FailureReason    string  `json:"failureReason,omitempty"`
	FilingDate       *string `json:"filingDate"`
	InsiderName      string  `json:"insiderName"`
	InsiderCIK       string  `json:"personCik,omitempty"`
	InsiderRole      string  `json:"insiderRole"`
	ExtractedAt      string  `json:"extractedAt"`
	Source           string  `json:"source,omitempty"`
}

// ToOutput flattens the record for serialization.
func (r FilingRecord) ToOutput() *RecordOutput {
	out := &RecordOutput{
		Shares:           r.Extraction.Shares,
		PricePerShare:    r.Extraction.PricePerShare.InexactFloat64(),
		TotalValue:       r.Extraction.TotalValue.InexactFloat64(),
		TradeType:        string(r.Extraction.TradeType),
		ExtractionMethod: string(r.Extraction.Method),
		Failed:           r.Extraction.Failed,
		FailureReason:    r.Extraction.FailureReason,
		InsiderName:      r.Insider.Name,
		InsiderCIK:       r.Insider.CIK,
		InsiderRole:      r.Insider.Role,
		ExtractedAt:      r.ExtractedAt.UTC().Format(time.RFC3339),
	}

	if r.FilingDate != nil {
		iso := r.FilingDate.Format("2006-01-02")
		out.FilingDate = &iso
	}

	return out
}

// SetSource records where the document came from (URL or file path).
func (o *RecordOutput) SetSource(source string) {
	o.Source = source
}

// OwnershipOutput is the serialization shape for a parsed ownership
// document, with per-transaction trading-plan resolution folded in.
type OwnershipOutput struct {
	FormType       string              `json:"formType"`
	SchemaVersion  string              `json:"schemaVersion"`
	PeriodOfReport string              `json:"periodOfReport"`
	Has10b51Plan   bool                `json:"has10b51Plan"`
	Issuer         Issuer              `json:"issuer"`
	Owners         []ReportingOwner    `json:"reportingOwners"`
	Transactions   []TransactionOutput `json:"transactions"`
	Footnotes      []Footnote          `json:"footnotes"`
	Signatures     []Signature         `json:"signatures"`
	Source         string              `json:"source,omitempty"`
}

// TransactionOutput is one transaction row with its code spelled out and
// plan status resolved.
type TransactionOutput struct {
	SecurityTitle         string   `json:"securityTitle"`
	Date                  string   `json:"date"`
	Code                  string   `json:"code"`
	CodeDescription       string   `json:"codeDescription,omitempty"`
	Shares                int64    `json:"shares"`
	PricePerShare         float64  `json:"pricePerShare"`
	TotalValue            float64  `json:"totalValue,omitempty"`
	AcquiredDisposed      string   `json:"acquiredDisposed"`
	SharesOwnedFollowing  int64    `json:"sharesOwnedFollowing"`
	Derivative            bool     `json:"derivative"`
	Is10b51Plan           bool     `json:"is10b51Plan"`
	Plan10b51AdoptionDate *string  `json:"plan10b51AdoptionDate"`
	Footnotes             []string `json:"footnotes"`
}

// ToOutput converts a parsed ownership document to its serialization
// shape. Remarks join the footnotes under the ID "REMARKS" so plan
// language stated there survives serialization.
func (d *OwnershipDocument) ToOutput() *OwnershipOutput {
	out := &OwnershipOutput{
		FormType:       d.DocumentType,
		SchemaVersion:  d.SchemaVersion,
		PeriodOfReport: d.PeriodOfReport,
		Has10b51Plan:   d.Is10b51Plan(),
		Issuer:         d.Issuer,
		Owners:         d.Owners,
		Footnotes:      d.Footnotes,
		Signatures:     d.Signatures,
	}

	if d.Remarks != "" {
		out.Footnotes = append(out.Footnotes, Footnote{ID: "REMARKS", Text: d.Remarks})
	}

	for _, txn := range d.NonDerivative {
		out.Transactions = append(out.Transactions, d.convertTransaction(txn))
	}
	for _, txn := range d.Derivative {
		out.Transactions = append(out.Transactions, d.convertTransaction(txn))
	}

	return out
}

func (d *OwnershipDocument) convertTransaction(txn Transaction) TransactionOutput {
	plan := d.TransactionPlan(txn)

	footnotes := txn.FootnoteIDs
	if footnotes == nil {
		footnotes = []string{}
	}

	return TransactionOutput{
		SecurityTitle:         txn.SecurityTitle,
		Date:                  txn.Date,
		Code:                  txn.Code,
		CodeDescription:       TransactionCodeDescription(txn.Code),
		Shares:                txn.Shares,
		PricePerShare:         txn.PricePerShare.InexactFloat64(),
		TotalValue:            txn.TotalValue.InexactFloat64(),
		AcquiredDisposed:      txn.AcquiredDisposed,
		SharesOwnedFollowing:  txn.SharesOwnedFollowing,
		Derivative:            txn.Derivative,
		Is10b51Plan:           plan.Detected,
		Plan10b51AdoptionDate: plan.AdoptionDate,
		Footnotes:             footnotes,
	}
}
