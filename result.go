package insider

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TradeType classifies the direction of an insider transaction.
type TradeType string

const (
	TradeBuy     TradeType = "BUY"
	TradeSell    TradeType = "SELL"
	TradeGrant   TradeType = "GRANT"
	TradeAward   TradeType = "AWARD"
	TradeUnknown TradeType = "UNKNOWN"
)

// Method names the extraction strategy that produced a result.
type Method string

const (
	MethodSECIndex      Method = "secIndex"
	MethodXMLStructured Method = "xmlStructured"
	MethodXMLRegex      Method = "xmlRegex"
	MethodHTMLTable     Method = "htmlTable"
	MethodGenericRegex  Method = "genericRegex"
	MethodFailed        Method = "failed"
)

// moneyScale is the number of fractional digits kept on monetary fields.
const moneyScale = 2

// ExtractionResult is the numeric outcome of the extraction cascade.
// All numeric fields are non-negative. When Failed is true every numeric
// field is exactly zero; absence of data is never papered over with
// invented numbers.
type ExtractionResult struct {
	Shares        int64           `json:"shares"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	TradeType     TradeType       `json:"tradeType"`
	Method        Method          `json:"extractionMethod"`
	Failed        bool            `json:"failed"`
	FailureReason string          `json:"failureReason,omitempty"`
}

// partialResult is the uniform output of a single extraction strategy,
// before validation and derivation. The zero value means the strategy
// yielded nothing.
type partialResult struct {
	Shares        int64
	PricePerShare decimal.Decimal
	TotalValue    decimal.Decimal
	TradeType     TradeType
}

// significant reports whether at least one numeric field is non-zero.
// The orchestrator stops the cascade at the first significant result.
func (p partialResult) significant() bool {
	return p.Shares > 0 || p.PricePerShare.IsPositive() || p.TotalValue.IsPositive()
}

// ParseTradeType normalizes an extracted transaction-type string against
// the fixed TradeType vocabulary. Unrecognized strings map to TradeUnknown.
func ParseTradeType(s string) TradeType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "BOUGHT", "PURCHASE", "PURCHASED", "ACQUISITION", "ACQUIRED", "P":
		return TradeBuy
	case "SELL", "SOLD", "SALE", "DISPOSITION", "DISPOSED", "S":
		return TradeSell
	case "GRANT", "GRANTED", "GIFT", "G":
		return TradeGrant
	case "AWARD", "AWARDED", "A":
		return TradeAward
	default:
		return TradeUnknown
	}
}

// tradeTypeFromCode maps a Form 4 transaction code to a trade direction.
// S and D are dispositions, P and A are acquisitions; anything else is
// left unknown rather than guessed.
func tradeTypeFromCode(code string) TradeType {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "S", "D":
		return TradeSell
	case "P", "A":
		return TradeBuy
	default:
		return TradeUnknown
	}
}

// finalizeResult validates and normalizes a significant partial result:
// negatives clamp to zero, monetary fields round to two decimals, and when
// exactly two of shares/price/value are known the third is derived from
// them. The trade type is checked against the fixed vocabulary.
func finalizeResult(p partialResult, method Method) ExtractionResult {
	if p.Shares < 0 {
		p.Shares = 0
	}
	if p.PricePerShare.IsNegative() {
		p.PricePerShare = decimal.Zero
	}
	if p.TotalValue.IsNegative() {
		p.TotalValue = decimal.Zero
	}

	price := p.PricePerShare.Round(moneyScale)
	value := p.TotalValue.Round(moneyScale)
	shares := p.Shares

	switch {
	case shares > 0 && price.IsPositive() && !value.IsPositive():
		value = price.Mul(decimal.NewFromInt(shares)).Round(moneyScale)
	case shares > 0 && value.IsPositive() && !price.IsPositive():
		price = value.Div(decimal.NewFromInt(shares)).Round(moneyScale)
	case price.IsPositive() && value.IsPositive() && shares == 0:
		shares = value.Div(price).Round(0).IntPart()
	}

	trade := p.TradeType
	if !validTradeType(trade) {
		trade = TradeUnknown
	}

	return ExtractionResult{
		Shares:        shares,
		PricePerShare: price,
		TotalValue:    value,
		TradeType:     trade,
		Method:        method,
	}
}

func validTradeType(t TradeType) bool {
	switch t {
	case TradeBuy, TradeSell, TradeGrant, TradeAward, TradeUnknown:
		return true
	}
	return false
}

// failedResult builds the terminal all-zero result. The reason is for
// humans reading logs; callers branch on Failed, not on the text.
func failedResult(reason string) ExtractionResult {
	return ExtractionResult{
		PricePerShare: decimal.Zero,
		TotalValue:    decimal.Zero,
		TradeType:     TradeUnknown,
		Method:        MethodFailed,
		Failed:        true,
		FailureReason: reason,
	}
}
