package insider

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractFromXMLTags(t *testing.T) {
	content := `<?xml version="1.0"?>
<report>
  <title>Ownership summary</title>
  <sharesOwned>1,200</sharesOwned>
  <priceOfSecurity>15.25</priceOfSecurity>
  <valueOfSecurities>18,300</valueOfSecurities>
  <transactionType>Purchase</transactionType>
</report>`

	got := extractFromXMLTags(content)

	if got.Shares != 1200 {
		t.Errorf("Shares = %d, want 1200", got.Shares)
	}
	if !got.PricePerShare.Equal(decimal.RequireFromString("15.25")) {
		t.Errorf("PricePerShare = %s, want 15.25", got.PricePerShare)
	}
	if !got.TotalValue.Equal(decimal.RequireFromString("18300")) {
		t.Errorf("TotalValue = %s, want 18300", got.TotalValue)
	}
	if got.TradeType != TradeBuy {
		t.Errorf("TradeType = %q, want BUY", got.TradeType)
	}
}

func TestExtractFromXMLTagsValueHop(t *testing.T) {
	content := `<holdings>
  <amountOfSecuritiesOwned><value>88,200</value></amountOfSecuritiesOwned>
  <marketValue>
    <value>$3,770,550</value>
  </marketValue>
  <code>S</code>
</holdings>`

	got := extractFromXMLTags(content)

	if got.Shares != 88200 {
		t.Errorf("Shares = %d, want 88200", got.Shares)
	}
	if !got.TotalValue.Equal(decimal.RequireFromString("3770550")) {
		t.Errorf("TotalValue = %s, want 3770550", got.TotalValue)
	}
	if got.TradeType != TradeSell {
		t.Errorf("TradeType = %q, want SELL", got.TradeType)
	}
	if !got.PricePerShare.IsZero() {
		t.Errorf("PricePerShare = %s, want 0", got.PricePerShare)
	}
}

func TestExtractFromXMLTagsWordBoundary(t *testing.T) {
	// sharesOwnedFollowingTransaction is a different field with different
	// semantics and must not satisfy the sharesOwned pattern.
	content := `<nonDerivativeTransaction>
  <postTransactionAmounts>
    <sharesOwnedFollowingTransaction><value>88200</value></sharesOwnedFollowingTransaction>
  </postTransactionAmounts>
</nonDerivativeTransaction>`

	got := extractFromXMLTags(content)

	if got.Shares != 0 {
		t.Errorf("Shares = %d, want 0", got.Shares)
	}
	if got.significant() {
		t.Errorf("partial unexpectedly significant: %+v", got)
	}
}

func TestExtractFromXMLTagsMalformed(t *testing.T) {
	// Unclosed tags and stray angle brackets defeat a tree parser but not
	// a tag scan.
	content := `<report><sharesOwned>500<priceOfSecurity>10.00
<transactionType>sold`

	got := extractFromXMLTags(content)

	if got.Shares != 500 {
		t.Errorf("Shares = %d, want 500", got.Shares)
	}
	if !got.PricePerShare.Equal(decimal.RequireFromString("10")) {
		t.Errorf("PricePerShare = %s, want 10", got.PricePerShare)
	}
	if got.TradeType != TradeSell {
		t.Errorf("TradeType = %q, want SELL", got.TradeType)
	}
}

func TestExtractFromXMLTagsEmpty(t *testing.T) {
	got := extractFromXMLTags("<report><other>text</other></report>")

	if got.significant() {
		t.Errorf("partial unexpectedly significant: %+v", got)
	}
	if got.TradeType != "" {
		t.Errorf("TradeType = %q, want empty", got.TradeType)
	}
}
