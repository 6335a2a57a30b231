package insider

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractFromTables(t *testing.T) {
	content := `<html><body>
<p>Open market sale by the reporting person.</p>
<table>
  <tr><th>Shares</th><th>Price</th><th>Total</th></tr>
  <tr><td>12,500</td><td>$42.75</td><td>$534,375</td></tr>
</table>
</body></html>`

	got := extractFromTables(content)

	if got.Shares != 12500 {
		t.Errorf("Shares = %d, want 12500", got.Shares)
	}
	if !got.PricePerShare.Equal(decimal.RequireFromString("42.75")) {
		t.Errorf("PricePerShare = %s, want 42.75", got.PricePerShare)
	}
	if !got.TotalValue.Equal(decimal.RequireFromString("534375")) {
		t.Errorf("TotalValue = %s, want 534375", got.TotalValue)
	}
	if got.TradeType != TradeSell {
		t.Errorf("TradeType = %q, want SELL", got.TradeType)
	}
}

func TestExtractFromTablesSkipsNonNumericCells(t *testing.T) {
	// Sizes, dates and form numbers carry digits but are not single
	// numbers, so they must not claim a slot.
	content := `<html><body>
<table>
  <tr><td>1</td><td>Form 4</td><td>wk-form4_1749157931.xml</td><td>14 KB</td></tr>
  <tr><td>2025-05-12</td><td>2,500</td><td>$18.20</td></tr>
</table>
shares purchased</body></html>`

	got := extractFromTables(content)

	if got.Shares != 2500 {
		t.Errorf("Shares = %d, want 2500", got.Shares)
	}
	if !got.PricePerShare.Equal(decimal.RequireFromString("18.20")) {
		t.Errorf("PricePerShare = %s, want 18.20", got.PricePerShare)
	}
	if got.TradeType != TradeBuy {
		t.Errorf("TradeType = %q, want BUY", got.TradeType)
	}
}

func TestClassifyCellValue(t *testing.T) {
	tests := []struct {
		name       string
		cells      []string
		wantShares int64
		wantPrice  string
		wantValue  string
	}{
		{
			name:       "shares then price then total",
			cells:      []string{"12,500", "$42.75", "$534,375"},
			wantShares: 12500,
			wantPrice:  "42.75",
			wantValue:  "534375",
		},
		{
			name:       "first in-range integer wins the share slot",
			cells:      []string{"2,500", "7,000", "$18.20", "$19.99"},
			wantShares: 2500,
			wantPrice:  "18.2",
			wantValue:  "0",
		},
		{
			name:       "sequence and form number cells claim nothing",
			cells:      []string{"1", "4", "2,500", "$18.20"},
			wantShares: 2500,
			wantPrice:  "18.2",
			wantValue:  "0",
		},
		{
			name:       "integer above the share ceiling reads as total value",
			cells:      []string{"60,000,000"},
			wantShares: 0,
			wantPrice:  "0",
			wantValue:  "60000000",
		},
		{
			name:       "percent cells are skipped",
			cells:      []string{"3.5%", "12,500"},
			wantShares: 12500,
			wantPrice:  "0",
			wantValue:  "0",
		},
		{
			name:       "decimal form never reads as shares",
			cells:      []string{"42.75", "12,500"},
			wantShares: 12500,
			wantPrice:  "42.75",
			wantValue:  "0",
		},
		{
			name:       "currency amount between price cap and total floor claims nothing",
			cells:      []string{"$1,500.00"},
			wantShares: 0,
			wantPrice:  "0",
			wantValue:  "0",
		},
		{
			name:       "currency amount above the total floor reads as total value",
			cells:      []string{"$15,000.00"},
			wantShares: 0,
			wantPrice:  "0",
			wantValue:  "15000",
		},
		{
			name:       "empty and prose cells are ignored",
			cells:      []string{"", "Common Stock", "n/a"},
			wantShares: 0,
			wantPrice:  "0",
			wantValue:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p partialResult
			for _, cell := range tt.cells {
				classifyCellValue(&p, cell)
			}

			if p.Shares != tt.wantShares {
				t.Errorf("Shares = %d, want %d", p.Shares, tt.wantShares)
			}
			if !p.PricePerShare.Equal(decimal.RequireFromString(tt.wantPrice)) {
				t.Errorf("PricePerShare = %s, want %s", p.PricePerShare, tt.wantPrice)
			}
			if !p.TotalValue.Equal(decimal.RequireFromString(tt.wantValue)) {
				t.Errorf("TotalValue = %s, want %s", p.TotalValue, tt.wantValue)
			}
		})
	}
}

func TestDirectionFromKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TradeType
	}{
		{"purchase", "open market purchase of common stock", TradeBuy},
		{"sale", "open market sale of common stock", TradeSell},
		{"buy language wins over sell language", "acquisition followed by partial sale", TradeBuy},
		{"grant", "equity grant under the incentive plan", TradeGrant},
		{"award", "annual stock award to the director", TradeAward},
		{"nothing matches defaults to buy", "quarterly table of holdings", TradeBuy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directionFromKeywords(tt.text); got != tt.want {
				t.Errorf("directionFromKeywords(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCellTextCollapsesMarkup(t *testing.T) {
	content := `<table><tr><td> 12,500
	<span>shares</span></td><td><b>$42.75</b></td></tr></table>
sale`

	got := extractFromTables(content)

	// The first cell reads "12,500 shares", which is not purely numeric,
	// so only the bold price cell lands.
	if got.Shares != 0 {
		t.Errorf("Shares = %d, want 0", got.Shares)
	}
	if !got.PricePerShare.Equal(decimal.RequireFromString("42.75")) {
		t.Errorf("PricePerShare = %s, want 42.75", got.PricePerShare)
	}
}
