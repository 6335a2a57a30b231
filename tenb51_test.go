package insider

import (
	"testing"
)

func TestAnalyzeTradingPlan(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantDetected bool
		wantDate     *string
	}{
		{
			name:         "no plan mention",
			text:         "Represents shares withheld to satisfy tax obligations.",
			wantDetected: false,
			wantDate:     nil,
		},
		{
			name:         "plan with full date",
			text:         "The sales reported on this form were effected pursuant to a Rule 10b5-1 trading plan adopted by the reporting person on March 13, 2025.",
			wantDetected: true,
			wantDate:     stringPtr("2025-03-13"),
		},
		{
			name:         "abbreviated month",
			text:         "Shares sold under a 10b5-1 plan entered into on Sep 5, 2024.",
			wantDetected: true,
			wantDate:     stringPtr("2024-09-05"),
		},
		{
			name:         "month and year only",
			text:         "Sold pursuant to a Rule 10b5-1 plan established in September 2024.",
			wantDetected: true,
			wantDate:     stringPtr("2024-09-01"),
		},
		{
			name:         "en dash variant without date",
			text:         "Transaction effected pursuant to Rule 10b5–1.",
			wantDetected: true,
			wantDate:     nil,
		},
		{
			name:         "in accordance with",
			text:         "Shares were sold pursuant to a 10b5-1 trading plan adopted by the reporting person in accordance with Rule 10b5-1 of the Securities Exchange Act of 1934, as amended.",
			wantDetected: true,
			wantDate:     nil,
		},
		{
			name:         "termination notice not detected",
			text:         "The reporting person terminated the Rule 10b5-1 trading plan previously disclosed.",
			wantDetected: false,
			wantDate:     nil,
		},
		{
			name:         "plan with unparseable date phrasing",
			text:         "Sold pursuant to a 10b5-1 plan adopted on the first anniversary of employment.",
			wantDetected: true,
			wantDate:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeTradingPlan(tt.text)

			if got.Detected != tt.wantDetected {
				t.Errorf("Detected = %v, want %v", got.Detected, tt.wantDetected)
			}

			if tt.wantDate == nil {
				if got.AdoptionDate != nil {
					t.Errorf("AdoptionDate = %v, want nil", *got.AdoptionDate)
				}
			} else {
				if got.AdoptionDate == nil {
					t.Errorf("AdoptionDate = nil, want %v", *tt.wantDate)
				} else if *got.AdoptionDate != *tt.wantDate {
					t.Errorf("AdoptionDate = %v, want %v", *got.AdoptionDate, *tt.wantDate)
				}
			}
		})
	}
}

func TestParsePlanDate(t *testing.T) {
	tests := []struct {
		input    string
		expected *string
	}{
		{"March 13, 2025", stringPtr("2025-03-13")},
		{"September 18, 2025", stringPtr("2025-09-18")},
		{"Jan 5, 2024", stringPtr("2024-01-05")},
		{"Sept 5, 2024", stringPtr("2024-09-05")},
		{"December 1, 2023", stringPtr("2023-12-01")},
		{"March, 2025", stringPtr("2025-03-01")},
		{"September 2024", stringPtr("2024-09-01")},
		{"3/13/2025", nil},
		{"Invalid date", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parsePlanDate(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("parsePlanDate(%q) = %v, want nil", tt.input, *result)
				}
			} else {
				if result == nil {
					t.Errorf("parsePlanDate(%q) = nil, want %v", tt.input, *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("parsePlanDate(%q) = %v, want %v", tt.input, *result, *tt.expected)
				}
			}
		})
	}
}

func TestTradingPlansMap(t *testing.T) {
	doc := &OwnershipDocument{
		Footnotes: []Footnote{
			{ID: "F1", Text: "Weighted average price; full detail available on request."},
			{ID: "F2", Text: "Sale effected pursuant to a Rule 10b5-1 trading plan adopted on December 12, 2024."},
			{ID: "F3", Text: "Shares sold under the reporting person's 10b5-1 plan."},
		},
		Remarks: "All trades executed pursuant to the issuer's Rule 10b5-1 guidelines.",
	}

	plans := doc.TradingPlans()

	if len(plans) != 3 {
		t.Fatalf("TradingPlans() returned %d entries, want 3: %v", len(plans), plans)
	}
	if _, ok := plans["F1"]; ok {
		t.Error("F1 has no plan language but was mapped")
	}
	if got := plans["F2"]; got != "2024-12-12" {
		t.Errorf("plans[F2] = %q, want 2024-12-12", got)
	}
	if got, ok := plans["F3"]; !ok || got != "" {
		t.Errorf("plans[F3] = %q, %v; want empty string entry", got, ok)
	}
	if got, ok := plans[remarksKey]; !ok || got != "" {
		t.Errorf("plans[remarks] = %q, %v; want empty string entry", got, ok)
	}
}

func TestTransactionPlanPrecedence(t *testing.T) {
	doc := &OwnershipDocument{
		Footnotes: []Footnote{
			{ID: "F1", Text: "Shares sold under the reporting person's 10b5-1 plan."},
		},
		Remarks: "Executed pursuant to a Rule 10b5-1 plan adopted on March 1, 2025.",
	}

	// A referenced plan footnote outranks remarks even when only the
	// remarks carry an adoption date.
	fromFootnote := doc.TransactionPlan(Transaction{FootnoteIDs: []string{"F1"}})
	if !fromFootnote.Detected {
		t.Error("footnote-referenced plan not detected")
	}
	if fromFootnote.AdoptionDate != nil {
		t.Errorf("AdoptionDate = %v, want nil from the dateless footnote", *fromFootnote.AdoptionDate)
	}

	fromRemarks := doc.TransactionPlan(Transaction{})
	if !fromRemarks.Detected {
		t.Error("remarks-level plan not detected")
	}
	if fromRemarks.AdoptionDate == nil || *fromRemarks.AdoptionDate != "2025-03-01" {
		t.Errorf("AdoptionDate = %v, want 2025-03-01", fromRemarks.AdoptionDate)
	}

	checkbox := &OwnershipDocument{Aff10b5One: true}
	fromCheckbox := checkbox.TransactionPlan(Transaction{})
	if !fromCheckbox.Detected || fromCheckbox.AdoptionDate != nil {
		t.Errorf("checkbox plan = %+v, want detected with no date", fromCheckbox)
	}

	bare := &OwnershipDocument{}
	if plan := bare.TransactionPlan(Transaction{}); plan.Detected {
		t.Error("plan detected on a document with no plan evidence")
	}
}

func TestIs10b51Plan(t *testing.T) {
	tests := []struct {
		name string
		doc  OwnershipDocument
		want bool
	}{
		{
			name: "checkbox set",
			doc:  OwnershipDocument{Aff10b5One: true},
			want: true,
		},
		{
			name: "footnote language",
			doc: OwnershipDocument{
				Footnotes: []Footnote{{ID: "F1", Text: "Effected pursuant to a Rule 10b5-1 plan."}},
			},
			want: true,
		},
		{
			name: "termination only",
			doc: OwnershipDocument{
				Footnotes: []Footnote{{ID: "F1", Text: "The Rule 10b5-1 plan was terminated on March 13, 2025."}},
			},
			want: false,
		},
		{
			name: "no plan evidence",
			doc:  OwnershipDocument{Remarks: "None."},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Is10b51Plan(); got != tt.want {
				t.Errorf("Is10b51Plan() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Helper function to create string pointers
func stringPtr(s string) *string {
	return &s
}
