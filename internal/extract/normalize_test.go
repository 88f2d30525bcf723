package extract

import "testing"

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1 234,56", "1234.56", true},
		{"1234.56", "1234.56", true},
		{"200,00", "200.00", true},
		{"18", "18", true},
		{" 42 ", "42", true},
		{"1 500,00", "1500.00", true},
		// OCR often leaves the label's trailing separator in the capture.
		{"120,00.", "120.00", true},
		{"", "", false},
		{"   ", "", false},
		{",,", "", false},
		{"-5", "", false},
		{"12,34,56", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeAmount(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("normalizeAmount(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("normalizeAmount(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
