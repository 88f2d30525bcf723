package server

import (
	"testing"
	"time"
)

func TestParseInvoiceDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"12/01/2024", time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), true},
		{"3-02-2024", time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC), true},
		{"12.01.2024", time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-12", time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), true},
		{"15 janvier 2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), true},
		{"1 août 2023", time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"pas une date", time.Time{}, false},
		{"99/99/2024", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseInvoiceDate(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("parseInvoiceDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseInvoiceDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
