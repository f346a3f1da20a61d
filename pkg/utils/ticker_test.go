package utils

import "testing"

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name   string
		ticker string
		want   bool
	}{
		{"single letter", "A", true},
		{"five letters", "GOOGL", true},
		{"lowercase normalized", "aapl", true},
		{"surrounding whitespace", "  MSFT  ", true},
		{"dollar prefix stripped", "$TSLA", true},
		{"empty", "", false},
		{"six letters", "ABCDEF", false},
		{"digits", "AAPL1", false},
		{"punctuation", "BRK.B", false},
		{"hyphen", "BRK-B", false},
		{"embedded space", "AA PL", false},
		{"unicode letters", "ÀÉIOU", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateFormat(tt.ticker); got != tt.want {
				t.Errorf("ValidateFormat(%q) = %v, want %v", tt.ticker, got, tt.want)
			}
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aapl", "AAPL"},
		{" msft ", "MSFT"},
		{"$tsla", "TSLA"},
		{"GOOGL", "GOOGL"},
	}
	for _, tt := range tests {
		if got := NormalizeTicker(tt.in); got != tt.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompanyName(t *testing.T) {
	if got := CompanyName("AAPL"); got != "Apple" {
		t.Errorf("CompanyName(AAPL) = %q", got)
	}
	if got := CompanyName("meta"); got != "Facebook" {
		t.Errorf("CompanyName(meta) = %q", got)
	}
	// Unknown tickers fall back to the ticker itself.
	if got := CompanyName("ZZZZ"); got != "ZZZZ" {
		t.Errorf("CompanyName(ZZZZ) = %q", got)
	}
}

func TestIsKnownTicker(t *testing.T) {
	if !IsKnownTicker("tsla") {
		t.Error("TSLA should be known")
	}
	if IsKnownTicker("ZZZZ") {
		t.Error("ZZZZ should not be known")
	}
}
