// Package utils provides common utility functions for Market Pulse.
package utils

import (
	"regexp"
	"strings"
)

// tickerPattern matches 1-5 uppercase ASCII letters, nothing else.
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// companyNames maps well-known tickers to the company name used for news
// queries and synthetic headlines.
var companyNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"AMZN":  "Amazon",
	"META":  "Facebook",
	"TSLA":  "Tesla",
}

// NormalizeTicker uppercases and trims a user-supplied ticker.
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	return strings.TrimPrefix(ticker, "$")
}

// ValidateFormat reports whether the normalized ticker is syntactically
// valid: 1-5 uppercase letters, no digits, punctuation, or empty string.
func ValidateFormat(raw string) bool {
	return tickerPattern.MatchString(NormalizeTicker(raw))
}

// IsKnownTicker reports whether the ticker is in the static known set,
// letting the existence check skip the upstream probe.
func IsKnownTicker(ticker string) bool {
	_, ok := companyNames[NormalizeTicker(ticker)]
	return ok
}

// CompanyName returns the company name for a known ticker, or the ticker
// itself when unknown.
func CompanyName(ticker string) string {
	t := NormalizeTicker(ticker)
	if name, ok := companyNames[t]; ok {
		return name
	}
	return t
}
