package utils

import "fmt"

// NA is the sentinel used for metrics fields that the upstream record did
// not populate.
const NA = "N/A"

// FormatMarketCap formats a raw market capitalization into a compact
// display string: 2.45e12 → "2.45T", 22135600 → "22.14M".
func FormatMarketCap(cap float64) string {
	switch {
	case cap <= 0:
		return NA
	case cap >= 1e12:
		return fmt.Sprintf("%.2fT", cap/1e12)
	case cap >= 1e9:
		return fmt.Sprintf("%.2fB", cap/1e9)
	case cap >= 1e6:
		return fmt.Sprintf("%.2fM", cap/1e6)
	default:
		return fmt.Sprintf("%.2f", cap)
	}
}

// FormatVolume formats a share volume into a compact display string at one
// decimal place: 63500000 → "63.5M".
func FormatVolume(volume float64) string {
	switch {
	case volume <= 0:
		return NA
	case volume >= 1e9:
		return fmt.Sprintf("%.1fB", volume/1e9)
	case volume >= 1e6:
		return fmt.Sprintf("%.1fM", volume/1e6)
	case volume >= 1e3:
		return fmt.Sprintf("%.1fK", volume/1e3)
	default:
		return fmt.Sprintf("%.1f", volume)
	}
}

// FormatDividend formats a dividend rate and yield pair. The yield is a
// ratio (0.0052 → "0.52%"); a zero rate means no dividend.
func FormatDividend(rate, yield float64) string {
	if rate <= 0 {
		return NA
	}
	if yield > 0 {
		return fmt.Sprintf("%.2f (%.2f%%)", rate, yield*100)
	}
	return fmt.Sprintf("%.2f", rate)
}

// FormatPrice formats a dollar amount with a currency prefix, or NA when
// the value is absent.
func FormatPrice(price float64) string {
	if price <= 0 {
		return NA
	}
	return fmt.Sprintf("$%.2f", price)
}

// FormatRatio formats a unitless ratio (P/E, beta, EPS) at two decimals.
func FormatRatio(v float64) string {
	if v == 0 {
		return NA
	}
	return fmt.Sprintf("%.2f", v)
}
