package constants

import "strings"

// Output currency options accepted by the extraction service.
const (
	CurrencyAuto = "auto"
	CurrencyUSD  = "USD"
	CurrencyINR  = "INR"
)

var outputCurrencies = []string{CurrencyAuto, CurrencyUSD, CurrencyINR}

// OutputCurrencies returns the accepted output currency selectors.
func OutputCurrencies() []string {
	out := make([]string, len(outputCurrencies))
	copy(out, outputCurrencies)
	return out
}

// CanonicalCurrency normalizes user input to one of the accepted selectors.
func CanonicalCurrency(input string) (string, bool) {
	normalized := strings.TrimSpace(input)
	if normalized == "" || strings.EqualFold(normalized, CurrencyAuto) {
		return CurrencyAuto, normalized != ""
	}
	for _, c := range outputCurrencies[1:] {
		if strings.EqualFold(normalized, c) {
			return c, true
		}
	}
	return CurrencyAuto, false
}
