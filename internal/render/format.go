package render

import (
	"fmt"

	"github.com/xindus-labs/shipdocs/internal/model"
)

// Tier classifies an aggregate confidence for presentation.
type Tier string

const (
	TierHigh   Tier = "high"   // success styling
	TierMedium Tier = "medium" // warning styling
	TierLow    Tier = "low"    // error styling
)

// TierFor maps an aggregate confidence to its display tier.
// Thresholds: >=0.90 high, >=0.70 medium, below that low.
func TierFor(confidence float64) Tier {
	switch {
	case confidence >= 0.90:
		return TierHigh
	case confidence >= 0.70:
		return TierMedium
	default:
		return TierLow
	}
}

// Money renders a monetary value with exactly two decimal places and a
// currency prefix, e.g. "$12.30". Absent or non-numeric values render as
// the placeholder, never "NaN" or "null".
func Money(cv model.ConfidenceValue, symbol string) string {
	f, ok := cv.Float64()
	if !ok {
		return model.Placeholder
	}
	return fmt.Sprintf("%s%.2f", symbol, f)
}

// Weight renders a weight with exactly one decimal place and a kg suffix,
// e.g. "1.5 kg". Absent or non-numeric values render as the placeholder.
func Weight(cv model.ConfidenceValue) string {
	f, ok := cv.Float64()
	if !ok {
		return model.Placeholder
	}
	return fmt.Sprintf("%.1f kg", f)
}

// Quantity renders a count without decoration, falling back to the raw text
// for non-numeric values and the placeholder when absent.
func Quantity(cv model.ConfidenceValue) string {
	if f, ok := cv.Float64(); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return cv.Display()
}

// Percent renders a tax/IGST percentage with the trailing sign, or the
// placeholder when absent.
func Percent(cv model.ConfidenceValue) string {
	f, ok := cv.Float64()
	if !ok {
		return model.Placeholder
	}
	return fmt.Sprintf("%.1f%%", f)
}

// CurrencySymbol maps a detected or selected currency code to its display
// prefix. Unknown codes keep the code itself as prefix.
func CurrencySymbol(code string) string {
	switch code {
	case "USD", "":
		return "$"
	case "INR":
		return "₹"
	default:
		return code + " "
	}
}
