package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is rendered wherever a field has no usable value.
const Placeholder = "-"

// ConfidenceValue wraps a single extracted scalar with the extractor's
// self-reported certainty. Value may be a string, a number, or nil when the
// field could not be extracted; Confidence is always present and in [0,1].
type ConfidenceValue struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
}

// CV is a convenience constructor used mainly by tests and fixtures.
func CV(value any, confidence float64) ConfidenceValue {
	return ConfidenceValue{Value: value, Confidence: confidence}
}

// IsEmpty reports whether the value is absent or blank.
func (cv ConfidenceValue) IsEmpty() bool {
	switch v := cv.Value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// Text returns the trimmed string form of the value, or "" when absent.
// Numeric values keep their shortest decimal representation.
func (cv ConfidenceValue) Text() string {
	switch v := cv.Value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// Display returns Text, substituting the placeholder when the value is
// absent. Callers that need numeric formatting use the render package.
func (cv ConfidenceValue) Display() string {
	if cv.IsEmpty() {
		return Placeholder
	}
	return cv.Text()
}

// Float64 coerces the value to a number. JSON decoding yields float64 for
// numbers; servers occasionally send numerics as strings, so those are
// parsed too. The second return is false when no numeric reading exists.
func (cv ConfidenceValue) Float64() (float64, bool) {
	switch v := cv.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
