package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceValueIsEmpty(t *testing.T) {
	assert.True(t, CV(nil, 0.9).IsEmpty())
	assert.True(t, CV("", 0.9).IsEmpty())
	assert.True(t, CV("   ", 0.9).IsEmpty())
	assert.False(t, CV("WFS-042025", 0.9).IsEmpty())
	assert.False(t, CV(0.0, 0.9).IsEmpty())
}

func TestConfidenceValueText(t *testing.T) {
	assert.Equal(t, "", CV(nil, 0.5).Text())
	assert.Equal(t, "hello", CV("  hello ", 0.5).Text())
	assert.Equal(t, "12.5", CV(12.5, 0.5).Text())
	assert.Equal(t, "7", CV(7.0, 0.5).Text())
}

func TestConfidenceValueDisplayPlaceholder(t *testing.T) {
	assert.Equal(t, Placeholder, CV(nil, 0.0).Display())
	assert.Equal(t, "USD", CV("USD", 0.8).Display())
}

func TestConfidenceValueFloat64(t *testing.T) {
	f, ok := CV(12.5, 0.9).Float64()
	require.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = CV("42.25", 0.9).Float64()
	require.True(t, ok)
	assert.Equal(t, 42.25, f)

	_, ok = CV("not a number", 0.9).Float64()
	assert.False(t, ok)

	_, ok = CV(nil, 0.9).Float64()
	assert.False(t, ok)
}

func TestConfidenceValueJSONRoundTrip(t *testing.T) {
	raw := []byte(`{"value":"INV-001","confidence":0.92}`)
	var cv ConfidenceValue
	require.NoError(t, json.Unmarshal(raw, &cv))
	assert.Equal(t, "INV-001", cv.Text())
	assert.Equal(t, 0.92, cv.Confidence)

	// confidence present even when the value is null
	raw = []byte(`{"value":null,"confidence":0.3}`)
	require.NoError(t, json.Unmarshal(raw, &cv))
	assert.True(t, cv.IsEmpty())
	assert.Equal(t, 0.3, cv.Confidence)
}
