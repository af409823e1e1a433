package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultStatusIsUsable(t *testing.T) {
	assert.False(t, StatusFailed.IsUsable())
	assert.True(t, StatusCompleted.IsUsable())
	assert.True(t, StatusReviewNeeded.IsUsable())
	assert.True(t, StatusProcessing.IsUsable())
	// forward compatibility: unknown statuses are usable, not discarded
	assert.True(t, ResultStatus("archived").IsUsable())
}

func TestDownloadKindFileName(t *testing.T) {
	assert.Equal(t, "SimplifiedTemplate.xlsx", DownloadSimplified.FileName())
	assert.Equal(t, "extraction_result.json", DownloadResult.FileName())
	assert.True(t, DownloadB2BShipment.Valid())
	assert.False(t, DownloadKind("bogus").Valid())
}

func TestCanonicalCurrency(t *testing.T) {
	c, ok := CanonicalCurrency("usd")
	assert.True(t, ok)
	assert.Equal(t, CurrencyUSD, c)

	c, ok = CanonicalCurrency("AUTO")
	assert.True(t, ok)
	assert.Equal(t, CurrencyAuto, c)

	_, ok = CanonicalCurrency("EUR")
	assert.False(t, ok)
}

func TestExtensionAllowed(t *testing.T) {
	assert.True(t, ExtensionAllowed(".pdf"))
	assert.True(t, ExtensionAllowed("PDF"))
	assert.False(t, ExtensionAllowed(".png"))
	assert.False(t, ExtensionAllowed(""))
}
