package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xindus-labs/shipdocs/constants"
	"github.com/xindus-labs/shipdocs/internal/model"
)

func sampleResult() *model.ExtractionResult {
	return &model.ExtractionResult{
		JobID:  "job-9",
		Status: constants.StatusCompleted,
		Invoice: model.InvoiceData{
			InvoiceNumber: model.CV("WFS-042025-26", 0.95),
			InvoiceDate:   model.CV("2025-04-02", 0.9),
			Currency:      model.CV("USD", 0.9),
			TotalAmount:   model.CV(125.5, 0.9),
			ShipTo: model.Address{
				Name:    model.CV("Acme Warehouse", 0.9),
				City:    model.CV("Newark", 0.9),
				Country: model.CV("US", 0.9),
			},
			LineItems: []model.LineItem{
				{
					Description:  model.CV("Copper bottle", 0.92),
					HSCodeOrigin: model.CV("74181030", 0.8),
					Quantity:     model.CV(10, 0.9),
					UnitPriceUSD: model.CV(12.55, 0.9),
				},
			},
		},
		PackingList: model.PackingListData{
			Destinations: []model.Destination{
				{ID: "d1", Name: model.CV("East", 0.9), Address: model.Address{Name: model.CV("East Hub", 0.9), City: model.CV("Newark", 0.9)}},
				{ID: "d2", Name: model.CV("West", 0.9), Address: model.Address{Name: model.CV("West Hub", 0.9), City: model.CV("Reno", 0.9)}},
			},
			Boxes: []model.Box{
				{
					BoxNumber:     model.CV(1, 0.9),
					GrossWeightKG: model.CV(4.2, 0.9),
					DestinationID: model.CV("d2", 0.9),
					Items:         []model.BoxItem{{Description: model.CV("Copper bottle", 0.9), Quantity: model.CV(10, 0.9)}},
				},
			},
		},
	}
}

func TestSimplifiedSheet(t *testing.T) {
	w := NewWriter(nil)
	data, err := w.SimplifiedSheet(sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Items", "B1")
	require.NoError(t, err)
	assert.Equal(t, "WFS-042025-26", v)

	v, err = f.GetCellValue("Items", "B6")
	require.NoError(t, err)
	assert.Equal(t, "Item Description*", v)

	v, err = f.GetCellValue("Items", "B7")
	require.NoError(t, err)
	assert.Equal(t, "Copper bottle", v)

	v, err = f.GetCellValue("Items", "F7")
	require.NoError(t, err)
	assert.Equal(t, "$12.55", v)
}

func TestMultiAddressSheetUsesDestinationAddresses(t *testing.T) {
	w := NewWriter(nil)
	data, err := w.MultiAddressSheet(sampleResult())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Boxes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Box Number", v)

	// box 1 resolves to destination d2 (West Hub)
	v, err = f.GetCellValue("Boxes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "West Hub", v)

	v, err = f.GetCellValue("Boxes", "N2")
	require.NoError(t, err)
	assert.Equal(t, "Copper bottle", v)
}

func TestMultiAddressSheetSingleShipmentFallsBackToReceiver(t *testing.T) {
	result := sampleResult()
	result.PackingList.Destinations = result.PackingList.Destinations[:1] // single destination
	result.PackingList.Boxes[0].DestinationID = model.CV(nil, 0.0)

	w := NewWriter(nil)
	data, err := w.MultiAddressSheet(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// ship-to wins receiver resolution
	v, err := f.GetCellValue("Boxes", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Acme Warehouse", v)
}
