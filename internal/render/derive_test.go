package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xindus-labs/shipdocs/internal/model"
)

func addrNamed(name string) model.Address {
	return model.Address{Name: model.CV(name, 0.9)}
}

func TestResolveReceiverPrefersShipTo(t *testing.T) {
	inv := model.InvoiceData{
		ShipTo:    addrNamed("Acme Warehouse"),
		Consignee: addrNamed("Acme HQ"),
	}
	got := ResolveReceiver(inv)
	assert.Equal(t, "Acme Warehouse", got.Name.Text())
}

func TestResolveReceiverFallsBackToConsignee(t *testing.T) {
	inv := model.InvoiceData{
		ShipTo:    model.Address{}, // all key fields empty
		Consignee: addrNamed("Acme HQ"),
	}
	got := ResolveReceiver(inv)
	assert.Equal(t, "Acme HQ", got.Name.Text())
}

func TestResolveReceiverAnyKeyFieldKeepsShipTo(t *testing.T) {
	keyFields := []model.Address{
		{Name: model.CV("x", 0.5)},
		{Address: model.CV("1 Dock Rd", 0.5)},
		{City: model.CV("Newark", 0.5)},
		{Country: model.CV("US", 0.5)},
	}
	for _, shipTo := range keyFields {
		inv := model.InvoiceData{ShipTo: shipTo, Consignee: addrNamed("Acme HQ")}
		got := ResolveReceiver(inv)
		assert.NotEqual(t, "Acme HQ", got.Name.Text())
	}

	// state/zip/phone/email alone do not qualify
	inv := model.InvoiceData{
		ShipTo:    model.Address{State: model.CV("NJ", 0.5), Phone: model.CV("555", 0.5)},
		Consignee: addrNamed("Acme HQ"),
	}
	assert.Equal(t, "Acme HQ", ResolveReceiver(inv).Name.Text())
}

func TestIsMultiDestinationBoundary(t *testing.T) {
	pl := model.PackingListData{}
	assert.False(t, IsMultiDestination(pl))

	pl.Destinations = []model.Destination{{ID: "d1"}}
	assert.False(t, IsMultiDestination(pl))

	pl.Destinations = append(pl.Destinations, model.Destination{ID: "d2"})
	assert.True(t, IsMultiDestination(pl))
}

func TestDestinationFor(t *testing.T) {
	pl := model.PackingListData{
		Destinations: []model.Destination{
			{ID: "d1", Name: model.CV("East", 0.9)},
			{ID: "d2", Name: model.CV("West", 0.9)},
		},
	}

	box := model.Box{DestinationID: model.CV("d2", 0.8)}
	dest := DestinationFor(pl, box)
	require.NotNil(t, dest)
	assert.Equal(t, "West", dest.Name.Text())

	assert.Nil(t, DestinationFor(pl, model.Box{DestinationID: model.CV("d9", 0.8)}))
	assert.Nil(t, DestinationFor(pl, model.Box{}))
}

func TestGroupBoxes(t *testing.T) {
	pl := model.PackingListData{
		Destinations: []model.Destination{{ID: "d1"}, {ID: "d2"}},
		Boxes: []model.Box{
			{BoxNumber: model.CV(1, 0.9), DestinationID: model.CV("d2", 0.9)},
			{BoxNumber: model.CV(2, 0.9), DestinationID: model.CV("d1", 0.9)},
			{BoxNumber: model.CV(3, 0.9), DestinationID: model.CV("d1", 0.9)},
			{BoxNumber: model.CV(4, 0.9), DestinationID: model.CV("missing", 0.9)},
		},
	}

	groups := GroupBoxes(pl)
	require.Len(t, groups, 3)

	assert.Equal(t, "d1", groups[0].Destination.ID)
	assert.Len(t, groups[0].Boxes, 2)
	assert.Equal(t, "d2", groups[1].Destination.ID)
	assert.Len(t, groups[1].Boxes, 1)

	// unresolved bucket trails with nil destination
	assert.Nil(t, groups[2].Destination)
	require.Len(t, groups[2].Boxes, 1)
	assert.Equal(t, "4", groups[2].Boxes[0].BoxNumber.Text())
}

func TestGroupBoxesAllResolvedOmitsUnresolvedBucket(t *testing.T) {
	pl := model.PackingListData{
		Destinations: []model.Destination{{ID: "d1"}},
		Boxes:        []model.Box{{DestinationID: model.CV("d1", 0.9)}},
	}
	groups := GroupBoxes(pl)
	require.Len(t, groups, 1)
	assert.NotNil(t, groups[0].Destination)
}

func TestLineItemConfidenceIsUnweightedMean(t *testing.T) {
	item := model.LineItem{
		Description:       model.CV("widget", 0.9),
		HSCodeOrigin:      model.CV("7418", 0.6),
		HSCodeDestination: model.CV("7418", 0.8), // representative HS field = 0.8
		Quantity:          model.CV(10, 1.0),
		UnitPriceUSD:      model.CV(2.5, 0.7),
		TotalPriceUSD:     model.CV(25.0, 0.7),
		UnitWeightKG:      model.CV(0.2, 0.5),
		IGSTPercent:       model.CV(18, 0.4),
	}
	want := (0.9 + 0.8 + 1.0 + 0.7 + 0.7 + 0.5 + 0.4) / 7.0
	assert.InDelta(t, want, LineItemConfidence(item), 1e-9)
}

func TestBoxConfidenceIsUnweightedMean(t *testing.T) {
	box := model.Box{
		BoxNumber:     model.CV(1, 1.0),
		LengthCM:      model.CV(30, 0.8),
		WidthCM:       model.CV(20, 0.6),
		HeightCM:      model.CV(10, 0.4),
		GrossWeightKG: model.CV(5.5, 0.7),
	}
	want := (1.0 + 0.8 + 0.6 + 0.4 + 0.7) / 5.0
	got := BoxConfidence(box)
	assert.InDelta(t, want, got, 1e-9)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}
