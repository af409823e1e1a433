// Package render derives presentation values from extraction results.
// Everything here is pure: results are never mutated, only read.
package render

import (
	"github.com/xindus-labs/shipdocs/internal/model"
)

// ResolveReceiver chooses the address shown as the receiver in the
// single-destination case: ship-to when any of its key fields (name,
// address, city, country) carries a value, consignee otherwise. Evaluated
// once per rendered result, not memoized.
func ResolveReceiver(inv model.InvoiceData) model.Address {
	shipTo := inv.ShipTo
	if !shipTo.Name.IsEmpty() || !shipTo.Address.IsEmpty() || !shipTo.City.IsEmpty() || !shipTo.Country.IsEmpty() {
		return shipTo
	}
	return inv.Consignee
}

// IsMultiDestination reports whether box/receiver rendering switches into
// per-destination grouping. Exactly zero or one destination stays in
// single-address mode.
func IsMultiDestination(pl model.PackingListData) bool {
	return len(pl.Destinations) > 1
}

// DestinationFor resolves a box's destination_id against the packing list's
// destinations. Returns nil when the id is empty or matches nothing; such
// boxes render as unresolved.
func DestinationFor(pl model.PackingListData, box model.Box) *model.Destination {
	id := box.DestinationID.Text()
	if id == "" {
		return nil
	}
	for i := range pl.Destinations {
		if pl.Destinations[i].ID == id {
			return &pl.Destinations[i]
		}
	}
	return nil
}

// BoxGroup is one destination bucket produced by GroupBoxes. Destination is
// nil for the trailing bucket of boxes whose ids did not resolve.
type BoxGroup struct {
	Destination *model.Destination
	Boxes       []model.Box
}

// GroupBoxes buckets boxes by resolved destination, preserving destination
// order and box order within each bucket. Unresolved boxes (missing or
// unknown destination ids) land in a final group with a nil Destination;
// that group is omitted when every box resolved.
func GroupBoxes(pl model.PackingListData) []BoxGroup {
	groups := make([]BoxGroup, 0, len(pl.Destinations)+1)
	index := make(map[string]int, len(pl.Destinations))
	for i := range pl.Destinations {
		index[pl.Destinations[i].ID] = len(groups)
		groups = append(groups, BoxGroup{Destination: &pl.Destinations[i]})
	}

	var unresolved []model.Box
	for _, box := range pl.Boxes {
		if gi, ok := index[box.DestinationID.Text()]; ok && box.DestinationID.Text() != "" {
			groups[gi].Boxes = append(groups[gi].Boxes, box)
			continue
		}
		unresolved = append(unresolved, box)
	}
	if len(unresolved) > 0 {
		groups = append(groups, BoxGroup{Boxes: unresolved})
	}
	return groups
}

// LineItemConfidence is the unweighted mean over an item's designated
// fields. The two HS codes collapse to one representative field (the higher
// confidence of the pair).
func LineItemConfidence(item model.LineItem) float64 {
	hs := item.HSCodeOrigin.Confidence
	if item.HSCodeDestination.Confidence > hs {
		hs = item.HSCodeDestination.Confidence
	}
	return mean(
		item.Description.Confidence,
		hs,
		item.Quantity.Confidence,
		item.UnitPriceUSD.Confidence,
		item.TotalPriceUSD.Confidence,
		item.UnitWeightKG.Confidence,
		item.IGSTPercent.Confidence,
	)
}

// BoxConfidence is the unweighted mean over a box's designated fields: box
// number, the three dimensions, and gross weight.
func BoxConfidence(box model.Box) float64 {
	return mean(
		box.BoxNumber.Confidence,
		box.LengthCM.Confidence,
		box.WidthCM.Confidence,
		box.HeightCM.Confidence,
		box.GrossWeightKG.Confidence,
	)
}

func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
