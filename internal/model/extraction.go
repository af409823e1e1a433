package model

import (
	"github.com/xindus-labs/shipdocs/constants"
)

// LineItem is one row of an invoice. Items have no identity beyond their
// position in InvoiceData.LineItems.
type LineItem struct {
	Description       ConfidenceValue `json:"description"`
	HSCodeOrigin      ConfidenceValue `json:"hs_code_origin"`
	HSCodeDestination ConfidenceValue `json:"hs_code_destination"`
	Quantity          ConfidenceValue `json:"quantity"`
	UnitPriceUSD      ConfidenceValue `json:"unit_price_usd"`
	TotalPriceUSD     ConfidenceValue `json:"total_price_usd"`
	UnitWeightKG      ConfidenceValue `json:"unit_weight_kg"`
	IGSTPercent       ConfidenceValue `json:"igst_percent"`
}

// BoxItem is one item packed inside a Box.
type BoxItem struct {
	Description ConfidenceValue `json:"description"`
	Quantity    ConfidenceValue `json:"quantity"`
}

// Address holds one party's contact details. The same shape is reused for
// exporter, consignee, ship-to, importer-of-record and per-destination
// addresses; instances are independent with no shared ownership.
type Address struct {
	Name    ConfidenceValue `json:"name"`
	Address ConfidenceValue `json:"address"`
	City    ConfidenceValue `json:"city"`
	State   ConfidenceValue `json:"state"`
	ZipCode ConfidenceValue `json:"zip_code"`
	Country ConfidenceValue `json:"country"`
	Phone   ConfidenceValue `json:"phone"`
	Email   ConfidenceValue `json:"email"`
}

// Box is one physical carton on the packing list. DestinationID links the
// box to a Destination by string id; Receiver, when present, overrides the
// destination address for this box.
type Box struct {
	BoxNumber     ConfidenceValue `json:"box_number"`
	LengthCM      ConfidenceValue `json:"length_cm"`
	WidthCM       ConfidenceValue `json:"width_cm"`
	HeightCM      ConfidenceValue `json:"height_cm"`
	GrossWeightKG ConfidenceValue `json:"gross_weight_kg"`
	NetWeightKG   ConfidenceValue `json:"net_weight_kg"`
	Items         []BoxItem       `json:"items"`
	DestinationID ConfidenceValue `json:"destination_id"`
	Receiver      *Address        `json:"receiver,omitempty"`
}

// Destination is one shipment address grouping within a packing list.
type Destination struct {
	ID      string          `json:"id"`
	Name    ConfidenceValue `json:"name"`
	Address Address         `json:"address"`
}

// InvoiceData is the extracted commercial invoice.
type InvoiceData struct {
	InvoiceNumber ConfidenceValue `json:"invoice_number"`
	InvoiceDate   ConfidenceValue `json:"invoice_date"`
	Currency      ConfidenceValue `json:"currency"`
	TotalAmount   ConfidenceValue `json:"total_amount"`
	Exporter      Address         `json:"exporter"`
	Consignee     Address         `json:"consignee"`
	ShipTo        Address         `json:"ship_to"`
	IOR           Address         `json:"ior"`
	LineItems     []LineItem      `json:"line_items"`
}

// PackingListData is the extracted packing list. Zero or one destination is
// the single-shipment case; two or more switch rendering into
// multi-destination mode.
type PackingListData struct {
	TotalBoxes         ConfidenceValue `json:"total_boxes"`
	TotalNetWeightKG   ConfidenceValue `json:"total_net_weight_kg"`
	TotalGrossWeightKG ConfidenceValue `json:"total_gross_weight_kg"`
	Boxes              []Box           `json:"boxes"`
	Destinations       []Destination   `json:"destinations"`
}

// ExtractionResult is the complete structured output for one job. When
// Status is failed, Warnings and Errors together explain the failure; the
// value fields may be empty defaults.
type ExtractionResult struct {
	JobID             string                 `json:"job_id"`
	Status            constants.ResultStatus `json:"status"`
	OverallConfidence float64                `json:"overall_confidence"`
	Invoice           InvoiceData            `json:"invoice"`
	PackingList       PackingListData        `json:"packing_list"`
	Warnings          []string               `json:"warnings"`
	Errors            []string               `json:"errors"`
}

// JobStatus is the transport envelope for extraction responses and job
// lookups. Progress is server-reported and only meaningful on the terminal
// response in this client.
type JobStatus struct {
	JobID                string                 `json:"job_id"`
	Status               constants.ResultStatus `json:"status"`
	Progress             int                    `json:"progress"`
	Message              string                 `json:"message"`
	Result               *ExtractionResult      `json:"result,omitempty"`
	MultiAddressDownload string                 `json:"multi_address_download,omitempty"`
	SimplifiedDownload   string                 `json:"simplified_download,omitempty"`
}
