// Package export renders a finished extraction result into the XpressB2B
// upload sheets locally, so results stay usable without a second server
// round trip.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xindus-labs/shipdocs/internal/model"
	"github.com/xindus-labs/shipdocs/internal/render"
)

// Writer produces XLSX bytes from extraction results.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

var simplifiedHeaders = []string{
	"Item ID*",
	"Item Description*",
	"HS Code (Origin)*",
	"HS Code (Destination)",
	"Item Qty",
	"Item Unit Price (USD)*",
	"Item Total Price (USD)",
	"Item Unit Weight (Kg)",
	"IGST %",
}

// SimplifiedSheet returns the Items workbook: an invoice header block,
// the resolved receiver, and one row per line item.
func (w *Writer) SimplifiedSheet(result *model.ExtractionResult) ([]byte, error) {
	start := time.Now()
	inv := result.Invoice

	f := excelize.NewFile()
	const sheet = "Items"
	if err := w.ensureSheet(f, sheet); err != nil {
		return nil, err
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	// Invoice header block
	receiver := render.ResolveReceiver(inv)
	symbol := render.CurrencySymbol(inv.Currency.Text())
	write(1, 1, "Invoice Number")
	write(2, 1, inv.InvoiceNumber.Display())
	write(1, 2, "Invoice Date")
	write(2, 2, inv.InvoiceDate.Display())
	write(1, 3, "Total Amount")
	write(2, 3, render.Money(inv.TotalAmount, symbol))
	write(1, 4, "Receiver")
	write(2, 4, receiver.Name.Display())
	write(3, 4, receiver.Address.Display())
	write(4, 4, receiver.City.Display())
	write(5, 4, receiver.Country.Display())

	const headerRow = 6
	for i, h := range simplifiedHeaders {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for i, item := range inv.LineItems {
		write(1, row, i+1)
		write(2, row, item.Description.Display())
		write(3, row, item.HSCodeOrigin.Display())
		write(4, row, item.HSCodeDestination.Display())
		write(5, row, render.Quantity(item.Quantity))
		write(6, row, render.Money(item.UnitPriceUSD, symbol))
		write(7, row, render.Money(item.TotalPriceUSD, symbol))
		write(8, row, render.Weight(item.UnitWeightKG))
		write(9, row, render.Percent(item.IGSTPercent))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "D", 20)
	_ = f.SetColWidth(sheet, "E", "I", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.simplified.ok",
		"job_id", result.JobID,
		"rows", len(inv.LineItems),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

var multiAddressHeaders = []string{
	"Box Number",
	"Receiver Name",
	"Receiver Address",
	"Receiver City",
	"Receiver Zip",
	"Receiver State",
	"Receiver Country",
	"Receiver Phone Number",
	"Receiver Email",
	"Box Length (cms)",
	"Box Width (cms)",
	"Box Height (cms)",
	"Box Weight (kgs)",
	"Item Description",
	"Item Qty",
}

// MultiAddressSheet returns the flat multi-address workbook: one row per
// box item (or one row per empty box), receiver columns resolved from the
// box's destination. Single-shipment results use the invoice receiver for
// every box.
func (w *Writer) MultiAddressSheet(result *model.ExtractionResult) ([]byte, error) {
	start := time.Now()
	pl := result.PackingList
	fallback := render.ResolveReceiver(result.Invoice)
	multi := render.IsMultiDestination(pl)

	f := excelize.NewFile()
	const sheet = "Boxes"
	if err := w.ensureSheet(f, sheet); err != nil {
		return nil, err
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, h := range multiAddressHeaders {
		write(i+1, 1, h)
	}

	row := 2
	rows := 0
	for _, group := range render.GroupBoxes(pl) {
		for _, box := range group.Boxes {
			addr := boxReceiver(box, group.Destination, fallback, multi)
			items := box.Items
			if len(items) == 0 {
				items = []model.BoxItem{{}}
			}
			for _, item := range items {
				write(1, row, box.BoxNumber.Display())
				write(2, row, addr.Name.Display())
				write(3, row, addr.Address.Display())
				write(4, row, addr.City.Display())
				write(5, row, addr.ZipCode.Display())
				write(6, row, addr.State.Display())
				write(7, row, addr.Country.Display())
				write(8, row, addr.Phone.Display())
				write(9, row, addr.Email.Display())
				write(10, row, box.LengthCM.Display())
				write(11, row, box.WidthCM.Display())
				write(12, row, box.HeightCM.Display())
				write(13, row, render.Weight(box.GrossWeightKG))
				write(14, row, item.Description.Display())
				write(15, row, render.Quantity(item.Quantity))
				row++
				rows++
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "I", 24)
	_ = f.SetColWidth(sheet, "J", "O", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.multi_address.ok",
		"job_id", result.JobID,
		"rows", rows,
		"multi_destination", multi,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// boxReceiver picks the address rendered on a box row: the box's own
// embedded receiver first, then its destination's address in
// multi-destination mode, then the invoice-level receiver.
func boxReceiver(box model.Box, dest *model.Destination, fallback model.Address, multi bool) model.Address {
	if box.Receiver != nil {
		return *box.Receiver
	}
	if multi && dest != nil {
		return dest.Address
	}
	return fallback
}

func (w *Writer) ensureSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if sheet != "Sheet1" {
		// excelize seeds new workbooks with Sheet1
		_ = f.DeleteSheet("Sheet1")
	}
	return nil
}
