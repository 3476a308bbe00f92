// Package xlsxreport renders landed-cost report trees as xlsx workbooks.
package xlsxreport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"entrydesk/internal/domain"
)

const sheetName = "Landed Cost"

// columns defines the worksheet header row (20 columns).
var columns = []string{
	"Broker Reference",
	"Entry Number",
	"Release Date",
	"Mode of Transport",
	"Customer References",
	"HTS Codes",
	"Country of Origin",
	"PO Number",
	"Part Number",
	"Quantity",
	"Entered Value",
	"Brokerage",
	"Other",
	"International Freight",
	"HMF",
	"MPF",
	"Cotton Fee",
	"Duty",
	"Landed Cost",
	"Per Unit Landed Cost",
}

// Writer builds one workbook per report.
type Writer struct {
	file *excelize.File
	row  int
}

// NewWriter creates a Writer with an empty Landed Cost worksheet.
func NewWriter() (*Writer, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsxreport: rename sheet: %w", err)
	}
	return &Writer{file: f, row: 0}, nil
}

// WriteReport writes the header, one row per invoice line, a totals row per
// entry, and a grand totals row.
func (w *Writer) WriteReport(report *domain.LandedCostReport) error {
	if err := w.writeRow(toCells(columns)); err != nil {
		return err
	}

	for i := range report.Entries {
		entry := &report.Entries[i]
		for _, inv := range entry.Invoices {
			for _, line := range inv.Lines {
				if err := w.writeRow(lineRow(entry, &line)); err != nil {
					return err
				}
			}
		}
		if err := w.writeRow(totalsRow(fmt.Sprintf("Entry %s Totals", entry.EntryNumber), entry.Totals, entry.PerUnit.LandedCost)); err != nil {
			return err
		}
	}

	return w.writeRow(totalsRow("Grand Totals", report.Totals, decimal.Zero))
}

// SaveTo serializes the workbook to out.
func (w *Writer) SaveTo(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("xlsxreport: write workbook: %w", err)
	}
	return nil
}

// Close releases the underlying workbook resources.
func (w *Writer) Close() error {
	return w.file.Close()
}

func (w *Writer) writeRow(cells []interface{}) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return fmt.Errorf("xlsxreport: row %d: %w", w.row, err)
	}
	if err := w.file.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("xlsxreport: row %d: %w", w.row, err)
	}
	return nil
}

func lineRow(entry *domain.EntryResult, line *domain.LineResult) []interface{} {
	return []interface{}{
		entry.BrokerReference,
		entry.EntryNumber,
		formatDate(entry.ReleaseDate),
		entry.TransportMode,
		entry.CustomerReferences,
		strings.Join(line.HTSCodes, ", "),
		line.CountryOfOrigin,
		line.PONumber,
		line.PartNumber,
		cellDec(line.Quantity),
		cellDec(line.EnteredValue),
		cellDec(line.Brokerage),
		cellDec(line.Other),
		cellDec(line.InternationalFreight),
		cellDec(line.HMF),
		cellDec(line.MPF),
		cellDec(line.CottonFee),
		cellDec(line.Duty),
		cellDec(line.LandedCost),
		cellDec(line.PerUnit.LandedCost),
	}
}

func totalsRow(label string, t domain.ChargeTotals, perUnitLanded decimal.Decimal) []interface{} {
	return []interface{}{
		label, "", "", "", "", "", "", "", "", "",
		cellDec(t.EnteredValue),
		cellDec(t.Brokerage),
		cellDec(t.Other),
		cellDec(t.InternationalFreight),
		"", "", "",
		cellDec(t.Duty),
		cellDec(t.LandedCost),
		cellDec(perUnitLanded),
	}
}

// cellDec renders decimals as float cells so spreadsheet consumers can sum
// columns; values were already rounded upstream.
func cellDec(d decimal.Decimal) interface{} {
	f, _ := d.Float64()
	return f
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func toCells(ss []string) []interface{} {
	cells := make([]interface{}, len(ss))
	for i, s := range ss {
		cells[i] = s
	}
	return cells
}
