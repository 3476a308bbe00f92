package xlsxreport

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"entrydesk/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleReport() *domain.LandedCostReport {
	released := time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)
	line := domain.LineResult{
		PartNumber:           "PART-9",
		PONumber:             "PO-1001",
		CountryOfOrigin:      "CN",
		Quantity:             dec("10"),
		HTSCodes:             []string{"6109.10.0012", "6110.20.2079"},
		EnteredValue:         dec("500.00"),
		Duty:                 dec("40.00"),
		HMF:                  dec("0.63"),
		MPF:                  dec("2.50"),
		CottonFee:            dec("0.00"),
		Fee:                  dec("3.13"),
		Brokerage:            dec("55.00"),
		Other:                dec("10.00"),
		InlandFreight:        dec("25.00"),
		InternationalFreight: dec("75.00"),
		LandedCost:           dec("708.13"),
	}
	line.PerUnit.LandedCost = dec("70.81")

	entry := domain.EntryResult{
		EntryNumber:          "31612345678",
		BrokerReference:      "BR-4432",
		TransportMode:        "11",
		CustomerReferences:   "REF-1",
		ReleaseDate:          &released,
		NumberOfInvoiceLines: 1,
		Invoices: []domain.InvoiceResult{
			{InvoiceNumber: "INV001", Lines: []domain.LineResult{line}},
		},
	}
	entry.Totals.EnteredValue = dec("500.00")
	entry.Totals.LandedCost = dec("708.13")
	entry.PerUnit.LandedCost = dec("70.81")

	report := &domain.LandedCostReport{
		CustomerName: "ACME IMPORTS",
		Entries:      []domain.EntryResult{entry},
	}
	report.Totals = entry.Totals
	return report
}

func TestWriteReport(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteReport(sampleReport()))

	var buf bytes.Buffer
	require.NoError(t, w.SaveTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	// Header + line row + entry totals + grand totals.
	require.Len(t, rows, 4)
	assert.Len(t, rows[0], 20)
	assert.Equal(t, "Broker Reference", rows[0][0])
	assert.Equal(t, "Per Unit Landed Cost", rows[0][19])

	line := rows[1]
	assert.Equal(t, "BR-4432", line[0])
	assert.Equal(t, "31612345678", line[1])
	assert.Equal(t, "2026-05-14", line[2])
	assert.Equal(t, "6109.10.0012, 6110.20.2079", line[5])
	assert.Equal(t, "PART-9", line[8])
	assert.Equal(t, "708.13", line[18])

	assert.Equal(t, "Entry 31612345678 Totals", rows[2][0])
	assert.Equal(t, "Grand Totals", rows[3][0])
	assert.Equal(t, "708.13", rows[3][18])
}

func TestWriteReport_EmptyBatch(t *testing.T) {
	w, err := NewWriter()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteReport(&domain.LandedCostReport{}))

	var buf bytes.Buffer
	require.NoError(t, w.SaveTo(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	// Header and grand totals only.
	require.Len(t, rows, 2)
	assert.Equal(t, "Grand Totals", rows[1][0])
}
