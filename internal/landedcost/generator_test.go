package landedcost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entrydesk/internal/domain"
)

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func tariff(hts, entered, duty string) domain.CommercialInvoiceTariff {
	return domain.CommercialInvoiceTariff{
		HTSCode:      hts,
		EnteredValue: nullDec(entered),
		DutyAmount:   nullDec(duty),
	}
}

func line(part, qty string, tariffs ...domain.CommercialInvoiceTariff) domain.CommercialInvoiceLine {
	return domain.CommercialInvoiceLine{
		PartNumber: part,
		Quantity:   nullDec(qty),
		Tariffs:    tariffs,
	}
}

func brokerCharge(ct domain.ChargeType, code, desc, amount string) domain.BrokerInvoiceLine {
	return domain.BrokerInvoiceLine{
		ChargeType:        ct,
		ChargeCode:        code,
		ChargeDescription: desc,
		ChargeAmount:      nullDec(amount),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func TestGenerate_EmptyBatch(t *testing.T) {
	report := Generate(nil)

	require.NotNil(t, report)
	assert.Empty(t, report.Entries)
	assert.True(t, report.Totals.LandedCost.IsZero())
}

func TestGenerate_EntryWithNoLines(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber:  "31612345678",
		CustomerName: "ACME IMPORTS",
		BrokerInvoices: []domain.BrokerInvoice{{
			Lines: []domain.BrokerInvoiceLine{
				brokerCharge(domain.ChargeTypeBrokerage, "0007", "ENTRY FEE", "125.00"),
			},
		}},
	}}

	report := Generate(entries)

	require.Len(t, report.Entries, 1)
	er := report.Entries[0]
	assert.Equal(t, 0, er.NumberOfInvoiceLines)
	assert.Empty(t, er.Invoices)
	assertDec(t, "0", er.Totals.LandedCost)
	assertDec(t, "0", er.Totals.Brokerage)
	assertDec(t, "0", report.Totals.LandedCost)
}

func TestGenerate_LandedCostIdentityAndReconciliation(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber:  "31698765432",
		CustomerName: "ACME IMPORTS",
		CommercialInvoices: []domain.CommercialInvoice{
			{
				InvoiceNumber: "INV-A",
				Lines: []domain.CommercialInvoiceLine{
					func() domain.CommercialInvoiceLine {
						l := line("PART-1", "2", tariff("6109.10.0012", "100.00", "10.00"))
						l.HMF = nullDec("1.00")
						l.MPF = nullDec("2.00")
						return l
					}(),
					line("PART-2", "3", tariff("6110.20.2079", "200.00", "20.00")),
				},
			},
			{
				InvoiceNumber: "INV-B",
				Lines: []domain.CommercialInvoiceLine{
					line("PART-3", "5", tariff("8481.80.9005", "300.00", "30.00")),
				},
			},
		},
		BrokerInvoices: []domain.BrokerInvoice{{
			Lines: []domain.BrokerInvoiceLine{
				brokerCharge(domain.ChargeTypeBrokerage, "0007", "CUSTOMS ENTRY", "100.00"),
				brokerCharge(domain.ChargeTypeOther, "0191", "DISBURSEMENT", "20.00"),
				brokerCharge(domain.ChargeTypeContainer, "0545", "CONTAINER EXAM", "5.00"),
				brokerCharge(domain.ChargeTypeInlandFreight, "0720", "DRAYAGE", "50.00"),
				brokerCharge(domain.ChargeTypeIntlFreight, "", "OCEAN FREIGHT", "33.33"),
			},
		}},
	}}

	report := Generate(entries)
	require.Len(t, report.Entries, 1)
	er := report.Entries[0]
	assert.Equal(t, 3, er.NumberOfInvoiceLines)

	// Every line satisfies the landed-cost identity exactly.
	for _, inv := range er.Invoices {
		for _, lr := range inv.Lines {
			expect := lr.EnteredValue.Add(lr.Duty).Add(lr.Fee).
				Add(lr.InternationalFreight).Add(lr.InlandFreight).
				Add(lr.Brokerage).Add(lr.Other)
			assert.True(t, expect.Equal(lr.LandedCost),
				"line %s: identity %s != %s", lr.PartNumber, expect, lr.LandedCost)
		}
	}

	// Line sums reproduce entry totals with no rounding leakage.
	sum := domain.ChargeTotals{}
	for _, inv := range er.Invoices {
		for _, lr := range inv.Lines {
			sum = sum.Add(lineTotals(&lr))
		}
	}
	assert.True(t, sum.Brokerage.Equal(er.Totals.Brokerage))
	assert.True(t, sum.Other.Equal(er.Totals.Other))
	assert.True(t, sum.InlandFreight.Equal(er.Totals.InlandFreight))
	assert.True(t, sum.InternationalFreight.Equal(er.Totals.InternationalFreight))
	assert.True(t, sum.LandedCost.Equal(er.Totals.LandedCost))

	// Pools reconcile to the cent.
	assertDec(t, "100.00", er.Totals.Brokerage)
	assertDec(t, "25.00", er.Totals.Other)
	assertDec(t, "50.00", er.Totals.InlandFreight)
	assertDec(t, "33.33", er.Totals.InternationalFreight)
	assertDec(t, "600.00", er.Totals.EnteredValue)
	assertDec(t, "60.00", er.Totals.Duty)
	assertDec(t, "3.00", er.Totals.Fee)
	assertDec(t, "871.33", er.Totals.LandedCost)

	// Entry totals roll up into the batch totals.
	assert.True(t, report.Totals.LandedCost.Equal(er.Totals.LandedCost))
	assert.Equal(t, "ACME IMPORTS", report.CustomerName)

	// Proration detail: 10 total units, brokerage at 10.00/unit.
	lines := append(er.Invoices[0].Lines, er.Invoices[1].Lines...)
	assertDec(t, "20.00", lines[0].Brokerage)
	assertDec(t, "30.00", lines[1].Brokerage)
	assertDec(t, "50.00", lines[2].Brokerage)
	assertDec(t, "10.00", er.PerUnit.Brokerage)

	// International freight 33.33 over 10 units: 6.67, 10.00, remainder 16.66.
	assertDec(t, "6.67", lines[0].InternationalFreight)
	assertDec(t, "10.00", lines[1].InternationalFreight)
	assertDec(t, "16.66", lines[2].InternationalFreight)

	// No invoice-specific freight: the entry-wide per-unit figure is kept.
	assert.False(t, er.HasInvoiceFreight)
	assertDec(t, "3.33", er.PerUnit.InternationalFreight)
}

func TestGenerate_InvoiceSpecificFreightOverride(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber:  "31611111111",
		CustomerName: "ACME IMPORTS",
		CommercialInvoices: []domain.CommercialInvoice{
			{
				InvoiceNumber: "INV001",
				Lines: []domain.CommercialInvoiceLine{
					line("A-1", "1"),
					line("A-2", "1"),
				},
			},
			{
				InvoiceNumber: "INV002",
				Lines: []domain.CommercialInvoiceLine{
					line("B-1", "4"),
				},
			},
		},
		BrokerInvoices: []domain.BrokerInvoice{{
			Lines: []domain.BrokerInvoiceLine{
				brokerCharge(domain.ChargeTypeIntlFreight, domain.ChargeCodeIntlFreight, "OCEAN FREIGHT INV001", "50.00"),
				brokerCharge(domain.ChargeTypeIntlFreight, "", "AIR FREIGHT BALANCE", "30.00"),
			},
		}},
	}}

	report := Generate(entries)
	require.Len(t, report.Entries, 1)
	er := report.Entries[0]

	// INV001 lines prorate only their own 50.00 pool by their own quantities.
	inv1 := er.Invoices[0]
	assertDec(t, "25.00", inv1.Lines[0].InternationalFreight)
	assertDec(t, "25.00", inv1.Lines[1].InternationalFreight)

	// INV002 receives the unmatched entry-wide residual.
	inv2 := er.Invoices[1]
	assertDec(t, "30.00", inv2.Lines[0].InternationalFreight)

	// Both pools reconcile at entry level.
	assertDec(t, "80.00", er.Totals.InternationalFreight)

	// Entry-level per-unit international freight is suppressed.
	assert.True(t, er.HasInvoiceFreight)
	assert.True(t, er.PerUnit.InternationalFreight.IsZero())
}

func TestGenerate_CaseSensitiveInvoiceMatch(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber: "31622222222",
		CommercialInvoices: []domain.CommercialInvoice{{
			InvoiceNumber: "INV001",
			Lines:         []domain.CommercialInvoiceLine{line("A-1", "1")},
		}},
		BrokerInvoices: []domain.BrokerInvoice{{
			Lines: []domain.BrokerInvoiceLine{
				// Lowercased reference does not match; falls to the residual pool.
				brokerCharge(domain.ChargeTypeIntlFreight, domain.ChargeCodeIntlFreight, "ocean freight inv001", "40.00"),
			},
		}},
	}}

	report := Generate(entries)
	er := report.Entries[0]

	assert.False(t, er.HasInvoiceFreight)
	assertDec(t, "40.00", er.Invoices[0].Lines[0].InternationalFreight)
}

func TestGenerate_SafeDivision(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber: "31633333333",
		CommercialInvoices: []domain.CommercialInvoice{{
			InvoiceNumber: "INV-Z",
			Lines: []domain.CommercialInvoiceLine{
				// Zero quantity with real value: per-unit figures must be zero.
				{PartNumber: "NO-QTY", Tariffs: []domain.CommercialInvoiceTariff{tariff("9903.88.15", "100.00", "25.00")}},
				// Nothing at all: landed cost zero, percentages must be zero.
				{PartNumber: "EMPTY"},
			},
		}},
	}}

	report := Generate(entries)
	er := report.Entries[0]
	noQty := er.Invoices[0].Lines[0]
	empty := er.Invoices[0].Lines[1]

	assertDec(t, "125.00", noQty.LandedCost)
	assert.True(t, noQty.PerUnit.LandedCost.IsZero())
	assert.True(t, noQty.PerUnit.EnteredValue.IsZero())

	assert.True(t, empty.LandedCost.IsZero())
	assert.True(t, empty.Percent.EnteredValue.IsZero())
	assert.True(t, empty.Percent.Duty.IsZero())
	assert.True(t, empty.Percent.LandedCost.IsZero())
}

func TestGenerate_Percentages(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber: "31644444444",
		CommercialInvoices: []domain.CommercialInvoice{{
			InvoiceNumber: "INV-P",
			Lines: []domain.CommercialInvoiceLine{
				line("P-1", "2", tariff("6109.10.0012", "80.00", "20.00")),
			},
		}},
	}}

	report := Generate(entries)
	lr := report.Entries[0].Invoices[0].Lines[0]

	assertDec(t, "100.00", lr.LandedCost)
	assertDec(t, "80.00", lr.Percent.EnteredValue)
	assertDec(t, "20.00", lr.Percent.Duty)
	assertDec(t, "100.00", lr.Percent.LandedCost)

	assertDec(t, "40.00", lr.PerUnit.EnteredValue)
	assertDec(t, "50.00", lr.PerUnit.LandedCost)
}

func TestGenerate_HTSDeduplication(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber: "31655555555",
		CommercialInvoices: []domain.CommercialInvoice{{
			InvoiceNumber: "INV-H",
			Lines: []domain.CommercialInvoiceLine{
				line("H-1", "1",
					tariff("6109.10", "10.00", "1.00"),
					tariff("6109.10", "20.00", "2.00"),
					tariff("6110.20", "30.00", "3.00"),
				),
			},
		}},
	}}

	report := Generate(entries)
	lr := report.Entries[0].Invoices[0].Lines[0]

	assert.Equal(t, []string{"6109.10", "6110.20"}, lr.HTSCodes)
	// Values from duplicate HTS tariffs still accumulate.
	assertDec(t, "60.00", lr.EnteredValue)
	assertDec(t, "6.00", lr.Duty)
}

func TestGenerate_BatchTotalsAcrossEntries(t *testing.T) {
	mk := func(entryNo, entered string) domain.Entry {
		return domain.Entry{
			EntryNumber:  entryNo,
			CustomerName: "ACME IMPORTS",
			CommercialInvoices: []domain.CommercialInvoice{{
				InvoiceNumber: "INV-" + entryNo,
				Lines:         []domain.CommercialInvoiceLine{line("P", "1", tariff("6109.10", entered, "0.00"))},
			}},
		}
	}
	report := Generate([]domain.Entry{mk("001", "100.00"), mk("002", "250.50")})

	require.Len(t, report.Entries, 2)
	assertDec(t, "350.50", report.Totals.EnteredValue)
	assertDec(t, "350.50", report.Totals.LandedCost)
}

func TestGenerate_NullNumericFieldsTreatedAsZero(t *testing.T) {
	entries := []domain.Entry{{
		EntryNumber: "31666666666",
		CommercialInvoices: []domain.CommercialInvoice{{
			InvoiceNumber: "INV-N",
			Lines: []domain.CommercialInvoiceLine{
				{
					PartNumber: "NULLS",
					Tariffs: []domain.CommercialInvoiceTariff{
						{HTSCode: "6109.10"}, // null entered value and duty
					},
				},
			},
		}},
		BrokerInvoices: []domain.BrokerInvoice{{
			Lines: []domain.BrokerInvoiceLine{
				{ChargeType: domain.ChargeTypeBrokerage}, // null amount
			},
		}},
	}}

	report := Generate(entries)
	er := report.Entries[0]

	assert.Equal(t, 1, er.NumberOfInvoiceLines)
	assert.True(t, er.Totals.LandedCost.IsZero())
	assert.True(t, er.Totals.Brokerage.IsZero())
}
