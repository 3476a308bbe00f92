package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeTotals carries one decimal value per landed-cost charge category.
// The same shape is reused for absolute totals, per-unit figures, and
// percentage-of-landed-cost figures.
type ChargeTotals struct {
	EnteredValue         decimal.Decimal `json:"entered_value"`
	Duty                 decimal.Decimal `json:"duty"`
	Fee                  decimal.Decimal `json:"fee"`
	InternationalFreight decimal.Decimal `json:"international_freight"`
	InlandFreight        decimal.Decimal `json:"inland_freight"`
	Brokerage            decimal.Decimal `json:"brokerage"`
	Other                decimal.Decimal `json:"other"`
	LandedCost           decimal.Decimal `json:"landed_cost"`
}

// Add returns the field-wise sum of t and o.
func (t ChargeTotals) Add(o ChargeTotals) ChargeTotals {
	return ChargeTotals{
		EnteredValue:         t.EnteredValue.Add(o.EnteredValue),
		Duty:                 t.Duty.Add(o.Duty),
		Fee:                  t.Fee.Add(o.Fee),
		InternationalFreight: t.InternationalFreight.Add(o.InternationalFreight),
		InlandFreight:        t.InlandFreight.Add(o.InlandFreight),
		Brokerage:            t.Brokerage.Add(o.Brokerage),
		Other:                t.Other.Add(o.Other),
		LandedCost:           t.LandedCost.Add(o.LandedCost),
	}
}

// ZeroChargeTotals returns a ChargeTotals with every category at 0.
// decimal.Decimal's zero value already equals zero; this exists so callers
// can be explicit about intent.
func ZeroChargeTotals() ChargeTotals {
	return ChargeTotals{}
}

// LineResult is the fully itemized landed-cost breakdown for one commercial
// invoice line.
type LineResult struct {
	PartNumber      string          `json:"part_number"`
	PONumber        string          `json:"po_number"`
	CountryOfOrigin string          `json:"country_of_origin"`
	MID             string          `json:"mid"`
	Quantity        decimal.Decimal `json:"quantity"`
	HTSCodes        []string        `json:"hts_codes"`

	EnteredValue         decimal.Decimal `json:"entered_value"`
	Duty                 decimal.Decimal `json:"duty"`
	HMF                  decimal.Decimal `json:"hmf"`
	MPF                  decimal.Decimal `json:"mpf"`
	CottonFee            decimal.Decimal `json:"cotton_fee"`
	Fee                  decimal.Decimal `json:"fee"`
	Brokerage            decimal.Decimal `json:"brokerage"`
	InlandFreight        decimal.Decimal `json:"inland_freight"`
	Other                decimal.Decimal `json:"other"`
	InternationalFreight decimal.Decimal `json:"international_freight"`
	LandedCost           decimal.Decimal `json:"landed_cost"`

	PerUnit ChargeTotals `json:"per_unit"`
	Percent ChargeTotals `json:"percent"`
}

// InvoiceResult groups line results under their commercial invoice.
type InvoiceResult struct {
	InvoiceNumber string       `json:"invoice_number"`
	FirstLogged   *time.Time   `json:"first_logged"`
	Lines         []LineResult `json:"lines"`
}

// EntryResult is the per-entry rollup plus its invoice breakdown.
type EntryResult struct {
	EntryNumber        string     `json:"entry_number"`
	BrokerReference    string     `json:"broker_reference"`
	CustomerName       string     `json:"customer_name"`
	ReleaseDate        *time.Time `json:"release_date"`
	TransportMode      string     `json:"transport_mode"`
	CustomerReferences string     `json:"customer_references"`
	PONumbers          string     `json:"po_numbers"`

	NumberOfInvoiceLines int          `json:"number_of_invoice_lines"`
	Totals               ChargeTotals `json:"totals"`
	PerUnit              ChargeTotals `json:"per_unit"`
	Percent              ChargeTotals `json:"percent"`

	// HasInvoiceFreight is true when any international-freight charge was
	// tied to a specific invoice. PerUnit.InternationalFreight is suppressed
	// (zero) in that case since a single entry-wide rate would be misleading.
	HasInvoiceFreight bool `json:"has_invoice_freight"`

	Invoices []InvoiceResult `json:"invoices"`
}

// LandedCostReport is the batch root returned by the generator.
type LandedCostReport struct {
	CustomerName string        `json:"customer_name"`
	Totals       ChargeTotals  `json:"totals"`
	Entries      []EntryResult `json:"entries"`
}
