// Package landedcost computes fully itemized landed-cost breakdowns for
// customs entries. Entry-level broker charges (brokerage, other fees, inland
// freight) and international freight are prorated down to commercial invoice
// line granularity by quantity, with the rounding remainder absorbed by the
// last line so every charge pool reconciles to the cent.
package landedcost

import (
	"strings"

	"github.com/shopspring/decimal"

	"entrydesk/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Generate produces the landed-cost report tree for a batch of entries. The
// entries must be fully eager-loaded; missing numeric fields are treated as
// zero and an empty batch yields an empty report. The returned tree is built
// fresh on every call and carries no reference back to the inputs.
func Generate(entries []domain.Entry) *domain.LandedCostReport {
	report := &domain.LandedCostReport{
		Entries: make([]domain.EntryResult, 0, len(entries)),
	}
	if len(entries) > 0 {
		report.CustomerName = entries[0].CustomerName
	}

	for i := range entries {
		er := generateEntry(&entries[i])
		report.Totals = report.Totals.Add(er.Totals)
		report.Entries = append(report.Entries, er)
	}
	return report
}

// flatRef addresses one line within the entry's invoice iteration order.
type flatRef struct {
	inv  int
	line int
}

func generateEntry(e *domain.Entry) domain.EntryResult {
	result := domain.EntryResult{
		EntryNumber:        e.EntryNumber,
		BrokerReference:    e.BrokerReference,
		CustomerName:       e.CustomerName,
		ReleaseDate:        e.ReleaseDate,
		TransportMode:      e.TransportMode,
		CustomerReferences: e.CustomerReferences,
		PONumbers:          e.PONumbers,
		Invoices:           make([]domain.InvoiceResult, 0, len(e.CommercialInvoices)),
	}

	// Flatten lines in invoice iteration order. Remainder assignment keys
	// off this ordering.
	var flat []flatRef
	var quantities []decimal.Decimal
	totalUnits := decimal.Zero
	for i := range e.CommercialInvoices {
		for j := range e.CommercialInvoices[i].Lines {
			q := orZero(e.CommercialInvoices[i].Lines[j].Quantity)
			flat = append(flat, flatRef{inv: i, line: j})
			quantities = append(quantities, q)
			totalUnits = totalUnits.Add(q)
		}
	}
	result.NumberOfInvoiceLines = len(flat)

	brokeragePool, otherPool, inlandPool := chargePools(e)
	invoiceFreight, entryFreightPool := freightPools(e)

	brokerageShares := prorate(brokeragePool, quantities)
	otherShares := prorate(otherPool, quantities)
	inlandShares := prorate(inlandPool, quantities)
	freightShares := prorateFreight(e, flat, quantities, invoiceFreight, entryFreightPool)

	// Build line results invoice by invoice, walking flat in step.
	k := 0
	for i := range e.CommercialInvoices {
		inv := &e.CommercialInvoices[i]
		ir := domain.InvoiceResult{
			InvoiceNumber: inv.InvoiceNumber,
			FirstLogged:   inv.FirstLogged,
			Lines:         make([]domain.LineResult, 0, len(inv.Lines)),
		}
		for j := range inv.Lines {
			lr := buildLine(&inv.Lines[j], brokerageShares[k], inlandShares[k], otherShares[k], freightShares[k])
			result.Totals = result.Totals.Add(lineTotals(&lr))
			ir.Lines = append(ir.Lines, lr)
			k++
		}
		result.Invoices = append(result.Invoices, ir)
	}

	result.HasInvoiceFreight = len(invoiceFreight) > 0
	result.PerUnit = perUnitOf(result.Totals, totalUnits)
	if result.HasInvoiceFreight {
		// Rates differ per invoice; a single entry-wide figure would mislead.
		result.PerUnit.InternationalFreight = decimal.Zero
	}
	result.Percent = percentOf(result.Totals)
	return result
}

// chargePools sums broker invoice charges into the three entry-wide pools:
// brokerage (R), other (O and C), and inland freight (T).
func chargePools(e *domain.Entry) (brokerage, other, inland decimal.Decimal) {
	for i := range e.BrokerInvoices {
		for j := range e.BrokerInvoices[i].Lines {
			bl := &e.BrokerInvoices[i].Lines[j]
			amt := orZero(bl.ChargeAmount)
			switch bl.ChargeType {
			case domain.ChargeTypeBrokerage:
				brokerage = brokerage.Add(amt)
			case domain.ChargeTypeOther, domain.ChargeTypeContainer:
				other = other.Add(amt)
			case domain.ChargeTypeInlandFreight:
				inland = inland.Add(amt)
			}
		}
	}
	return brokerage, other, inland
}

// freightPools splits international freight into invoice-specific pools and
// an entry-wide residual. A charge is tied to an invoice when its code is
// 0600 and its free-text description contains that invoice number verbatim
// (case-sensitive, as billed). F-type charges not claimed that way fall into
// the residual pool.
func freightPools(e *domain.Entry) (map[string]decimal.Decimal, decimal.Decimal) {
	var invoiceNumbers []string
	for i := range e.CommercialInvoices {
		if n := e.CommercialInvoices[i].InvoiceNumber; n != "" {
			invoiceNumbers = append(invoiceNumbers, n)
		}
	}

	byInvoice := make(map[string]decimal.Decimal)
	residual := decimal.Zero
	for i := range e.BrokerInvoices {
		for j := range e.BrokerInvoices[i].Lines {
			bl := &e.BrokerInvoices[i].Lines[j]
			amt := orZero(bl.ChargeAmount)

			claimed := false
			if bl.ChargeCode == domain.ChargeCodeIntlFreight {
				for _, n := range invoiceNumbers {
					if strings.Contains(bl.ChargeDescription, n) {
						byInvoice[n] = byInvoice[n].Add(amt)
						claimed = true
						break
					}
				}
			}
			if !claimed && bl.ChargeType == domain.ChargeTypeIntlFreight {
				residual = residual.Add(amt)
			}
		}
	}
	return byInvoice, residual
}

// prorateFreight assigns an international-freight share to every line.
// Invoices with their own freight pool prorate it among their lines only;
// the entry-wide residual is spread over the remaining lines. If every
// invoice claimed its own freight, the residual falls back to all lines.
func prorateFreight(e *domain.Entry, flat []flatRef, quantities []decimal.Decimal, byInvoice map[string]decimal.Decimal, residual decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(flat))

	// Per-invoice proration for invoices that claimed specific freight.
	for i := range e.CommercialInvoices {
		inv := &e.CommercialInvoices[i]
		pool, ok := byInvoice[inv.InvoiceNumber]
		if !ok {
			continue
		}
		var idxs []int
		var qs []decimal.Decimal
		for k, fr := range flat {
			if fr.inv == i {
				idxs = append(idxs, k)
				qs = append(qs, quantities[k])
			}
		}
		for n, share := range prorate(pool, qs) {
			shares[idxs[n]] = share
		}
	}

	// Entry-wide residual over lines of invoices without specific freight.
	var idxs []int
	var qs []decimal.Decimal
	for k, fr := range flat {
		if _, ok := byInvoice[e.CommercialInvoices[fr.inv].InvoiceNumber]; ok {
			continue
		}
		idxs = append(idxs, k)
		qs = append(qs, quantities[k])
	}
	if len(idxs) == 0 && !residual.IsZero() {
		for k := range flat {
			idxs = append(idxs, k)
			qs = append(qs, quantities[k])
		}
	}
	for n, share := range prorate(residual, qs) {
		shares[idxs[n]] = shares[idxs[n]].Add(share)
	}
	return shares
}

// buildLine computes one line's charge breakdown from its tariffs and fee
// fields plus its prorated charge shares.
func buildLine(l *domain.CommercialInvoiceLine, brokerage, inland, other, intlFreight decimal.Decimal) domain.LineResult {
	qty := orZero(l.Quantity)
	hmf := orZero(l.HMF)
	mpf := orZero(l.MPF)
	cotton := orZero(l.CottonFee)

	entered := decimal.Zero
	duty := decimal.Zero
	var hts []string
	seen := make(map[string]bool)
	for i := range l.Tariffs {
		t := &l.Tariffs[i]
		entered = entered.Add(orZero(t.EnteredValue))
		duty = duty.Add(orZero(t.DutyAmount))
		if t.HTSCode != "" && !seen[t.HTSCode] {
			seen[t.HTSCode] = true
			hts = append(hts, t.HTSCode)
		}
	}

	fee := hmf.Add(mpf).Add(cotton)
	landed := entered.Add(duty).Add(fee).Add(intlFreight).Add(inland).Add(brokerage).Add(other)

	lr := domain.LineResult{
		PartNumber:           l.PartNumber,
		PONumber:             l.PONumber,
		CountryOfOrigin:      l.CountryOfOrigin,
		MID:                  l.MID,
		Quantity:             qty,
		HTSCodes:             hts,
		EnteredValue:         entered,
		Duty:                 duty,
		HMF:                  hmf,
		MPF:                  mpf,
		CottonFee:            cotton,
		Fee:                  fee,
		Brokerage:            brokerage,
		InlandFreight:        inland,
		Other:                other,
		InternationalFreight: intlFreight,
		LandedCost:           landed,
	}
	lr.PerUnit = perUnitOf(lineTotals(&lr), qty)
	lr.Percent = percentOf(lineTotals(&lr))
	return lr
}

func lineTotals(lr *domain.LineResult) domain.ChargeTotals {
	return domain.ChargeTotals{
		EnteredValue:         lr.EnteredValue,
		Duty:                 lr.Duty,
		Fee:                  lr.Fee,
		InternationalFreight: lr.InternationalFreight,
		InlandFreight:        lr.InlandFreight,
		Brokerage:            lr.Brokerage,
		Other:                lr.Other,
		LandedCost:           lr.LandedCost,
	}
}

// perUnitOf divides every category by units, rounded to cents.
func perUnitOf(t domain.ChargeTotals, units decimal.Decimal) domain.ChargeTotals {
	per := func(v decimal.Decimal) decimal.Decimal {
		return safeDiv(v, units).Round(2)
	}
	return domain.ChargeTotals{
		EnteredValue:         per(t.EnteredValue),
		Duty:                 per(t.Duty),
		Fee:                  per(t.Fee),
		InternationalFreight: per(t.InternationalFreight),
		InlandFreight:        per(t.InlandFreight),
		Brokerage:            per(t.Brokerage),
		Other:                per(t.Other),
		LandedCost:           per(t.LandedCost),
	}
}

// percentOf expresses every category as a 0-100 share of landed cost.
func percentOf(t domain.ChargeTotals) domain.ChargeTotals {
	pct := func(v decimal.Decimal) decimal.Decimal {
		return safeDiv(v.Mul(hundred), t.LandedCost).Round(2)
	}
	return domain.ChargeTotals{
		EnteredValue:         pct(t.EnteredValue),
		Duty:                 pct(t.Duty),
		Fee:                  pct(t.Fee),
		InternationalFreight: pct(t.InternationalFreight),
		InlandFreight:        pct(t.InlandFreight),
		Brokerage:            pct(t.Brokerage),
		Other:                pct(t.Other),
		LandedCost:           pct(t.LandedCost),
	}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
