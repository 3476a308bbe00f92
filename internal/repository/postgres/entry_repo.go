package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"entrydesk/internal/domain"
	"entrydesk/internal/port"
)

type entryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a PostgreSQL-backed EntryRepository.
func NewEntryRepo(db *sqlx.DB) port.EntryRepository {
	return &entryRepo{db: db}
}

const entryColumns = `id, entry_number, broker_reference, customer_name, release_date,
	transport_mode, customer_references, po_numbers, created_at, updated_at`

func (r *entryRepo) FindByEntryNumbers(ctx context.Context, entryNumbers []string) ([]domain.Entry, error) {
	if len(entryNumbers) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(
		`SELECT %s FROM entries WHERE entry_number IN (?) ORDER BY entry_number`, entryColumns),
		entryNumbers)
	if err != nil {
		return nil, fmt.Errorf("entryRepo.FindByEntryNumbers build: %w", err)
	}
	query = r.db.Rebind(query)

	var entries []domain.Entry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("entryRepo.FindByEntryNumbers: %w", err)
	}

	if err := r.loadAggregates(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) FindByCustomerReleasedBetween(ctx context.Context, customerName string, from, to time.Time) ([]domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entries
		WHERE customer_name = $1 AND release_date >= $2 AND release_date <= $3
		ORDER BY entry_number`, entryColumns)

	var entries []domain.Entry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, customerName, from, to); err != nil {
		return nil, fmt.Errorf("entryRepo.FindByCustomerReleasedBetween: %w", err)
	}

	if err := r.loadAggregates(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// loadAggregates eager-loads the nested invoice and broker-invoice data for
// a page of entries in a fixed number of queries, then stitches the rows
// onto their parents. Child ordering (line_number, then id) is stable so the
// generator's remainder assignment is deterministic.
func (r *entryRepo) loadAggregates(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	entryIDs := make([]uuid.UUID, len(entries))
	entryIdx := make(map[uuid.UUID]int, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].ID
		entryIdx[entries[i].ID] = i
	}

	// Commercial invoices.
	var invoices []domain.CommercialInvoice
	if err := r.selectIn(ctx, &invoices,
		`SELECT id, entry_id, invoice_number, first_logged
		 FROM commercial_invoices WHERE entry_id IN (?) ORDER BY entry_id, invoice_number, id`,
		entryIDs); err != nil {
		return fmt.Errorf("entryRepo load invoices: %w", err)
	}

	invoiceIDs := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		invoiceIDs[i] = invoices[i].ID
	}

	// Invoice lines.
	var lines []domain.CommercialInvoiceLine
	if len(invoiceIDs) > 0 {
		if err := r.selectIn(ctx, &lines,
			`SELECT id, invoice_id, line_number, part_number, po_number, country_of_origin,
				mid, quantity, hmf, mpf, cotton_fee
			 FROM commercial_invoice_lines WHERE invoice_id IN (?) ORDER BY invoice_id, line_number, id`,
			invoiceIDs); err != nil {
			return fmt.Errorf("entryRepo load lines: %w", err)
		}
	}

	lineIDs := make([]uuid.UUID, len(lines))
	for i := range lines {
		lineIDs[i] = lines[i].ID
	}

	// Tariffs.
	var tariffs []domain.CommercialInvoiceTariff
	if len(lineIDs) > 0 {
		if err := r.selectIn(ctx, &tariffs,
			`SELECT id, line_id, hts_code, entered_value, duty_amount
			 FROM commercial_invoice_tariffs WHERE line_id IN (?) ORDER BY line_id, id`,
			lineIDs); err != nil {
			return fmt.Errorf("entryRepo load tariffs: %w", err)
		}
	}

	// Broker invoices.
	var brokerInvoices []domain.BrokerInvoice
	if err := r.selectIn(ctx, &brokerInvoices,
		`SELECT id, entry_id, invoice_number
		 FROM broker_invoices WHERE entry_id IN (?) ORDER BY entry_id, invoice_number, id`,
		entryIDs); err != nil {
		return fmt.Errorf("entryRepo load broker invoices: %w", err)
	}

	brokerInvoiceIDs := make([]uuid.UUID, len(brokerInvoices))
	for i := range brokerInvoices {
		brokerInvoiceIDs[i] = brokerInvoices[i].ID
	}

	// Broker invoice lines.
	var brokerLines []domain.BrokerInvoiceLine
	if len(brokerInvoiceIDs) > 0 {
		if err := r.selectIn(ctx, &brokerLines,
			`SELECT id, broker_invoice_id, charge_type, charge_code, charge_description, charge_amount
			 FROM broker_invoice_lines WHERE broker_invoice_id IN (?) ORDER BY broker_invoice_id, id`,
			brokerInvoiceIDs); err != nil {
			return fmt.Errorf("entryRepo load broker lines: %w", err)
		}
	}

	// Stitch bottom-up so parent slices are complete before attachment.
	tariffsByLine := make(map[uuid.UUID][]domain.CommercialInvoiceTariff)
	for _, t := range tariffs {
		tariffsByLine[t.LineID] = append(tariffsByLine[t.LineID], t)
	}
	linesByInvoice := make(map[uuid.UUID][]domain.CommercialInvoiceLine)
	for _, l := range lines {
		l.Tariffs = tariffsByLine[l.ID]
		linesByInvoice[l.InvoiceID] = append(linesByInvoice[l.InvoiceID], l)
	}
	brokerLinesByInvoice := make(map[uuid.UUID][]domain.BrokerInvoiceLine)
	for _, bl := range brokerLines {
		brokerLinesByInvoice[bl.BrokerInvoiceID] = append(brokerLinesByInvoice[bl.BrokerInvoiceID], bl)
	}

	for _, inv := range invoices {
		inv.Lines = linesByInvoice[inv.ID]
		i := entryIdx[inv.EntryID]
		entries[i].CommercialInvoices = append(entries[i].CommercialInvoices, inv)
	}
	for _, bi := range brokerInvoices {
		bi.Lines = brokerLinesByInvoice[bi.ID]
		i := entryIdx[bi.EntryID]
		entries[i].BrokerInvoices = append(entries[i].BrokerInvoices, bi)
	}
	return nil
}

func (r *entryRepo) selectIn(ctx context.Context, dest interface{}, query string, ids []uuid.UUID) error {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return sqlx.SelectContext(ctx, r.db, dest, r.db.Rebind(q), args...)
}
