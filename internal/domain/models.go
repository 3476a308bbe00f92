package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents a customs entry with its eager-loaded invoice and
// broker-invoice aggregates. Slice ordering follows database ordering and
// must be preserved; proration remainder assignment depends on it.
type Entry struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	EntryNumber        string     `db:"entry_number" json:"entry_number"`
	BrokerReference    string     `db:"broker_reference" json:"broker_reference"`
	CustomerName       string     `db:"customer_name" json:"customer_name"`
	ReleaseDate        *time.Time `db:"release_date" json:"release_date"`
	TransportMode      string     `db:"transport_mode" json:"transport_mode"`
	CustomerReferences string     `db:"customer_references" json:"customer_references"`
	PONumbers          string     `db:"po_numbers" json:"po_numbers"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`

	CommercialInvoices []CommercialInvoice `db:"-" json:"commercial_invoices"`
	BrokerInvoices     []BrokerInvoice     `db:"-" json:"broker_invoices"`
}

// CommercialInvoice is a vendor invoice for goods on an entry.
type CommercialInvoice struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	EntryID       uuid.UUID  `db:"entry_id" json:"entry_id"`
	InvoiceNumber string     `db:"invoice_number" json:"invoice_number"`
	FirstLogged   *time.Time `db:"first_logged" json:"first_logged"`

	Lines []CommercialInvoiceLine `db:"-" json:"lines"`
}

// CommercialInvoiceLine is a single line item on a commercial invoice.
// Numeric fields may be null in the database; downstream computation treats
// null as zero.
type CommercialInvoiceLine struct {
	ID              uuid.UUID           `db:"id" json:"id"`
	InvoiceID       uuid.UUID           `db:"invoice_id" json:"invoice_id"`
	LineNumber      int                 `db:"line_number" json:"line_number"`
	PartNumber      string              `db:"part_number" json:"part_number"`
	PONumber        string              `db:"po_number" json:"po_number"`
	CountryOfOrigin string              `db:"country_of_origin" json:"country_of_origin"`
	MID             string              `db:"mid" json:"mid"`
	Quantity        decimal.NullDecimal `db:"quantity" json:"quantity"`
	HMF             decimal.NullDecimal `db:"hmf" json:"hmf"`
	MPF             decimal.NullDecimal `db:"mpf" json:"mpf"`
	CottonFee       decimal.NullDecimal `db:"cotton_fee" json:"cotton_fee"`

	Tariffs []CommercialInvoiceTariff `db:"-" json:"tariffs"`
}

// CommercialInvoiceTariff is one HTS classification applied to a line. A line
// may carry multiple tariffs.
type CommercialInvoiceTariff struct {
	ID           uuid.UUID           `db:"id" json:"id"`
	LineID       uuid.UUID           `db:"line_id" json:"line_id"`
	HTSCode      string              `db:"hts_code" json:"hts_code"`
	EnteredValue decimal.NullDecimal `db:"entered_value" json:"entered_value"`
	DutyAmount   decimal.NullDecimal `db:"duty_amount" json:"duty_amount"`
}

// BrokerInvoice is the broker's bill to the importer for an entry.
type BrokerInvoice struct {
	ID            uuid.UUID `db:"id" json:"id"`
	EntryID       uuid.UUID `db:"entry_id" json:"entry_id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`

	Lines []BrokerInvoiceLine `db:"-" json:"lines"`
}

// BrokerInvoiceLine is one charge on a broker invoice.
type BrokerInvoiceLine struct {
	ID                uuid.UUID           `db:"id" json:"id"`
	BrokerInvoiceID   uuid.UUID           `db:"broker_invoice_id" json:"broker_invoice_id"`
	ChargeType        ChargeType          `db:"charge_type" json:"charge_type"`
	ChargeCode        string              `db:"charge_code" json:"charge_code"`
	ChargeDescription string              `db:"charge_description" json:"charge_description"`
	ChargeAmount      decimal.NullDecimal `db:"charge_amount" json:"charge_amount"`
}

// ReportSchedule is a recurring landed-cost report job for a customer.
type ReportSchedule struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	CustomerName string            `db:"customer_name" json:"customer_name"`
	Frequency    ScheduleFrequency `db:"frequency" json:"frequency"`
	LookbackDays int               `db:"lookback_days" json:"lookback_days"`
	Recipients   string            `db:"recipients" json:"recipients"`
	IsActive     bool              `db:"is_active" json:"is_active"`
	NextRunAt    time.Time         `db:"next_run_at" json:"next_run_at"`
	LastRunAt    *time.Time        `db:"last_run_at" json:"last_run_at"`
	CreatedBy    string            `db:"created_by" json:"created_by"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// RecipientList splits the stored comma-separated recipients field.
func (s *ReportSchedule) RecipientList() []string {
	var out []string
	for _, r := range strings.Split(s.Recipients, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// ReportRun records one execution of a schedule.
type ReportRun struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	ScheduleID uuid.UUID  `db:"schedule_id" json:"schedule_id"`
	Status     RunStatus  `db:"status" json:"status"`
	EntryCount int        `db:"entry_count" json:"entry_count"`
	ObjectKey  string     `db:"object_key" json:"object_key"`
	Error      string     `db:"error" json:"error"`
	StartedAt  time.Time  `db:"started_at" json:"started_at"`
	FinishedAt *time.Time `db:"finished_at" json:"finished_at"`
}

// ReportDelivery describes where a rendered report landed and how to fetch it.
type ReportDelivery struct {
	ObjectKey   string    `json:"object_key"`
	DownloadURL string    `json:"download_url"`
	Recipients  []string  `json:"recipients"`
	DeliveredAt time.Time `json:"delivered_at"`
}
