package port

import (
	"context"
	"time"

	"entrydesk/internal/domain"
)

// EntryRepository loads customs entry aggregates. Implementations must
// return entries with commercial invoices, invoice lines, tariffs, broker
// invoices and broker invoice lines fully populated, in stable database
// ordering; the landed-cost proration depends on that ordering.
type EntryRepository interface {
	FindByEntryNumbers(ctx context.Context, entryNumbers []string) ([]domain.Entry, error)
	FindByCustomerReleasedBetween(ctx context.Context, customerName string, from, to time.Time) ([]domain.Entry, error)
}
