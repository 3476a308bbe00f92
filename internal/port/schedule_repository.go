package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"entrydesk/internal/domain"
)

// ReportScheduleRepository manages recurring report job definitions.
type ReportScheduleRepository interface {
	Create(ctx context.Context, s *domain.ReportSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error)
	Update(ctx context.Context, s *domain.ReportSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimDue atomically claims up to limit active schedules whose
	// next_run_at has passed, advancing next_run_at so concurrent workers
	// never claim the same schedule twice.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.ReportSchedule, error)
}

// ReportRunRepository records schedule execution history.
type ReportRunRepository interface {
	Create(ctx context.Context, run *domain.ReportRun) error
	Finish(ctx context.Context, run *domain.ReportRun) error
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error)
}
