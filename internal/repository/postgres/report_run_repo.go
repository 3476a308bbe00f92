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

type reportRunRepo struct {
	db *sqlx.DB
}

// NewReportRunRepo creates a new PostgreSQL-backed ReportRunRepository.
func NewReportRunRepo(db *sqlx.DB) port.ReportRunRepository {
	return &reportRunRepo{db: db}
}

func (r *reportRunRepo) Create(ctx context.Context, run *domain.ReportRun) error {
	run.ID = uuid.New()
	run.StartedAt = time.Now().UTC()
	run.Status = domain.RunStatusRunning

	query := `INSERT INTO report_runs (id, schedule_id, status, entry_count, object_key, error, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.ScheduleID, run.Status, run.EntryCount, run.ObjectKey, run.Error, run.StartedAt)
	if err != nil {
		return fmt.Errorf("reportRunRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRunRepo) Finish(ctx context.Context, run *domain.ReportRun) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	query := `UPDATE report_runs
		SET status = $1, entry_count = $2, object_key = $3, error = $4, finished_at = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		run.Status, run.EntryCount, run.ObjectKey, run.Error, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("reportRunRepo.Finish: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reportRunRepo.Finish rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRunRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM report_runs WHERE schedule_id = $1", scheduleID)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRunRepo.ListBySchedule count: %w", err)
	}

	var runs []domain.ReportRun
	err = r.db.SelectContext(ctx, &runs,
		`SELECT * FROM report_runs WHERE schedule_id = $1
		 ORDER BY started_at DESC LIMIT $2 OFFSET $3`, scheduleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRunRepo.ListBySchedule: %w", err)
	}
	return runs, total, nil
}
