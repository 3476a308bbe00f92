package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"entrydesk/internal/domain"
	"entrydesk/internal/port"
)

type scheduleRepo struct {
	db *sqlx.DB
}

// NewScheduleRepo creates a new PostgreSQL-backed ReportScheduleRepository.
func NewScheduleRepo(db *sqlx.DB) port.ReportScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, s *domain.ReportSchedule) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `INSERT INTO report_schedules
		(id, name, customer_name, frequency, lookback_days, recipients, is_active, next_run_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.CustomerName, s.Frequency, s.LookbackDays, s.Recipients,
		s.IsActive, s.NextRunAt, s.CreatedBy, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSchedule
		}
		return fmt.Errorf("scheduleRepo.Create: %w", err)
	}
	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error) {
	var s domain.ReportSchedule
	err := r.db.GetContext(ctx, &s, "SELECT * FROM report_schedules WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scheduleRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *scheduleRepo) List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM report_schedules"); err != nil {
		return nil, 0, fmt.Errorf("scheduleRepo.List count: %w", err)
	}

	var schedules []domain.ReportSchedule
	err := r.db.SelectContext(ctx, &schedules,
		"SELECT * FROM report_schedules ORDER BY customer_name, name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scheduleRepo.List: %w", err)
	}
	return schedules, total, nil
}

func (r *scheduleRepo) Update(ctx context.Context, s *domain.ReportSchedule) error {
	s.UpdatedAt = time.Now().UTC()
	query := `UPDATE report_schedules
		SET name = $1, customer_name = $2, frequency = $3, lookback_days = $4,
			recipients = $5, is_active = $6, next_run_at = $7, last_run_at = $8, updated_at = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.CustomerName, s.Frequency, s.LookbackDays,
		s.Recipients, s.IsActive, s.NextRunAt, s.LastRunAt, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("scheduleRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("scheduleRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM report_schedules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("scheduleRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("scheduleRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimDue advances next_run_at in the same statement that selects due
// schedules, so a schedule is handed to exactly one worker per occurrence.
func (r *scheduleRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.ReportSchedule, error) {
	query := `UPDATE report_schedules SET
			next_run_at = CASE frequency
				WHEN 'daily' THEN next_run_at + INTERVAL '1 day'
				WHEN 'weekly' THEN next_run_at + INTERVAL '7 days'
				ELSE next_run_at + INTERVAL '1 month'
			END,
			last_run_at = $1,
			updated_at = $1
		WHERE id IN (
			SELECT id FROM report_schedules
			WHERE is_active AND next_run_at <= $1
			ORDER BY next_run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var schedules []domain.ReportSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, now.UTC(), limit); err != nil {
		return nil, fmt.Errorf("scheduleRepo.ClaimDue: %w", err)
	}
	return schedules, nil
}
