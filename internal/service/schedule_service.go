package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"entrydesk/internal/domain"
	"entrydesk/internal/port"
)

// ScheduleService manages recurring landed-cost report jobs.
type ScheduleService interface {
	Create(ctx context.Context, s *domain.ReportSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error)
	Update(ctx context.Context, s *domain.ReportSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRuns(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error)
}

type scheduleService struct {
	scheduleRepo port.ReportScheduleRepository
	runRepo      port.ReportRunRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scheduleRepo port.ReportScheduleRepository, runRepo port.ReportRunRepository) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, runRepo: runRepo}
}

func (s *scheduleService) Create(ctx context.Context, sched *domain.ReportSchedule) error {
	if err := validateSchedule(sched); err != nil {
		return err
	}
	if sched.NextRunAt.IsZero() {
		sched.NextRunAt = NextRunAfter(time.Now().UTC(), sched.Frequency)
	}
	if sched.LookbackDays <= 0 {
		sched.LookbackDays = defaultLookbackDays(sched.Frequency)
	}
	return s.scheduleRepo.Create(ctx, sched)
}

func (s *scheduleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

func (s *scheduleService) List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error) {
	return s.scheduleRepo.List(ctx, offset, limit)
}

func (s *scheduleService) Update(ctx context.Context, sched *domain.ReportSchedule) error {
	if err := validateSchedule(sched); err != nil {
		return err
	}
	return s.scheduleRepo.Update(ctx, sched)
}

func (s *scheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scheduleRepo.Delete(ctx, id)
}

func (s *scheduleService) ListRuns(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error) {
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		return nil, 0, err
	}
	return s.runRepo.ListBySchedule(ctx, scheduleID, offset, limit)
}

func validateSchedule(s *domain.ReportSchedule) error {
	if !domain.ValidFrequencies[s.Frequency] {
		return domain.ErrInvalidFrequency
	}
	if len(s.RecipientList()) == 0 {
		return domain.ErrNoRecipients
	}
	if s.CustomerName == "" {
		return domain.ErrNoSelection
	}
	return nil
}

// NextRunAfter returns the first occurrence of the schedule's frequency
// after now, anchored at midnight UTC.
func NextRunAfter(now time.Time, freq domain.ScheduleFrequency) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch freq {
	case domain.FrequencyDaily:
		return midnight.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return midnight.AddDate(0, 0, 7)
	default:
		return midnight.AddDate(0, 1, 0)
	}
}

func defaultLookbackDays(freq domain.ScheduleFrequency) int {
	switch freq {
	case domain.FrequencyDaily:
		return 1
	case domain.FrequencyWeekly:
		return 7
	default:
		return 31
	}
}
