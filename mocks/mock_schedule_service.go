package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Create(ctx context.Context, s *domain.ReportSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSchedule), args.Error(1)
}

func (m *MockScheduleService) List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportSchedule), args.Int(1), args.Error(2)
}

func (m *MockScheduleService) Update(ctx context.Context, s *domain.ReportSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleService) ListRuns(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error) {
	args := m.Called(ctx, scheduleID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportRun), args.Int(1), args.Error(2)
}
