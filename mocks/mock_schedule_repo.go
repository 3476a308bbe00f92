package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
)

type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Create(ctx context.Context, s *domain.ReportSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReportSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSchedule), args.Error(1)
}

func (m *MockScheduleRepo) List(ctx context.Context, offset, limit int) ([]domain.ReportSchedule, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportSchedule), args.Int(1), args.Error(2)
}

func (m *MockScheduleRepo) Update(ctx context.Context, s *domain.ReportSchedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.ReportSchedule, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportSchedule), args.Error(1)
}
