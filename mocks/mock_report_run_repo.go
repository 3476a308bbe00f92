package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
)

type MockReportRunRepo struct {
	mock.Mock
}

func (m *MockReportRunRepo) Create(ctx context.Context, run *domain.ReportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockReportRunRepo) Finish(ctx context.Context, run *domain.ReportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockReportRunRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, offset, limit int) ([]domain.ReportRun, int, error) {
	args := m.Called(ctx, scheduleID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportRun), args.Int(1), args.Error(2)
}
