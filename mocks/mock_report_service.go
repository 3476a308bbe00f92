package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateByEntryNumbers(ctx context.Context, entryNumbers []string) (*domain.LandedCostReport, error) {
	args := m.Called(ctx, entryNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandedCostReport), args.Error(1)
}

func (m *MockReportService) GenerateForCustomer(ctx context.Context, customerName string, from, to time.Time) (*domain.LandedCostReport, error) {
	args := m.Called(ctx, customerName, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandedCostReport), args.Error(1)
}

func (m *MockReportService) RenderXLSX(report *domain.LandedCostReport) ([]byte, error) {
	args := m.Called(report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) RenderAndDeliver(ctx context.Context, report *domain.LandedCostReport, recipients []string, reportName string) (*domain.ReportDelivery, error) {
	args := m.Called(ctx, report, recipients, reportName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportDelivery), args.Error(1)
}

func (m *MockReportService) FetchArchive(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) DeleteArchive(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
