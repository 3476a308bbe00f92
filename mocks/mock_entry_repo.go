package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
)

type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) FindByEntryNumbers(ctx context.Context, entryNumbers []string) ([]domain.Entry, error) {
	args := m.Called(ctx, entryNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepo) FindByCustomerReleasedBetween(ctx context.Context, customerName string, from, to time.Time) ([]domain.Entry, error) {
	args := m.Called(ctx, customerName, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}
