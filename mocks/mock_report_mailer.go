package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockReportMailer struct {
	mock.Mock
}

func (m *MockReportMailer) SendReportEmail(ctx context.Context, to []string, customerName, reportName, downloadURL string) error {
	args := m.Called(ctx, to, customerName, reportName, downloadURL)
	return args.Error(0)
}
