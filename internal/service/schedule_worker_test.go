package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"entrydesk/internal/domain"
	"entrydesk/internal/service"
	"entrydesk/mocks"
)

func setupWorker() (*mocks.MockScheduleRepo, *mocks.MockReportRunRepo, *mocks.MockReportService, *service.ScheduleWorker) {
	scheduleRepo := new(mocks.MockScheduleRepo)
	runRepo := new(mocks.MockReportRunRepo)
	reportSvc := new(mocks.MockReportService)
	w := service.NewScheduleWorker(scheduleRepo, runRepo, reportSvc, service.ScheduleWorkerConfig{
		Concurrency: 1,
	})
	return scheduleRepo, runRepo, reportSvc, w
}

func TestRunOnce_CompletedRun(t *testing.T) {
	_, runRepo, reportSvc, w := setupWorker()

	sched := &domain.ReportSchedule{
		ID:           uuid.New(),
		Name:         "Weekly Landed Cost",
		CustomerName: "Acme Imports",
		Frequency:    domain.FrequencyWeekly,
		LookbackDays: 7,
		Recipients:   "ops@acme.test",
	}
	report := &domain.LandedCostReport{
		CustomerName: "Acme Imports",
		Entries:      []domain.EntryResult{{EntryNumber: "ENT-1"}, {EntryNumber: "ENT-2"}},
	}

	runRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).Return(nil)
	reportSvc.On("GenerateForCustomer", mock.Anything, "Acme Imports", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(report, nil)
	reportSvc.On("RenderAndDeliver", mock.Anything, report, []string{"ops@acme.test"}, "Weekly Landed Cost").
		Return(&domain.ReportDelivery{ObjectKey: "reports/acme-imports/key.xlsx"}, nil)

	var finished *domain.ReportRun
	runRepo.On("Finish", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).
		Run(func(args mock.Arguments) {
			finished = args.Get(1).(*domain.ReportRun)
		}).Return(nil)

	w.RunOnce(context.Background(), sched)

	assert.NotNil(t, finished)
	assert.Equal(t, domain.RunStatusCompleted, finished.Status)
	assert.Equal(t, 2, finished.EntryCount)
	assert.Equal(t, "reports/acme-imports/key.xlsx", finished.ObjectKey)
	assert.Empty(t, finished.Error)
	runRepo.AssertExpectations(t)
	reportSvc.AssertExpectations(t)
}

func TestRunOnce_GenerateFails(t *testing.T) {
	_, runRepo, reportSvc, w := setupWorker()

	sched := &domain.ReportSchedule{
		ID:           uuid.New(),
		CustomerName: "Acme Imports",
		LookbackDays: 1,
	}

	runRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).Return(nil)
	reportSvc.On("GenerateForCustomer", mock.Anything, "Acme Imports", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError)

	var finished *domain.ReportRun
	runRepo.On("Finish", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).
		Run(func(args mock.Arguments) {
			finished = args.Get(1).(*domain.ReportRun)
		}).Return(nil)

	w.RunOnce(context.Background(), sched)

	assert.NotNil(t, finished)
	assert.Equal(t, domain.RunStatusFailed, finished.Status)
	assert.NotEmpty(t, finished.Error)
	reportSvc.AssertNotCalled(t, "RenderAndDeliver")
}

func TestRunOnce_DeliveryFails(t *testing.T) {
	_, runRepo, reportSvc, w := setupWorker()

	sched := &domain.ReportSchedule{
		ID:           uuid.New(),
		CustomerName: "Acme Imports",
		LookbackDays: 7,
		Recipients:   "ops@acme.test",
	}
	report := &domain.LandedCostReport{CustomerName: "Acme Imports"}

	runRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).Return(nil)
	reportSvc.On("GenerateForCustomer", mock.Anything, "Acme Imports", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(report, nil)
	reportSvc.On("RenderAndDeliver", mock.Anything, report, []string{"ops@acme.test"}, mock.AnythingOfType("string")).
		Return(nil, assert.AnError)

	var finished *domain.ReportRun
	runRepo.On("Finish", mock.Anything, mock.AnythingOfType("*domain.ReportRun")).
		Run(func(args mock.Arguments) {
			finished = args.Get(1).(*domain.ReportRun)
		}).Return(nil)

	w.RunOnce(context.Background(), sched)

	assert.NotNil(t, finished)
	assert.Equal(t, domain.RunStatusFailed, finished.Status)
}

func TestStart_ZeroConfigGetsDefaults(t *testing.T) {
	// A zero-value config must not panic the ticker or stall claiming.
	scheduleRepo := new(mocks.MockScheduleRepo)
	runRepo := new(mocks.MockReportRunRepo)
	reportSvc := new(mocks.MockReportService)
	w := service.NewScheduleWorker(scheduleRepo, runRepo, reportSvc, service.ScheduleWorkerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
