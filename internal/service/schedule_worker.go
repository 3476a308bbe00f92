package service

import (
	"context"
	"log"
	"sync"
	"time"

	"entrydesk/internal/domain"
	"entrydesk/internal/port"
)

// ScheduleWorkerConfig holds settings for the schedule worker.
type ScheduleWorkerConfig struct {
	PollInterval time.Duration
	Concurrency  int
	RunTimeout   time.Duration
}

// ScheduleWorker polls for due report schedules and runs them.
type ScheduleWorker struct {
	scheduleRepo port.ReportScheduleRepository
	runRepo      port.ReportRunRepository
	reportSvc    ReportService
	cfg          ScheduleWorkerConfig
	wg           sync.WaitGroup
}

// NewScheduleWorker creates a new ScheduleWorker.
func NewScheduleWorker(scheduleRepo port.ReportScheduleRepository, runRepo port.ReportRunRepository, reportSvc ReportService, cfg ScheduleWorkerConfig) *ScheduleWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	return &ScheduleWorker{
		scheduleRepo: scheduleRepo,
		runRepo:      runRepo,
		reportSvc:    reportSvc,
		cfg:          cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight report runs have finished.
func (w *ScheduleWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("scheduleWorker: started (poll=%s, concurrency=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduleWorker: shutting down, waiting for in-flight runs...")
			w.wg.Wait()
			log.Printf("scheduleWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			schedules, err := w.scheduleRepo.ClaimDue(ctx, time.Now().UTC(), available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("scheduleWorker: ClaimDue error: %v", err)
				continue
			}

			for i := range schedules {
				sched := schedules[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// A fresh context independent of the poll context so
					// in-flight runs complete even during shutdown.
					runCtx, cancel := context.WithTimeout(context.Background(), w.cfg.RunTimeout)
					defer cancel()

					w.runSchedule(runCtx, &sched)
				}()
			}
		}
	}
}

// RunOnce executes a single schedule immediately, recording a run either way.
func (w *ScheduleWorker) RunOnce(ctx context.Context, sched *domain.ReportSchedule) {
	w.runSchedule(ctx, sched)
}

func (w *ScheduleWorker) runSchedule(ctx context.Context, sched *domain.ReportSchedule) {
	log.Printf("scheduleWorker: running schedule %s (%s / %s)", sched.ID, sched.CustomerName, sched.Name)

	run := &domain.ReportRun{ScheduleID: sched.ID}
	if err := w.runRepo.Create(ctx, run); err != nil {
		log.Printf("scheduleWorker: record run for %s: %v", sched.ID, err)
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -sched.LookbackDays)

	report, err := w.reportSvc.GenerateForCustomer(ctx, sched.CustomerName, from, to)
	if err != nil {
		w.finish(ctx, run, domain.RunStatusFailed, err.Error())
		return
	}
	run.EntryCount = len(report.Entries)

	delivery, err := w.reportSvc.RenderAndDeliver(ctx, report, sched.RecipientList(), sched.Name)
	if err != nil {
		w.finish(ctx, run, domain.RunStatusFailed, err.Error())
		return
	}
	run.ObjectKey = delivery.ObjectKey

	w.finish(ctx, run, domain.RunStatusCompleted, "")
	log.Printf("scheduleWorker: schedule %s completed (%d entries, %s)", sched.ID, run.EntryCount, run.ObjectKey)
}

func (w *ScheduleWorker) finish(ctx context.Context, run *domain.ReportRun, status domain.RunStatus, errMsg string) {
	run.Status = status
	run.Error = errMsg
	if err := w.runRepo.Finish(ctx, run); err != nil {
		log.Printf("scheduleWorker: finish run %s: %v", run.ID, err)
	}
}
