package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/service/devicesync"
)

// SyncJobs holds the dependencies for scheduled attendance jobs
type SyncJobs struct {
	orchestrator *devicesync.Orchestrator
	reconciler   attendance.Service
	employeeRepo employee.Repository
}

func NewSyncJobs(orchestrator *devicesync.Orchestrator, reconciler attendance.Service, employeeRepo employee.Repository) *SyncJobs {
	return &SyncJobs{
		orchestrator: orchestrator,
		reconciler:   reconciler,
		employeeRepo: employeeRepo,
	}
}

// RegisterJobs registers all attendance jobs with the scheduler
func (j *SyncJobs) RegisterJobs(scheduler *Scheduler, pollInterval time.Duration, autoTrigger bool) {
	if autoTrigger {
		scheduler.AddJob("device_scan_sync", pollInterval, j.runDeviceSync)
	}

	// Checked hourly, runs in the midnight hour only
	scheduler.AddJob("nightly_reprocess", 1*time.Hour, j.runNightlyReprocess)
}

// runDeviceSync pulls fresh readings from the terminal. An in-flight
// sync makes this a no-op.
func (j *SyncJobs) runDeviceSync(ctx context.Context) error {
	if j.orchestrator.IsRunning() {
		slog.Debug("Device sync already running, skipping scheduled run")
		return nil
	}

	result, err := j.orchestrator.Sync(ctx)
	if err != nil {
		return err
	}
	if result.Status != "success" {
		return fmt.Errorf("device sync finished with status %s", result.Status)
	}
	return nil
}

// runNightlyReprocess rebuilds yesterday's daily records for every
// active employee, catching scans that arrived after the day closed.
func (j *SyncJobs) runNightlyReprocess(ctx context.Context) error {
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active employees: %w", err)
	}

	processed := 0
	failed := 0
	for _, emp := range employees {
		result, err := j.reconciler.ReconcileRange(ctx, emp.ID, yesterday, yesterday)
		if err != nil {
			failed++
			slog.Error("Nightly reprocess failed for employee", "employee_id", emp.ID, "error", err)
			continue
		}
		processed += result.DaysProcessed
	}

	slog.Info("Nightly reprocess completed",
		"date", yesterday.Format("2006-01-02"),
		"employees", len(employees),
		"days_processed", processed,
		"failed", failed,
	)
	return nil
}
