package devicesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/pkg/device"
)

// State is the orchestrator's position in its sync cycle.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateSyncing    State = "syncing"
	StateCommitting State = "committing"
	StateFailed     State = "failed"
)

var (
	// ErrAlreadyRunning is returned to a caller requesting a sync while
	// one is in flight; the caller is never blocked.
	ErrAlreadyRunning = errors.New("device sync already running")
	// ErrNoDeviceConfigured means there is no terminal to poll.
	ErrNoDeviceConfigured = errors.New("no active device configured")
)

// Result is the outcome of one sync run. Status is "success" when at
// least part of the run landed; a success may still carry per-batch or
// per-pair entries in Errors. "error" means nothing was committed.
type Result struct {
	Status            string     `json:"status"` // success | error | already_running
	RecordsAdded      int        `json:"records_added"`
	PairsReconciled   int        `json:"pairs_reconciled"`
	UnmatchedReadings int        `json:"unmatched_readings"`
	Errors            []string   `json:"errors,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
}

// Orchestrator polls the biometric terminal, persists new scan events and
// reconciles every touched (employee, date) pair. At most one sync runs
// per process; the slot is owned here and queryable via IsRunning.
type Orchestrator struct {
	client       device.Client
	batchSize    int
	scanRepo     scan.Repository
	employeeRepo employee.Repository
	failureRepo  syncfailure.Repository
	reconciler   attendance.Service
	alerter      *Alerter

	running atomic.Bool

	mu         sync.Mutex
	state      State
	lastResult *Result
	lastSyncAt *time.Time
}

// NewOrchestrator creates the device sync orchestrator. client may be nil
// when no device is configured; Sync then records a config failure.
func NewOrchestrator(
	client device.Client,
	batchSize int,
	scanRepo scan.Repository,
	employeeRepo employee.Repository,
	failureRepo syncfailure.Repository,
	reconciler attendance.Service,
	alerter *Alerter,
) *Orchestrator {
	return &Orchestrator{
		client:       client,
		batchSize:    batchSize,
		scanRepo:     scanRepo,
		employeeRepo: employeeRepo,
		failureRepo:  failureRepo,
		reconciler:   reconciler,
		alerter:      alerter,
		state:        StateIdle,
	}
}

// IsRunning reports whether a sync is currently in flight.
func (o *Orchestrator) IsRunning() bool {
	return o.running.Load()
}

// State returns the current sync state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastResult returns the outcome of the most recent sync run, or nil.
func (o *Orchestrator) LastResult() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastResult == nil {
		return nil
	}
	cp := *o.lastResult
	return &cp
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Sync runs one full sync cycle. A concurrent caller receives
// ErrAlreadyRunning and no writes are performed on its behalf.
func (o *Orchestrator) Sync(ctx context.Context) (Result, error) {
	if !o.running.CompareAndSwap(false, true) {
		return Result{Status: "already_running"}, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	result := Result{StartedAt: time.Now()}
	defer func() {
		now := time.Now()
		result.FinishedAt = &now
		o.mu.Lock()
		o.lastResult = &result
		o.mu.Unlock()
	}()

	o.setState(StateConnecting)

	if o.client == nil || o.client.Address() == "" {
		o.recordFailure(ctx, syncfailure.KindConfig, ErrNoDeviceConfigured.Error(), nil, nil)
		o.setState(StateFailed)
		defer o.setState(StateIdle)
		result.Status = "error"
		result.Errors = append(result.Errors, ErrNoDeviceConfigured.Error())
		return result, nil
	}

	o.mu.Lock()
	since := o.lastSyncAt
	o.mu.Unlock()

	readings, err := o.client.FetchReadings(ctx, since)
	if err != nil {
		o.recordFailure(ctx, syncfailure.KindConnection, err.Error(), nil, nil)
		o.setState(StateFailed)
		defer o.setState(StateIdle)
		result.Status = "error"
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}

	o.setState(StateSyncing)
	fetchedAt := time.Now()

	byBiometric, err := o.employeeRepo.MapByBiometricID(ctx)
	if err != nil {
		o.recordFailure(ctx, syncfailure.KindSync, fmt.Sprintf("load employee map: %v", err), nil, nil)
		o.setState(StateFailed)
		defer o.setState(StateIdle)
		result.Status = "error"
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}

	events, unmatched := o.matchReadings(ctx, readings, byBiometric)
	result.UnmatchedReadings = unmatched

	o.setState(StateCommitting)
	added, commitErrs := o.commitBatches(ctx, events)
	result.RecordsAdded = added
	result.Errors = append(result.Errors, commitErrs...)

	result.PairsReconciled, result.Errors = o.reconcileTouched(ctx, events, result.Errors)

	o.mu.Lock()
	o.lastSyncAt = &fetchedAt
	o.mu.Unlock()

	// Nothing committed and at least one step errored: that is a failed
	// run, not a success with footnotes.
	if result.RecordsAdded == 0 && len(result.Errors) > 0 {
		o.setState(StateFailed)
		defer o.setState(StateIdle)
		result.Status = "error"
		slog.Warn("Device sync failed to commit any records",
			"unmatched", result.UnmatchedReadings,
			"errors", len(result.Errors),
		)
		return result, nil
	}

	result.Status = "success"
	o.setState(StateIdle)

	if o.alerter != nil && result.RecordsAdded > 0 {
		o.alerter.NotifyCompleted(ctx, result.RecordsAdded, result.PairsReconciled, result.UnmatchedReadings)
	}

	slog.Info("Device sync completed",
		"records_added", result.RecordsAdded,
		"pairs_reconciled", result.PairsReconciled,
		"unmatched", result.UnmatchedReadings,
		"errors", len(result.Errors),
	)

	return result, nil
}

// matchReadings maps raw readings to employees and deduplicates within
// the fetched set. Unknown biometric ids are recorded, never dropped.
func (o *Orchestrator) matchReadings(ctx context.Context, readings []device.Reading, byBiometric map[string]employee.Employee) ([]scan.Event, int) {
	address := o.client.Address()
	seen := make(map[string]struct{}, len(readings))
	var events []scan.Event
	unmatched := 0

	for _, reading := range readings {
		emp, ok := byBiometric[reading.BiometricID]
		if !ok {
			unmatched++
			payload := fmt.Sprintf("biometric_id=%s timestamp=%s", reading.BiometricID, reading.Timestamp.Format(time.RFC3339))
			o.recordUnmatched(ctx, payload)
			continue
		}

		key := emp.ID + "|" + reading.Timestamp.UTC().Format(time.RFC3339Nano)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		addr := address
		events = append(events, scan.Event{
			EmployeeID:    emp.ID,
			Timestamp:     reading.Timestamp,
			Direction:     scan.Classify(reading.Timestamp),
			DeviceAddress: &addr,
		})
	}

	return events, unmatched
}

// commitBatches persists events in bounded chunks. A failed chunk is
// recorded and skipped; committed chunks stay committed.
func (o *Orchestrator) commitBatches(ctx context.Context, events []scan.Event) (int, []string) {
	added := 0
	var errs []string

	for offset := 0; offset < len(events); offset += o.batchSize {
		limit := offset + o.batchSize
		if limit > len(events) {
			limit = len(events)
		}

		n, err := o.scanRepo.CreateBatch(ctx, events[offset:limit])
		added += n
		if err != nil {
			msg := fmt.Sprintf("commit batch %d-%d: %v", offset, limit, err)
			o.recordFailure(ctx, syncfailure.KindSync, msg, nil, nil)
			errs = append(errs, msg)
		}
	}

	return added, errs
}

// reconcileTouched rebuilds the daily record of every distinct
// (employee, date) pair in the fetched set. Per-pair errors are isolated.
func (o *Orchestrator) reconcileTouched(ctx context.Context, events []scan.Event, errs []string) (int, []string) {
	type pair struct {
		employeeID string
		day        string
	}

	touched := make(map[pair]time.Time)
	for _, e := range events {
		p := pair{employeeID: e.EmployeeID, day: e.Timestamp.Format("2006-01-02")}
		if _, ok := touched[p]; !ok {
			touched[p] = e.Timestamp
		}
	}

	reconciled := 0
	for p, ts := range touched {
		_, err := o.reconciler.ReconcileDay(ctx, p.employeeID, ts)
		switch {
		case err == nil:
			reconciled++
		case errors.Is(err, attendance.ErrNoScans), errors.Is(err, attendance.ErrNotApplicable):
			// Nothing to rebuild for this pair
		default:
			msg := fmt.Sprintf("reconcile %s on %s: %v", p.employeeID, p.day, err)
			empID := p.employeeID
			o.recordFailure(ctx, syncfailure.KindReconciliation, msg, &empID, nil)
			errs = append(errs, msg)
		}
	}

	return reconciled, errs
}

func (o *Orchestrator) recordFailure(ctx context.Context, kind syncfailure.Kind, message string, employeeID, rawPayload *string) {
	var addr *string
	if o.client != nil && o.client.Address() != "" {
		a := o.client.Address()
		addr = &a
	}

	event := syncfailure.Event{
		Kind:          kind,
		Message:       message,
		DeviceAddress: addr,
		EmployeeID:    employeeID,
		RawPayload:    rawPayload,
	}

	if _, err := o.failureRepo.Create(ctx, event); err != nil {
		slog.Error("Failed to persist sync failure event", "kind", kind, "error", err)
	}

	if o.alerter != nil {
		o.alerter.NotifyFailure(ctx, kind, message, addr)
	}
}

func (o *Orchestrator) recordUnmatched(ctx context.Context, rawPayload string) {
	var addr *string
	if o.client != nil {
		a := o.client.Address()
		addr = &a
	}

	event := syncfailure.Event{
		Kind:          syncfailure.KindUnmatchedEmployee,
		Message:       "device reading has no matching employee",
		DeviceAddress: addr,
		RawPayload:    &rawPayload,
	}

	if _, err := o.failureRepo.Create(ctx, event); err != nil {
		slog.Error("Failed to persist unmatched reading", "error", err)
	}
}

// TriggerAsync requests a background sync and returns immediately. An
// in-flight sync makes this a no-op; panics and errors stay contained.
func (o *Orchestrator) TriggerAsync() {
	if o.IsRunning() {
		return
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				slog.Error("Background sync panicked", "panic", p)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := o.Sync(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			slog.Error("Background sync failed", "error", err)
		}
	}()
}
