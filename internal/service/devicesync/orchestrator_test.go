package devicesync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/pkg/device"
)

type fakeClient struct {
	readings []device.Reading
	err      error
	block    chan struct{}
}

func (c *fakeClient) FetchReadings(ctx context.Context, since *time.Time) ([]device.Reading, error) {
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.readings, nil
}

func (c *fakeClient) Address() string { return "192.168.1.50:4370" }

type fakeScanRepo struct {
	scan.Repository
	mu       sync.Mutex
	inserted []scan.Event
	batchErr error
	// failOnCall makes only the nth CreateBatch call fail (1-based);
	// batchErr fails every call.
	failOnCall int
	calls      int
}

func (r *fakeScanRepo) CreateBatch(ctx context.Context, events []scan.Event) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.batchErr != nil || (r.failOnCall > 0 && r.calls == r.failOnCall) {
		err := r.batchErr
		if err == nil {
			err = errors.New("insert failed")
		}
		return 0, err
	}
	r.inserted = append(r.inserted, events...)
	return len(events), nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byBiometric map[string]employee.Employee
}

func (r *fakeEmployeeRepo) MapByBiometricID(ctx context.Context) (map[string]employee.Employee, error) {
	return r.byBiometric, nil
}

type fakeFailureRepo struct {
	syncfailure.Repository
	mu     sync.Mutex
	events []syncfailure.Event
}

func (r *fakeFailureRepo) Create(ctx context.Context, event syncfailure.Event) (syncfailure.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeFailureRepo) kinds() []syncfailure.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]syncfailure.Kind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

type fakeReconciler struct {
	attendance.Service
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *fakeReconciler) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, employeeID+"/"+date.Format("2006-01-02"))
	if s.err != nil {
		return attendance.DailyRecord{}, s.err
	}
	return attendance.DailyRecord{EmployeeID: employeeID}, nil
}

func ts(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func newTestOrchestrator(client device.Client, scanRepo *fakeScanRepo, failureRepo *fakeFailureRepo, reconciler *fakeReconciler) *Orchestrator {
	employees := &fakeEmployeeRepo{byBiometric: map[string]employee.Employee{
		"BIO-1": {ID: "emp-1", FullName: "Ann"},
		"BIO-2": {ID: "emp-2", FullName: "Ben"},
	}}
	return NewOrchestrator(client, 2, scanRepo, employees, failureRepo, reconciler, nil)
}

func TestSync_HappyPath(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
		{BiometricID: "BIO-1", Timestamp: ts(10, 18)},
		{BiometricID: "BIO-2", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 3, result.RecordsAdded)
	assert.Equal(t, 2, result.PairsReconciled)
	assert.Equal(t, 0, result.UnmatchedReadings)
	assert.Empty(t, result.Errors)
	assert.Equal(t, StateIdle, o.State())
	assert.False(t, o.IsRunning())

	// Directions come from the time-of-day heuristic
	require.Len(t, scanRepo.inserted, 3)
	assert.Equal(t, scan.DirectionCheckIn, scanRepo.inserted[0].Direction)
	assert.Equal(t, scan.DirectionCheckOut, scanRepo.inserted[1].Direction)
}

func TestSync_SecondCallerGetsAlreadyRunning(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{block: block}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)

	done := make(chan Result, 1)
	go func() {
		result, _ := o.Sync(context.Background())
		done <- result
	}()

	// Wait for the first sync to take the slot
	require.Eventually(t, o.IsRunning, time.Second, time.Millisecond)

	result, err := o.Sync(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, "already_running", result.Status)

	close(block)
	first := <-done
	assert.Equal(t, "success", first.Status)
}

func TestSync_DeduplicatesWithinFetch(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsAdded)
}

func TestSync_UnmatchedReadingsRecordedNotDropped(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
		{BiometricID: "UNKNOWN", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 1, result.UnmatchedReadings)
	assert.Equal(t, 1, result.RecordsAdded)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindUnmatchedEmployee)
}

func TestSync_ConnectionFailureRecorded(t *testing.T) {
	client := &fakeClient{err: device.ErrUnreachable}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindConnection)
	assert.False(t, o.IsRunning())
}

func TestSync_NoDeviceConfigured(t *testing.T) {
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}
	employees := &fakeEmployeeRepo{}

	o := NewOrchestrator(nil, 2, scanRepo, employees, failureRepo, reconciler, nil)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindConfig)
}

func TestSync_WhollyFailedCommitReportsError(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{batchErr: errors.New("insert failed")}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
	assert.Equal(t, 0, result.RecordsAdded)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindSync)
	assert.Equal(t, StateIdle, o.State())
}

func TestSync_CommitFailureIsolatedPerBatch(t *testing.T) {
	// Three readings, batch size two: the first chunk fails, the second
	// still lands and the run counts as a success with errors.
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
		{BiometricID: "BIO-1", Timestamp: ts(10, 18)},
		{BiometricID: "BIO-2", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{failOnCall: 1}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 1, result.RecordsAdded)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindSync)
}

func TestSync_ReconcileErrorRecordedPerPair(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
	}}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{err: errors.New("boom")}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.PairsReconciled)
	assert.Contains(t, failureRepo.kinds(), syncfailure.KindReconciliation)
}

func TestSync_ReconcilesEachTouchedPairOnce(t *testing.T) {
	client := &fakeClient{readings: []device.Reading{
		{BiometricID: "BIO-1", Timestamp: ts(10, 9)},
		{BiometricID: "BIO-1", Timestamp: ts(10, 18)},
		{BiometricID: "BIO-1", Timestamp: ts(11, 9)},
	}}
	scanRepo := &fakeScanRepo{}
	failureRepo := &fakeFailureRepo{}
	reconciler := &fakeReconciler{}

	o := newTestOrchestrator(client, scanRepo, failureRepo, reconciler)
	result, err := o.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.PairsReconciled)
	assert.Len(t, reconciler.calls, 2)
	assert.ElementsMatch(t, []string{"emp-1/2026-03-10", "emp-1/2026-03-11"}, reconciler.calls)
}
