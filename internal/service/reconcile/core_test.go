package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func events(times ...time.Time) []scan.Event {
	evts := make([]scan.Event, len(times))
	for i, ts := range times {
		evts[i] = scan.Event{EmployeeID: "emp-1", Timestamp: ts}
	}
	return evts
}

func TestBuildDailyRecord_FullDayPresent(t *testing.T) {
	record, ordered := buildDailyRecord(events(at(9, 0), at(19, 0)), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.Equal(t, 600, record.TotalWorkedMinutes)
	assert.Equal(t, 1, record.EntryPairCount)
	assert.False(t, record.IsIncompleteDay)

	require.NotNil(t, record.FirstCheckIn)
	require.NotNil(t, record.LastCheckOut)
	assert.Equal(t, at(9, 0), *record.FirstCheckIn)
	assert.Equal(t, at(19, 0), *record.LastCheckOut)

	require.Len(t, ordered, 2)
	assert.Equal(t, scan.DirectionCheckIn, ordered[0].Direction)
	assert.Equal(t, scan.DirectionCheckOut, ordered[1].Direction)
	assert.Equal(t, 1, ordered[0].SequenceIndex)
	assert.Equal(t, 2, ordered[1].SequenceIndex)
	assert.False(t, ordered[0].IsExtraScan)
	assert.False(t, ordered[1].IsExtraScan)
}

func TestBuildDailyRecord_HalfDay(t *testing.T) {
	record, _ := buildDailyRecord(events(at(9, 0), at(14, 0)), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusHalfDay, record.Status)
	assert.Equal(t, 300, record.TotalWorkedMinutes)
}

func TestBuildDailyRecord_Partial(t *testing.T) {
	// Manual check-out keeps its direction, giving a short closed interval
	evts := events(at(9, 0))
	out := scan.Event{EmployeeID: "emp-1", Timestamp: at(11, 0), IsManual: true, Direction: scan.DirectionCheckOut}
	record, _ := buildDailyRecord(append(evts, out), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusPartial, record.Status)
	assert.Equal(t, 120, record.TotalWorkedMinutes)
}

func TestBuildDailyRecord_SingleScanIsIncompleteInOffice(t *testing.T) {
	record, _ := buildDailyRecord(events(at(9, 0)), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusInOffice, record.Status)
	assert.True(t, record.IsIncompleteDay)
	assert.Nil(t, record.LastCheckOut)
}

func TestBuildDailyRecord_LoneCheckOutIsAbsent(t *testing.T) {
	record, _ := buildDailyRecord(events(at(18, 0)), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusAbsent, record.Status)
	assert.True(t, record.IsIncompleteDay)
	assert.Nil(t, record.FirstCheckIn)
	require.NotNil(t, record.LastCheckOut)
}

func TestBuildDailyRecord_UnmatchedTrailingCheckIn(t *testing.T) {
	// Second check-in after lunch with no closing check-out
	evts := events(at(9, 0))
	evts = append(evts,
		scan.Event{EmployeeID: "emp-1", Timestamp: at(12, 0), IsManual: true, Direction: scan.DirectionCheckOut},
		scan.Event{EmployeeID: "emp-1", Timestamp: at(13, 0), IsManual: true, Direction: scan.DirectionCheckIn},
	)
	record, ordered := buildDailyRecord(evts, nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusInOffice, record.Status)
	assert.Equal(t, 180, record.TotalWorkedMinutes)
	assert.Equal(t, 1, record.EntryPairCount)
	assert.True(t, ordered[2].IsExtraScan)
}

func TestBuildDailyRecord_MultiplePairs(t *testing.T) {
	evts := []scan.Event{
		{EmployeeID: "emp-1", Timestamp: at(8, 0)},
		{EmployeeID: "emp-1", Timestamp: at(12, 0), IsManual: true, Direction: scan.DirectionCheckOut},
		{EmployeeID: "emp-1", Timestamp: at(13, 0)},
		{EmployeeID: "emp-1", Timestamp: at(18, 0)},
	}
	record, ordered := buildDailyRecord(evts, nil, nil, "emp-1", testDay)

	assert.Equal(t, 2, record.EntryPairCount)
	assert.Equal(t, 540, record.TotalWorkedMinutes) // 4h + 5h
	assert.Equal(t, attendance.StatusPresent, record.Status)

	// Bounds come from the extremes, not the pairing
	assert.Equal(t, at(8, 0), *record.FirstCheckIn)
	assert.Equal(t, at(18, 0), *record.LastCheckOut)

	for i, e := range ordered {
		assert.Equal(t, i+1, e.SequenceIndex)
		assert.Equal(t, i+1 > 2, e.IsExtraScan)
	}
}

func TestBuildDailyRecord_OutOfOrderInputIsSorted(t *testing.T) {
	record, ordered := buildDailyRecord(events(at(19, 0), at(9, 0)), nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusPresent, record.Status)
	assert.Equal(t, 600, record.TotalWorkedMinutes)
	assert.Equal(t, at(9, 0), ordered[0].Timestamp)
}

func TestBuildDailyRecord_ApprovedLeaveWins(t *testing.T) {
	lv := &leave.Request{LeaveType: "annual leave", Status: leave.StatusApproved}
	record, _ := buildDailyRecord(events(at(9, 0), at(19, 0)), lv, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusLeave, record.Status)
	require.NotNil(t, record.StatusReason)
	assert.Equal(t, "approved leave: annual leave", *record.StatusReason)
	// Interval math still recorded
	assert.Equal(t, 600, record.TotalWorkedMinutes)
}

func TestBuildDailyRecord_PermissionBeatsScans(t *testing.T) {
	reason := "doctor visit"
	perm := &permission.Request{Reason: &reason, Status: permission.StatusApproved}
	record, _ := buildDailyRecord(events(at(9, 0)), nil, perm, "emp-1", testDay)

	assert.Equal(t, attendance.StatusPermission, record.Status)
	require.NotNil(t, record.StatusReason)
	assert.Equal(t, "approved permission: doctor visit", *record.StatusReason)
}

func TestBuildDailyRecord_NoScansAbsent(t *testing.T) {
	record, ordered := buildDailyRecord(nil, nil, nil, "emp-1", testDay)

	assert.Equal(t, attendance.StatusAbsent, record.Status)
	assert.Empty(t, ordered)
	assert.False(t, record.IsIncompleteDay)
	assert.Equal(t, 0, record.TotalWorkedMinutes)
}

func TestBuildDailyRecord_Idempotent(t *testing.T) {
	evts := events(at(9, 0), at(19, 0))

	first, _ := buildDailyRecord(evts, nil, nil, "emp-1", testDay)
	second, _ := buildDailyRecord(evts, nil, nil, "emp-1", testDay)

	assert.Equal(t, first, second)
}

func TestDecideStatus_ThresholdBoundaries(t *testing.T) {
	in := at(9, 0)
	out := at(18, 0)

	tests := []struct {
		name        string
		workedHours float64
		want        attendance.DayStatus
	}{
		{"exactly nine hours", 9.0, attendance.StatusPresent},
		{"just under nine", 8.99, attendance.StatusHalfDay},
		{"exactly four hours", 4.0, attendance.StatusHalfDay},
		{"just under four", 3.99, attendance.StatusPartial},
		{"zero hours", 0, attendance.StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := decideStatus(nil, nil, &in, &out, false, tt.workedHours)
			assert.Equal(t, tt.want, status)
		})
	}
}
