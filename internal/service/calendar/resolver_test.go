package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
)

// March 2026: the 9th is a Monday, the 13th a Friday, the 14th a Saturday.
var (
	monday   = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	friday   = time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func baseData() RangeData {
	return RangeData{
		JoiningDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Today:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Records:     map[string]attendance.DailyRecord{},
	}
}

func recordFor(day time.Time, minutes int, incomplete bool) attendance.DailyRecord {
	in := day.Add(9 * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	rec := attendance.DailyRecord{
		EmployeeID:         "emp-1",
		Date:               day,
		FirstCheckIn:       &in,
		TotalWorkedMinutes: minutes,
		IsIncompleteDay:    incomplete,
	}
	if !incomplete {
		rec.LastCheckOut = &out
	}
	return rec
}

func TestResolve_NotYetJoined(t *testing.T) {
	data := baseData()
	data.JoiningDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	ctx := Resolve(monday, data)
	assert.Equal(t, KindNotYetJoined, ctx.Kind)
}

func TestResolve_FutureDate(t *testing.T) {
	data := baseData()
	data.Today = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	ctx := Resolve(monday, data)
	assert.Equal(t, KindFutureDate, ctx.Kind)
}

func TestResolve_HolidayBeatsLeaveAndWeekday(t *testing.T) {
	data := baseData()
	data.Holidays = []holiday.PaidHoliday{
		{HolidayType: holiday.TypeDay, StartDate: monday, Description: "Founders Day"},
	}
	data.Leaves = []leave.Request{
		{StartDate: monday, EndDate: monday, LeaveType: "annual", Status: leave.StatusApproved},
	}

	ctx := Resolve(monday, data)
	assert.Equal(t, KindHoliday, ctx.Kind)
	assert.Equal(t, "Founders Day", ctx.Label)
}

func TestResolve_HolidayPresentEarnsNoExtraTime(t *testing.T) {
	data := baseData()
	data.Holidays = []holiday.PaidHoliday{
		{HolidayType: holiday.TypeDay, StartDate: monday, Description: "Founders Day"},
	}
	data.Records[monday.Format("2006-01-02")] = recordFor(monday, 660, false)

	ctx := Resolve(monday, data)
	assert.Equal(t, KindHolidayPresent, ctx.Kind)
	assert.False(t, ctx.HasExtraTime)
	require.NotNil(t, ctx.Record)
}

func TestResolve_WeekendDayOff(t *testing.T) {
	data := baseData()

	assert.Equal(t, KindDayOff, Resolve(friday, data).Kind)
	assert.Equal(t, KindDayOff, Resolve(saturday, data).Kind)
}

func TestResolve_WeekendWorkAccruesExtraTime(t *testing.T) {
	data := baseData()
	// 6 hours on a Friday: everything counts against the 9-hour standard
	data.Records[friday.Format("2006-01-02")] = recordFor(friday, 360, false)

	ctx := Resolve(friday, data)
	assert.Equal(t, KindDayOffPresent, ctx.Kind)
	assert.True(t, ctx.HasExtraTime)
	assert.InDelta(t, -3.0, ctx.ExtraTimeHours, 1e-9)
}

func TestResolve_WeekendIncompleteDaySuppressesExtraTime(t *testing.T) {
	data := baseData()
	data.Records[friday.Format("2006-01-02")] = recordFor(friday, 0, true)

	ctx := Resolve(friday, data)
	assert.Equal(t, KindDayOffPresent, ctx.Kind)
	assert.False(t, ctx.HasExtraTime)
}

func TestResolve_WeekendPermissionSuppressesExtraTime(t *testing.T) {
	data := baseData()
	data.Records[friday.Format("2006-01-02")] = recordFor(friday, 600, false)
	data.Permissions = []permission.Request{
		{StartTime: friday.Add(10 * time.Hour), EndTime: friday.Add(12 * time.Hour), Status: permission.StatusApproved},
	}

	ctx := Resolve(friday, data)
	assert.Equal(t, KindDayOffPresent, ctx.Kind)
	assert.False(t, ctx.HasExtraTime)
}

func TestResolve_LeaveLabeledByType(t *testing.T) {
	data := baseData()
	data.Leaves = []leave.Request{
		{StartDate: monday, EndDate: tuesday, LeaveType: "sick leave", Status: leave.StatusApproved},
	}

	ctx := Resolve(tuesday, data)
	assert.Equal(t, KindLeave, ctx.Kind)
	assert.Equal(t, "sick leave", ctx.Label)
}

func TestResolve_PermissionBeatsPresence(t *testing.T) {
	data := baseData()
	data.Records[monday.Format("2006-01-02")] = recordFor(monday, 600, false)
	data.Permissions = []permission.Request{
		{StartTime: monday.Add(10 * time.Hour), EndTime: monday.Add(12 * time.Hour), Status: permission.StatusApproved},
	}

	ctx := Resolve(monday, data)
	assert.Equal(t, KindPermission, ctx.Kind)
	require.NotNil(t, ctx.Record)
}

func TestResolve_PresentWithExtraTime(t *testing.T) {
	data := baseData()
	// 10 hours on a Monday
	data.Records[monday.Format("2006-01-02")] = recordFor(monday, 600, false)

	ctx := Resolve(monday, data)
	assert.Equal(t, KindPresent, ctx.Kind)
	assert.True(t, ctx.HasExtraTime)
	assert.InDelta(t, 1.0, ctx.ExtraTimeHours, 1e-9)
}

func TestResolve_PresentIncompleteDaySuppressesExtraTime(t *testing.T) {
	data := baseData()
	data.Records[monday.Format("2006-01-02")] = recordFor(monday, 0, true)

	ctx := Resolve(monday, data)
	assert.Equal(t, KindPresent, ctx.Kind)
	assert.False(t, ctx.HasExtraTime)
}

func TestResolve_AbsentByDefault(t *testing.T) {
	ctx := Resolve(monday, baseData())
	assert.Equal(t, KindAbsent, ctx.Kind)
}

func TestResolveRange_CoversEveryDayInclusive(t *testing.T) {
	contexts := ResolveRange(monday, saturday, baseData())
	require.Len(t, contexts, 6)
	assert.Equal(t, monday, contexts[0].Date)
	assert.Equal(t, saturday, contexts[5].Date)
}
