package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
)

// March 2026: the 9th is a Monday, so 9-15 is a full Monday-Sunday week.
var (
	weekStart = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	weekEnd   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func weekInput() summaryInput {
	return summaryInput{
		Start:       weekStart,
		End:         weekEnd,
		JoiningDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Today:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func presentRecord(day time.Time, minutes int) attendance.DailyRecord {
	in := day.Add(9 * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	return attendance.DailyRecord{
		EmployeeID:         "emp-1",
		Date:               day,
		FirstCheckIn:       &in,
		LastCheckOut:       &out,
		TotalWorkedMinutes: minutes,
		Status:             attendance.StatusPresent,
	}
}

func TestComputeSummary_EmptyWeek(t *testing.T) {
	m := computeSummary(weekInput())

	assert.Equal(t, 7, m.TotalDays)
	assert.Equal(t, 0, m.PresentDays)
	assert.Equal(t, 2, m.DayOffDays) // Friday and Saturday
	assert.Equal(t, 4, m.AbsentDays) // Monday through Thursday
	assert.Equal(t, 0, m.IncompleteDays)
	assert.Equal(t, 2.0, m.TotalWorkingDays)
	assert.Equal(t, 0.0, m.AttendancePercentage)
}

func TestComputeSummary_FullWorkWeek(t *testing.T) {
	in := weekInput()
	for i := 0; i < 4; i++ { // Monday-Thursday, 9h each
		in.Records = append(in.Records, presentRecord(weekStart.AddDate(0, 0, i), 540))
	}

	m := computeSummary(in)

	assert.Equal(t, 4, m.PresentDays)
	assert.Equal(t, 0, m.AbsentDays)
	assert.Equal(t, 2, m.DayOffDays)
	assert.Equal(t, 6.0, m.TotalWorkingDays)
	assert.InDelta(t, 66.7, m.AttendancePercentage, 1e-9)
	assert.Equal(t, 0.0, m.ExtraTimeHours)
}

func TestComputeSummary_LeaveBuckets(t *testing.T) {
	in := weekInput()
	in.Leaves = []leave.Request{
		{StartDate: weekStart, EndDate: weekStart, LeaveType: "annual leave", Status: leave.StatusApproved},
		{StartDate: weekStart.AddDate(0, 0, 1), EndDate: weekStart.AddDate(0, 0, 1), LeaveType: "unpaid leave", Status: leave.StatusApproved},
		{StartDate: weekStart.AddDate(0, 0, 2), EndDate: weekStart.AddDate(0, 0, 2), LeaveType: "paid sabbatical", Status: leave.StatusPending},
		// Composite name: the sick family folds into annual, not paid
		{StartDate: weekStart.AddDate(0, 0, 3), EndDate: weekStart.AddDate(0, 0, 3), LeaveType: "Paid Sick Leave", Status: leave.StatusApproved},
	}

	m := computeSummary(in)

	assert.Equal(t, 2.0, m.AnnualLeaveDays)
	assert.Equal(t, 1.0, m.UnpaidLeaveDays)
	assert.Equal(t, 1.0, m.PaidLeaveDays) // pending still counts toward totals
	assert.Equal(t, 0, m.AbsentDays)      // Monday through Thursday all covered
}

func TestComputeSummary_LeaveClippedToRange(t *testing.T) {
	in := weekInput()
	// Leave runs from the previous Thursday through Tuesday; only the
	// Monday and Tuesday overlap counts.
	in.Leaves = []leave.Request{
		{
			StartDate: weekStart.AddDate(0, 0, -4),
			EndDate:   weekStart.AddDate(0, 0, 1),
			LeaveType: "annual leave",
			Status:    leave.StatusApproved,
		},
	}

	m := computeSummary(in)
	assert.Equal(t, 2.0, m.AnnualLeaveDays)
}

func TestComputeSummary_WeekdayHolidayCountsAsPaidLeave(t *testing.T) {
	in := weekInput()
	in.Holidays = []holiday.PaidHoliday{
		{HolidayType: holiday.TypeDay, StartDate: weekStart, Description: "Founders Day"},
	}

	m := computeSummary(in)

	assert.Equal(t, 1.0, m.PaidLeaveDays)
	assert.Equal(t, 3, m.AbsentDays) // Monday is covered by the holiday
}

func TestComputeSummary_SaturdayHolidayDoesNotCountAsPaidLeave(t *testing.T) {
	in := weekInput()
	saturday := weekStart.AddDate(0, 0, 5)
	in.Holidays = []holiday.PaidHoliday{
		{HolidayType: holiday.TypeDay, StartDate: saturday, Description: "Founders Day"},
	}

	m := computeSummary(in)

	assert.Equal(t, 0.0, m.PaidLeaveDays)
	// The holiday consumes one of the two weekend day-off slots
	assert.Equal(t, 1, m.DayOffDays)
}

func TestComputeSummary_PermissionHoursClipped(t *testing.T) {
	in := weekInput()
	in.Permissions = []permission.Request{
		{
			StartTime: weekStart.Add(10 * time.Hour),
			EndTime:   weekStart.Add(12*time.Hour + 30*time.Minute),
			Status:    permission.StatusApproved,
		},
	}

	m := computeSummary(in)

	assert.InDelta(t, 2.5, m.PermissionHours, 1e-9)
	assert.Equal(t, 3, m.AbsentDays) // permission covers Monday
}

func TestComputeSummary_WorkedWeekendReducesDayOff(t *testing.T) {
	in := weekInput()
	friday := weekStart.AddDate(0, 0, 4)
	in.Records = []attendance.DailyRecord{presentRecord(friday, 540)}

	m := computeSummary(in)

	assert.Equal(t, 1, m.DayOffDays)
	assert.Equal(t, 1, m.PresentDays)
}

func TestComputeSummary_AbsencesBoundedByJoiningAndToday(t *testing.T) {
	in := weekInput()
	in.JoiningDate = weekStart.AddDate(0, 0, 1) // joined Tuesday
	in.Today = weekStart.AddDate(0, 0, 2)       // today is Wednesday

	m := computeSummary(in)

	// Monday precedes joining, Thursday is in the future
	assert.Equal(t, 2, m.AbsentDays)
}

func TestComputeSummary_ExtraTimeRollsUpThroughCalendar(t *testing.T) {
	in := weekInput()
	// 10 hours Monday: one hour over the standard
	in.Records = []attendance.DailyRecord{presentRecord(weekStart, 600)}

	m := computeSummary(in)

	assert.InDelta(t, 1.0, m.ExtraTimeHours, 1e-9)
}

func TestComputeSummary_PendingLeaveHiddenFromCalendarExtraTime(t *testing.T) {
	in := weekInput()
	// 8-hour Monday would accrue -1h of extra time; a pending leave on
	// the same day must not suppress it because only approved leave
	// reaches the calendar.
	in.Records = []attendance.DailyRecord{presentRecord(weekStart, 480)}
	in.Leaves = []leave.Request{
		{StartDate: weekStart, EndDate: weekStart, LeaveType: "annual leave", Status: leave.StatusPending},
	}

	m := computeSummary(in)

	assert.InDelta(t, -1.0, m.ExtraTimeHours, 1e-9)
	assert.Equal(t, 1.0, m.AnnualLeaveDays)
}

func TestComputeSummary_IncompleteDaysCounted(t *testing.T) {
	in := weekInput()
	checkIn := weekStart.Add(9 * time.Hour)
	in.Records = []attendance.DailyRecord{{
		EmployeeID:      "emp-1",
		Date:            weekStart,
		FirstCheckIn:    &checkIn,
		Status:          attendance.StatusInOffice,
		IsIncompleteDay: true,
	}}

	m := computeSummary(in)

	assert.Equal(t, 1, m.IncompleteDays)
	assert.Equal(t, 1, m.PresentDays)
	assert.Equal(t, 0.0, m.ExtraTimeHours) // incomplete days accrue nothing
}

func TestComputeSummary_PercentageRounding(t *testing.T) {
	in := weekInput()
	in.Records = []attendance.DailyRecord{presentRecord(weekStart, 540)}

	m := computeSummary(in)

	// 1 present / (2 day-off + 1 present) = 33.333... -> 33.3
	assert.InDelta(t, 33.3, m.AttendancePercentage, 1e-9)
}
