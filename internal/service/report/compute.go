package report

import (
	"math"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/domain/report"
	"github.com/veritime/attendance-backend-go/internal/service/calendar"
)

// summaryInput carries everything computeSummary needs, pre-fetched.
// Leaves and Permissions include pending entries (they count toward
// totals); calendar resolution filters down to approved internally.
type summaryInput struct {
	Start       time.Time
	End         time.Time
	JoiningDate time.Time
	Today       time.Time
	Records     []attendance.DailyRecord
	Leaves      []leave.Request
	Permissions []permission.Request
	Holidays    []holiday.PaidHoliday
}

func (in summaryInput) approvedLeaves() []leave.Request {
	var approved []leave.Request
	for _, lv := range in.Leaves {
		if lv.Status == leave.StatusApproved {
			approved = append(approved, lv)
		}
	}
	return approved
}

func (in summaryInput) approvedPermissions() []permission.Request {
	var approved []permission.Request
	for _, p := range in.Permissions {
		if p.Status == permission.StatusApproved {
			approved = append(approved, p)
		}
	}
	return approved
}

func (in summaryInput) recordsByDay() map[string]attendance.DailyRecord {
	byDay := make(map[string]attendance.DailyRecord, len(in.Records))
	for _, rec := range in.Records {
		byDay[rec.Date.Format("2006-01-02")] = rec
	}
	return byDay
}

// computeSummary rolls one employee's date range up into the twelve
// summary metrics.
func computeSummary(in summaryInput) report.SummaryMetrics {
	var m report.SummaryMetrics

	start := truncateToDay(in.Start)
	end := truncateToDay(in.End)
	today := truncateToDay(in.Today)
	joining := truncateToDay(in.JoiningDate)
	byDay := in.recordsByDay()

	m.TotalDays = int(end.Sub(start).Hours()/24) + 1

	// Present and incomplete counts come straight off the records
	for _, rec := range in.Records {
		if rec.HasAttendance() ||
			rec.Status == attendance.StatusPresent ||
			rec.Status == attendance.StatusHalfDay ||
			rec.Status == attendance.StatusPartial {
			m.PresentDays++
		}
		if rec.IsIncompleteDay {
			m.IncompleteDays++
		}
	}

	// Leave buckets, clipped to the overlap with the range
	for _, lv := range in.Leaves {
		days := overlapDays(lv.StartDate, lv.EndDate, start, end)
		if days <= 0 {
			continue
		}
		switch leave.BucketFor(lv.LeaveType) {
		case leave.BucketUnpaid:
			m.UnpaidLeaveDays += float64(days)
		case leave.BucketPaid:
			m.PaidLeaveDays += float64(days)
		default:
			m.AnnualLeaveDays += float64(days)
		}
	}

	// Weekday paid-holiday days count as paid leave
	for _, h := range in.Holidays {
		for day := maxDay(truncateToDay(h.StartDate), start); !day.After(minDay(truncateToDay(h.LastDate()), end)); day = day.AddDate(0, 0, 1) {
			if wd := day.Weekday(); wd >= time.Monday && wd <= time.Friday {
				m.PaidLeaveDays++
			}
		}
	}

	for _, p := range in.Permissions {
		m.PermissionHours += p.OverlapHours(start, end)
	}
	m.PermissionHours = round1(m.PermissionHours)

	// Day-off arithmetic over Fridays and Saturdays
	dayOffCandidates := 0
	dayOffUsed := 0
	leavesForCoverage := in.Leaves
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if wd != time.Friday && wd != time.Saturday {
			continue
		}
		dayOffCandidates++

		rec, hasRec := byDay[day.Format("2006-01-02")]
		worked := hasRec && rec.HasAttendance()
		if worked || leaveCovers(leavesForCoverage, day) || holidayCovers(in.Holidays, day) {
			dayOffUsed++
		}
	}
	m.DayOffDays = dayOffCandidates - dayOffUsed
	if m.DayOffDays < 0 {
		m.DayOffDays = 0
	}

	// Absent: working weekdays (Mon-Thu) with no coverage of any kind
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd < time.Monday || wd > time.Thursday {
			continue
		}
		if day.Before(joining) || day.After(today) {
			continue
		}
		rec, hasRec := byDay[day.Format("2006-01-02")]
		if hasRec && rec.HasAttendance() {
			continue
		}
		if leaveCovers(in.Leaves, day) || holidayCovers(in.Holidays, day) || permissionTouches(in.Permissions, day) {
			continue
		}
		m.AbsentDays++
	}

	// Extra time accrues per day through the calendar resolver
	rangeData := calendar.RangeData{
		JoiningDate: joining,
		Today:       today,
		Records:     byDay,
		Leaves:      in.approvedLeaves(),
		Permissions: in.approvedPermissions(),
		Holidays:    in.Holidays,
	}
	extra := 0.0
	for _, dayCtx := range calendar.ResolveRange(start, end, rangeData) {
		if dayCtx.HasExtraTime {
			extra += dayCtx.ExtraTimeHours
		}
	}
	m.ExtraTimeHours = round1(extra)

	m.TotalWorkingDays = float64(m.DayOffDays) + float64(m.PresentDays) + m.AnnualLeaveDays + m.PaidLeaveDays
	if m.TotalWorkingDays > 0 {
		m.AttendancePercentage = round1(float64(m.PresentDays) / m.TotalWorkingDays * 100)
	}

	return m
}

func leaveCovers(leaves []leave.Request, day time.Time) bool {
	for _, lv := range leaves {
		if lv.Covers(day) {
			return true
		}
	}
	return false
}

func holidayCovers(holidays []holiday.PaidHoliday, day time.Time) bool {
	for _, h := range holidays {
		if h.Covers(day) {
			return true
		}
	}
	return false
}

func permissionTouches(permissions []permission.Request, day time.Time) bool {
	for _, p := range permissions {
		if p.CoversDate(day) {
			return true
		}
	}
	return false
}

// overlapDays counts the calendar days of [aStart, aEnd] ∩ [bStart, bEnd].
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	from := maxDay(truncateToDay(aStart), bStart)
	to := minDay(truncateToDay(aEnd), bEnd)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
