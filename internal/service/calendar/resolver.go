// Package calendar resolves what a single calendar day means for an
// employee: joined yet, future, holiday, weekend day off, leave,
// permission, present, or absent. The precedence order is fixed and
// every report surface goes through it.
package calendar

import (
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/holiday"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
)

// StandardWorkdayHours is the baseline against which extra time accrues.
const StandardWorkdayHours = 9.0

// Kind is the resolved classification of one calendar day.
type Kind string

const (
	KindNotYetJoined   Kind = "not_yet_joined"
	KindFutureDate     Kind = "future_date"
	KindHoliday        Kind = "holiday"
	KindHolidayPresent Kind = "holiday_present"
	KindDayOff         Kind = "day_off"
	KindDayOffPresent  Kind = "day_off_present"
	KindLeave          Kind = "leave"
	KindPermission     Kind = "permission"
	KindPresent        Kind = "present"
	KindAbsent         Kind = "absent"
)

// DayContext is the resolved view of one day.
type DayContext struct {
	Date   time.Time
	Kind   Kind
	Label  string
	Record *attendance.DailyRecord
	// ExtraTimeHours is worked hours minus the 9-hour standard; it is
	// never clamped and may be negative. HasExtraTime reports whether
	// the day participates in extra-time accrual at all.
	ExtraTimeHours float64
	HasExtraTime   bool
}

// RangeData bundles everything needed to resolve days in a range without
// further queries. Leaves and Permissions must be approved entries only.
type RangeData struct {
	JoiningDate time.Time
	Today       time.Time
	Records     map[string]attendance.DailyRecord
	Leaves      []leave.Request
	Permissions []permission.Request
	Holidays    []holiday.PaidHoliday
}

func (d RangeData) recordFor(day time.Time) *attendance.DailyRecord {
	if rec, ok := d.Records[dayKey(day)]; ok {
		return &rec
	}
	return nil
}

func (d RangeData) leaveFor(day time.Time) *leave.Request {
	for i := range d.Leaves {
		if d.Leaves[i].Covers(day) {
			return &d.Leaves[i]
		}
	}
	return nil
}

func (d RangeData) permissionFor(day time.Time) *permission.Request {
	for i := range d.Permissions {
		if d.Permissions[i].CoversDate(day) {
			return &d.Permissions[i]
		}
	}
	return nil
}

func (d RangeData) holidayFor(day time.Time) *holiday.PaidHoliday {
	for i := range d.Holidays {
		if d.Holidays[i].Covers(day) {
			return &d.Holidays[i]
		}
	}
	return nil
}

// Resolve classifies one day using the fixed precedence order.
func Resolve(day time.Time, data RangeData) DayContext {
	day = truncateToDay(day)
	ctx := DayContext{Date: day}

	if day.Before(truncateToDay(data.JoiningDate)) {
		ctx.Kind = KindNotYetJoined
		return ctx
	}
	if day.After(truncateToDay(data.Today)) {
		ctx.Kind = KindFutureDate
		return ctx
	}

	record := data.recordFor(day)

	if h := data.holidayFor(day); h != nil {
		ctx.Label = h.Description
		if record != nil && record.HasAttendance() {
			ctx.Kind = KindHolidayPresent
			ctx.Record = record
		} else {
			ctx.Kind = KindHoliday
		}
		return ctx
	}

	weekday := day.Weekday()
	if weekday == time.Friday || weekday == time.Saturday {
		if record != nil && record.HasAttendance() {
			ctx.Kind = KindDayOffPresent
			ctx.Record = record
			if !record.IsIncompleteDay && data.permissionFor(day) == nil {
				ctx.ExtraTimeHours = record.WorkedHours() - StandardWorkdayHours
				ctx.HasExtraTime = true
			}
		} else {
			ctx.Kind = KindDayOff
		}
		return ctx
	}

	if lv := data.leaveFor(day); lv != nil {
		ctx.Kind = KindLeave
		ctx.Label = lv.LeaveType
		ctx.Record = record
		return ctx
	}
	if data.permissionFor(day) != nil {
		ctx.Kind = KindPermission
		ctx.Record = record
		return ctx
	}
	if record != nil && record.HasAttendance() {
		ctx.Kind = KindPresent
		ctx.Record = record
		if !record.IsIncompleteDay {
			ctx.ExtraTimeHours = record.WorkedHours() - StandardWorkdayHours
			ctx.HasExtraTime = true
		}
		return ctx
	}

	ctx.Kind = KindAbsent
	return ctx
}

// ResolveRange materializes one DayContext per day of the inclusive range.
func ResolveRange(start, end time.Time, data RangeData) []DayContext {
	var contexts []DayContext
	for day := truncateToDay(start); !day.After(truncateToDay(end)); day = day.AddDate(0, 0, 1) {
		contexts = append(contexts, Resolve(day, data))
	}
	return contexts
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
