package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/attendance"
	"github.com/veritime/attendance-backend-go/internal/domain/leave"
	"github.com/veritime/attendance-backend-go/internal/domain/permission"
	"github.com/veritime/attendance-backend-go/internal/domain/scan"
)

const (
	presentThresholdHours = 9.0
	halfDayThresholdHours = 4.0
)

// buildDailyRecord derives the canonical record for one day from its raw
// scans and approval context. Pure: the returned events carry the derived
// fields (direction, sequence index, extra flag) to be written back.
func buildDailyRecord(
	events []scan.Event,
	approvedLeave *leave.Request,
	approvedPermission *permission.Request,
	employeeID string,
	date time.Time,
) (attendance.DailyRecord, []scan.Event) {
	ordered := make([]scan.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	for i := range ordered {
		// Manual entries may carry an explicit direction; everything else
		// gets the time-of-day heuristic.
		if !(ordered[i].IsManual && ordered[i].Direction.Valid()) {
			ordered[i].Direction = scan.Classify(ordered[i].Timestamp)
		}
		ordered[i].SequenceIndex = i + 1
		ordered[i].IsExtraScan = i+1 > 2
	}

	var (
		firstCheckIn     *time.Time
		lastCheckOut     *time.Time
		openCheckIn      *time.Time
		totalMinutes     int
		pairCount        int
		hasActiveCheckIn bool
	)

	for i := range ordered {
		ts := ordered[i].Timestamp
		switch ordered[i].Direction {
		case scan.DirectionCheckIn:
			if firstCheckIn == nil || ts.Before(*firstCheckIn) {
				t := ts
				firstCheckIn = &t
			}
			if openCheckIn == nil {
				t := ts
				openCheckIn = &t
			}
		case scan.DirectionCheckOut:
			if lastCheckOut == nil || ts.After(*lastCheckOut) {
				t := ts
				lastCheckOut = &t
			}
			if openCheckIn != nil {
				totalMinutes += int(ts.Sub(*openCheckIn).Minutes())
				pairCount++
				openCheckIn = nil
			}
		}
	}
	hasActiveCheckIn = openCheckIn != nil

	record := attendance.DailyRecord{
		EmployeeID:         employeeID,
		Date:               truncateToDay(date),
		FirstCheckIn:       firstCheckIn,
		LastCheckOut:       lastCheckOut,
		TotalWorkedMinutes: totalMinutes,
		EntryPairCount:     pairCount,
		IsIncompleteDay:    len(ordered) == 1,
	}

	record.Status, record.StatusReason = decideStatus(
		approvedLeave, approvedPermission,
		firstCheckIn, lastCheckOut, hasActiveCheckIn,
		float64(totalMinutes)/60.0,
	)

	return record, ordered
}

// decideStatus applies the fixed precedence: leave, permission, still in
// office, hour thresholds, lone check-in, absent.
func decideStatus(
	approvedLeave *leave.Request,
	approvedPermission *permission.Request,
	firstCheckIn, lastCheckOut *time.Time,
	hasActiveCheckIn bool,
	workedHours float64,
) (attendance.DayStatus, *string) {
	if approvedLeave != nil {
		reason := fmt.Sprintf("approved leave: %s", approvedLeave.LeaveType)
		return attendance.StatusLeave, &reason
	}
	if approvedPermission != nil {
		reason := "approved permission"
		if approvedPermission.Reason != nil && *approvedPermission.Reason != "" {
			reason = fmt.Sprintf("approved permission: %s", *approvedPermission.Reason)
		}
		return attendance.StatusPermission, &reason
	}
	if hasActiveCheckIn {
		return attendance.StatusInOffice, nil
	}
	if firstCheckIn != nil && lastCheckOut != nil {
		switch {
		case workedHours >= presentThresholdHours:
			return attendance.StatusPresent, nil
		case workedHours >= halfDayThresholdHours:
			return attendance.StatusHalfDay, nil
		default:
			return attendance.StatusPartial, nil
		}
	}
	if firstCheckIn != nil {
		return attendance.StatusInOffice, nil
	}
	return attendance.StatusAbsent, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
