package report

// SummaryMetrics is the twelve-field aggregate produced by the report
// service for one employee over an inclusive date range. It is derived,
// never persisted, and every report or export surface consumes it
// instead of recomputing its own version.
type SummaryMetrics struct {
	TotalDays            int     `json:"total_days"`
	TotalWorkingDays     float64 `json:"total_working_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	AnnualLeaveDays      float64 `json:"annual_leave_days"`
	UnpaidLeaveDays      float64 `json:"unpaid_leave_days"`
	PaidLeaveDays        float64 `json:"paid_leave_days"`
	PermissionHours      float64 `json:"permission_hours"`
	DayOffDays           int     `json:"day_off_days"`
	IncompleteDays       int     `json:"incomplete_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	ExtraTimeHours       float64 `json:"extra_time_hours"`
}

// UserReport pairs an employee with their summary for multi-user reports.
type UserReport struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Summary      SummaryMetrics `json:"summary"`
}
