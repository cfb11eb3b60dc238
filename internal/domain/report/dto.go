package report

import (
	"github.com/absenta/attendance-backend-go/internal/pkg/validator"
)

const (
	TypeDaily = "daily"
	TypeUser  = "user"
)

type AttendanceReportFilter struct {
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	UserID     *string `json:"user_id,omitempty"`
	Department *string `json:"department,omitempty"`
	Type       string  `json:"type"`
}

func (f *AttendanceReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type == "" {
		f.Type = TypeDaily
	}
	if !validator.IsInSlice(f.Type, []string{TypeDaily, TypeUser}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be daily or user",
		})
	}

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "must be a date in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must be a date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserSummary aggregates one user's attendance over the report range.
type UserSummary struct {
	UserID               string   `json:"user_id"`
	UserName             string   `json:"user_name"`
	Department           *string  `json:"department,omitempty"`
	TotalDays            int      `json:"total_days"`
	PresentDays          int      `json:"present_days"`
	LateDays             int      `json:"late_days"`
	HalfDays             int      `json:"half_days"`
	AbsentDays           int      `json:"absent_days"`
	OutsideGeofenceDays  int      `json:"outside_geofence_days"`
	TotalWorkHours       float64  `json:"total_work_hours"`
	TotalOvertimeHours   float64  `json:"total_overtime_hours"`
	AverageWorkHours     float64  `json:"average_work_hours"`
	AttendancePercentage float64  `json:"attendance_percentage"`
}

// DailySummary aggregates all users' attendance per day.
type DailySummary struct {
	Date                 string  `json:"date"`
	Total                int     `json:"total"`
	PresentCount         int     `json:"present_count"`
	LateCount            int     `json:"late_count"`
	HalfDayCount         int     `json:"half_day_count"`
	AbsentCount          int     `json:"absent_count"`
	OutsideGeofenceCount int     `json:"outside_geofence_count"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type AttendanceReportResponse struct {
	Type           string         `json:"type"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	GeneratedAt    string         `json:"generated_at"`
	UserSummaries  []UserSummary  `json:"user_summaries,omitempty"`
	DailySummaries []DailySummary `json:"daily_summaries,omitempty"`
}
