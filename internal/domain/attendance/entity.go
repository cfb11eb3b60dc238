package attendance

import (
	"time"
)

// Status classifies a day's attendance record. It is only ever produced by
// the calculator; callers never set it directly.
type Status string

const (
	StatusPresent         Status = "present"
	StatusLate            Status = "late"
	StatusHalfDay         Status = "half_day"
	StatusAbsent          Status = "absent"
	StatusOutsideGeofence Status = "outside_geofence"
)

// Statuses lists every valid status value, for filter validation.
func Statuses() []string {
	return []string{
		string(StatusPresent),
		string(StatusLate),
		string(StatusHalfDay),
		string(StatusAbsent),
		string(StatusOutsideGeofence),
	}
}

// Record is one user's attendance for one calendar day. A record with a
// check-in and no check-out is "open"; recording the check-out closes it.
// Date is normalized to midnight in the office timezone.
type Record struct {
	ID     string
	UserID string
	Date   time.Time

	CheckInTime      *time.Time
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInAccuracy  *float64
	CheckInAddress   *string

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutAccuracy  *float64
	CheckOutAddress   *string

	WorkHours     *float64
	OvertimeHours *float64
	LateMinutes   int
	Status        Status
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings and reports
	UserName       *string
	UserDepartment *string
}

// IsOpen reports whether the record has a check-in but no check-out yet.
func (r *Record) IsOpen() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}
