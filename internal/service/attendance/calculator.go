package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/pkg/geo"
)

// CheckInDerivation is the calculator output for a check-in event.
type CheckInDerivation struct {
	LateMinutes    int
	Status         attendance.Status
	WithinGeofence bool
}

// FinalDerivation is the calculator output for a completed day.
type FinalDerivation struct {
	WorkHours     float64
	OvertimeHours float64
	LateMinutes   int
	Status        attendance.Status
}

// LateMinutes returns the whole minutes between the schedule's standard
// start time (on checkInTime's calendar day) and the actual check-in,
// floored at zero.
func LateMinutes(checkInTime time.Time, ws setting.WorkSchedule) int {
	standard := time.Date(
		checkInTime.Year(), checkInTime.Month(), checkInTime.Day(),
		ws.StandardCheckIn.Hour, ws.StandardCheckIn.Minute, 0, 0,
		checkInTime.Location(),
	)

	mins := int(math.Round(checkInTime.Sub(standard).Minutes()))
	if mins < 0 {
		return 0
	}
	return mins
}

// DeriveCheckInStatus classifies a check-in event. A missing location sample
// counts as outside the fence (fail closed); with geofencing disabled every
// sample passes. Status precedence: outside_geofence, then late, then present.
func DeriveCheckInStatus(
	checkInTime time.Time,
	sample *attendance.LocationPayload,
	ws setting.WorkSchedule,
	fence geo.Fence,
	geofenceEnabled bool,
) CheckInDerivation {
	within := true
	if geofenceEnabled {
		within = sample != nil && geo.WithinFence(sample.Latitude, sample.Longitude, sample.Accuracy, fence)
	}

	late := LateMinutes(checkInTime, ws)

	status := attendance.StatusPresent
	switch {
	case !within:
		status = attendance.StatusOutsideGeofence
	case late > ws.LateToleranceMinutes:
		status = attendance.StatusLate
	}

	return CheckInDerivation{
		LateMinutes:    late,
		Status:         status,
		WithinGeofence: within,
	}
}

// DeriveFinalStatus computes work hours, overtime, and the closing status for
// a completed day. Late minutes are recomputed from the same check-in time,
// so closing a record never changes its lateness. Status precedence:
// half_day, then late, then present.
func DeriveFinalStatus(checkInTime, checkOutTime time.Time, ws setting.WorkSchedule) (FinalDerivation, error) {
	if !checkOutTime.After(checkInTime) {
		return FinalDerivation{}, attendance.ErrCheckOutBeforeCheckIn
	}

	workHours := round2(checkOutTime.Sub(checkInTime).Hours())
	overtime := round2(math.Max(0, workHours-ws.StandardShiftHours))
	late := LateMinutes(checkInTime, ws)

	status := attendance.StatusPresent
	switch {
	case workHours < ws.MinWorkHours:
		status = attendance.StatusHalfDay
	case late > ws.LateToleranceMinutes:
		status = attendance.StatusLate
	}

	return FinalDerivation{
		WorkHours:     workHours,
		OvertimeHours: overtime,
		LateMinutes:   late,
		Status:        status,
	}, nil
}

// ValidateCheckInTime gates a check-in against the allowed clock window.
// The returned error names the boundary that was violated.
func ValidateCheckInTime(t time.Time, ws setting.WorkSchedule) error {
	if !ws.CheckInWindowEnabled {
		return nil
	}

	mins := t.Hour()*60 + t.Minute()
	if mins < ws.CheckInStart.Minutes() {
		return fmt.Errorf("%w: check-in is only allowed after %s", attendance.ErrOutsideShiftWindow, ws.CheckInStart)
	}
	if mins > ws.CheckInEnd.Minutes() {
		return fmt.Errorf("%w: check-in is only allowed before %s", attendance.ErrOutsideShiftWindow, ws.CheckInEnd)
	}
	return nil
}

// ValidateCheckOutTime gates a check-out against the allowed clock window.
func ValidateCheckOutTime(t time.Time, ws setting.WorkSchedule) error {
	if !ws.CheckOutWindowEnabled {
		return nil
	}

	mins := t.Hour()*60 + t.Minute()
	if mins < ws.CheckOutStart.Minutes() {
		return fmt.Errorf("%w: check-out is only allowed after %s", attendance.ErrOutsideShiftWindow, ws.CheckOutStart)
	}
	if mins > ws.CheckOutEnd.Minutes() {
		return fmt.Errorf("%w: check-out is only allowed before %s", attendance.ErrOutsideShiftWindow, ws.CheckOutEnd)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
