package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrOutsideShiftWindow = errors.New("outside the allowed time window")
	ErrInvalidLocation    = errors.New("location data is missing or malformed")
	ErrOutsideGeofence    = errors.New("you are outside the allowed office area")

	// Check-out errors
	ErrNotCheckedIn          = errors.New("no open check-in found for today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrUserNotActive  = errors.New("target user is not active")
)
