package activity

import "time"

// Log is one append-only audit row. ActorID differs from UserID when a
// manager or admin performs the action on the user's behalf.
type Log struct {
	ID           string
	UserID       string
	ActorID      *string
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
	CreatedAt    time.Time
}

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"

	ResourceAttendanceRecord = "attendance_record"
)
