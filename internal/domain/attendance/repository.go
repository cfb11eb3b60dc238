package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the record store. The attendances table carries a
// unique index on (user_id, date); Create surfaces a unique violation as
// ErrAlreadyCheckedIn so concurrent check-ins resolve at the database, not
// in application code.
type AttendanceRepository interface {
	// Create inserts a new record. A duplicate (user_id, date) pair fails
	// with ErrAlreadyCheckedIn.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Record, error)

	// GetOpenByUserAndDate retrieves the open record (check-in without
	// check-out) for the user on the given day, or ErrNotCheckedIn.
	GetOpenByUserAndDate(ctx context.Context, userID string, date time.Time) (Record, error)

	// HasRecordForDate reports whether any record exists for the user/day.
	HasRecordForDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// Close writes the check-out fields of an open record. The update is
	// guarded by check_out_time IS NULL; a record closed in the meantime
	// fails with ErrNotCheckedIn instead of being overwritten.
	Close(ctx context.Context, record Record) error

	// List retrieves records with filters and pagination, newest first.
	// A nil filter.UserID returns records for all users.
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// ListRange retrieves all records between two dates inclusive, joined
	// with user name and department, for report generation.
	ListRange(ctx context.Context, start, end time.Time, userID *string, department *string) ([]Record, error)

	// BulkCreateAbsences inserts absent records, skipping users that already
	// have a record for the day.
	BulkCreateAbsences(ctx context.Context, records []Record) (int, error)
}
