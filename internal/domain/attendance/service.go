package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the authenticated user
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes today's open record for the authenticated user
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// CheckInFor opens today's record for another user on their behalf
	// (manager/admin). The acting user is recorded in the activity log.
	CheckInFor(ctx context.Context, userID string, req CheckInRequest) (RecordResponse, error)

	// CheckOutFor closes today's open record for another user on their behalf
	CheckOutFor(ctx context.Context, userID string, req CheckOutRequest) (RecordResponse, error)

	// GetMyRecords retrieves records for the authenticated user
	GetMyRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// ListRecords retrieves records across users (manager/admin)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// GetRecord retrieves a single record by ID
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
}
