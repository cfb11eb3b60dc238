package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/activity"
	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/absenta/attendance-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	activityRepo   activity.ActivityRepository
	settingService setting.SettingService
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	activityRepo activity.ActivityRepository,
	settingService setting.SettingService,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		activityRepo:         activityRepo,
		settingService:       settingService,
		location:             location,
		now:                  time.Now,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return a.checkIn(ctx, userID, nil, req)
}

// CheckInFor implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckInFor(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	actorID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	target, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !target.IsActive {
		return attendance.RecordResponse{}, attendance.ErrUserNotActive
	}

	return a.checkIn(ctx, userID, &actorID, req)
}

func (a *AttendanceServiceImpl) checkIn(ctx context.Context, userID string, actorID *string, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	now := a.now().In(a.location)
	date := midnight(now)

	ws, err := a.settingService.GetWorkSchedule(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load work schedule: %w", err)
	}

	if err := ValidateCheckInTime(now, ws); err != nil {
		return attendance.RecordResponse{}, err
	}

	office, err := a.settingService.GetOfficeLocation(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load office location: %w", err)
	}

	geofencing, err := a.settingService.GetGeofencing(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load geofencing settings: %w", err)
	}

	fence := geo.Fence{
		Latitude:        office.Latitude,
		Longitude:       office.Longitude,
		RadiusMeters:    office.RadiusMeters,
		ToleranceMeters: office.ToleranceMeters,
	}

	calc := DeriveCheckInStatus(now, req.Location, ws, fence, geofencing.Enabled)

	// The default policy records an out-of-fence check-in with the
	// outside_geofence status so a manager can review it. Rejection is
	// opt-in through the geofencing settings.
	if calc.Status == attendance.StatusOutsideGeofence && geofencing.BlocksCheckIn {
		return attendance.RecordResponse{}, attendance.ErrOutsideGeofence
	}

	record := attendance.Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		CheckInTime: &now,
		LateMinutes: calc.LateMinutes,
		Status:      calc.Status,
		Notes:       req.Notes,
	}
	applyLocation(&record, req.Location, true)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	a.logActivity(ctx, userID, actorID, activity.ActionCheckIn, created, req.Location)

	return attendance.MapRecordToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return a.checkOut(ctx, userID, nil, req)
}

// CheckOutFor implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOutFor(ctx context.Context, userID string, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	actorID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := a.UserRepository.GetByID(ctx, userID); err != nil {
		return attendance.RecordResponse{}, err
	}

	return a.checkOut(ctx, userID, &actorID, req)
}

func (a *AttendanceServiceImpl) checkOut(ctx context.Context, userID string, actorID *string, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	now := a.now().In(a.location)
	date := midnight(now)

	// Re-read the open record right before the transition; the Close update
	// is additionally guarded so a concurrent close cannot be overwritten.
	record, err := a.AttendanceRepository.GetOpenByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	ws, err := a.settingService.GetWorkSchedule(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load work schedule: %w", err)
	}

	if err := ValidateCheckOutTime(now, ws); err != nil {
		return attendance.RecordResponse{}, err
	}

	calc, err := DeriveFinalStatus(record.CheckInTime.In(a.location), now, ws)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record.CheckOutTime = &now
	record.WorkHours = &calc.WorkHours
	record.OvertimeHours = &calc.OvertimeHours
	record.LateMinutes = calc.LateMinutes
	record.Status = calc.Status
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	applyLocation(&record, req.Location, false)

	if err := a.AttendanceRepository.Close(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrNotCheckedIn) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	a.logActivity(ctx, userID, actorID, activity.ActionCheckOut, record, req.Location)

	return attendance.MapRecordToResponse(record), nil
}

// GetMyRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	filter.UserID = &userID
	return a.list(ctx, filter)
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.MapRecordToResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return attendance.MapRecordToResponse(record), nil
}

// logActivity appends an audit row. Audit failures are logged, not surfaced:
// the attendance transition has already committed.
func (a *AttendanceServiceImpl) logActivity(ctx context.Context, userID string, actorID *string, action string, record attendance.Record, loc *attendance.LocationPayload) {
	details := map[string]any{
		"timestamp": a.now().In(a.location).Format(time.RFC3339),
		"status":    string(record.Status),
	}
	if loc != nil {
		details["location"] = map[string]any{
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
			"accuracy":  loc.Accuracy,
			"address":   loc.Address,
		}
	}

	err := a.activityRepo.Create(ctx, activity.Log{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActorID:      actorID,
		Action:       action,
		ResourceType: activity.ResourceAttendanceRecord,
		ResourceID:   record.ID,
		Details:      details,
	})
	if err != nil {
		slog.Error("failed to write activity log", "action", action, "user_id", userID, "error", err)
	}
}

func applyLocation(record *attendance.Record, loc *attendance.LocationPayload, checkIn bool) {
	if loc == nil {
		return
	}

	lat, lon, acc := loc.Latitude, loc.Longitude, loc.Accuracy
	if checkIn {
		record.CheckInLatitude = &lat
		record.CheckInLongitude = &lon
		record.CheckInAccuracy = &acc
		record.CheckInAddress = loc.Address
	} else {
		record.CheckOutLatitude = &lat
		record.CheckOutLongitude = &lon
		record.CheckOutAccuracy = &acc
		record.CheckOutAddress = loc.Address
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
