package attendance

import (
	"time"

	"github.com/absenta/attendance-backend-go/internal/pkg/validator"
)

// LocationPayload is the geolocation sample a client attaches to a check-in
// or check-out. The address arrives pre-resolved by the client; the server
// stores it opaquely and never geocodes.
type LocationPayload struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
	Address   *string  `json:"address,omitempty"`
	Timestamp string   `json:"timestamp"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
}

func (l *LocationPayload) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidLatitude(l.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(l.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if l.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "location.accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if !validator.IsEmpty(l.Timestamp) {
		if _, ok := validator.IsValidDateTime(l.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "location.timestamp",
				Message: "timestamp must be an ISO8601 datetime",
			})
		}
	}

	return errs
}

type CheckInRequest struct {
	Location *LocationPayload `json:"location"`
	Notes    *string          `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	} else {
		errs = r.Location.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Location *LocationPayload `json:"location"`
	Notes    *string          `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	} else {
		errs = r.Location.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          *string  `json:"user_name,omitempty"`
	UserDepartment    *string  `json:"user_department,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckInAccuracy   *float64 `json:"check_in_accuracy,omitempty"`
	CheckInAddress    *string  `json:"check_in_address,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckOutAccuracy  *float64 `json:"check_out_accuracy,omitempty"`
	CheckOutAddress   *string  `json:"check_out_address,omitempty"`
	WorkHours         *float64 `json:"work_hours,omitempty"`
	OvertimeHours     *float64 `json:"overtime_hours,omitempty"`
	LateMinutes       int      `json:"late_minutes"`
	Status            string   `json:"status"`
	Notes             *string  `json:"notes,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type RecordFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"date", f.Date},
		{"start_date", f.StartDate},
		{"end_date", f.EndDate},
	} {
		if d.value != nil {
			if _, ok := validator.IsValidDate(*d.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: "must be a date in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status value",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// MapRecordToResponse converts a Record entity to its API shape.
func MapRecordToResponse(r Record) RecordResponse {
	format := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}

	return RecordResponse{
		ID:                r.ID,
		UserID:            r.UserID,
		UserName:          r.UserName,
		UserDepartment:    r.UserDepartment,
		Date:              r.Date.Format("2006-01-02"),
		CheckInTime:       format(r.CheckInTime),
		CheckInLatitude:   r.CheckInLatitude,
		CheckInLongitude:  r.CheckInLongitude,
		CheckInAccuracy:   r.CheckInAccuracy,
		CheckInAddress:    r.CheckInAddress,
		CheckOutTime:      format(r.CheckOutTime),
		CheckOutLatitude:  r.CheckOutLatitude,
		CheckOutLongitude: r.CheckOutLongitude,
		CheckOutAccuracy:  r.CheckOutAccuracy,
		CheckOutAddress:   r.CheckOutAddress,
		WorkHours:         r.WorkHours,
		OvertimeHours:     r.OvertimeHours,
		LateMinutes:       r.LateMinutes,
		Status:            string(r.Status),
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
}
