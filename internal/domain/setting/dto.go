package setting

import (
	"github.com/absenta/attendance-backend-go/internal/pkg/validator"
)

type UpdateOfficeLocationRequest struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Address         string  `json:"address"`
	RadiusMeters    float64 `json:"radius_meters"`
	ToleranceMeters float64 `json:"tolerance_meters"`
}

func (r *UpdateOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if r.ToleranceMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance_meters",
			Message: "tolerance_meters must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkScheduleRequest struct {
	CheckInStart          string  `json:"check_in_start"`
	CheckInEnd            string  `json:"check_in_end"`
	CheckOutStart         string  `json:"check_out_start"`
	CheckOutEnd           string  `json:"check_out_end"`
	CheckInWindowEnabled  bool    `json:"check_in_window_enabled"`
	CheckOutWindowEnabled bool    `json:"check_out_window_enabled"`
	StandardCheckIn       string  `json:"standard_check_in"`
	StandardShiftHours    float64 `json:"standard_shift_hours"`
	MinWorkHours          float64 `json:"work_hours_min"`
	MaxWorkHours          float64 `json:"work_hours_max"`
	LateToleranceMinutes  int     `json:"late_tolerance"`
}

// Schedule converts the request into a WorkSchedule, or returns validation
// errors for malformed clock times and inconsistent thresholds.
func (r *UpdateWorkScheduleRequest) Schedule() (WorkSchedule, error) {
	var errs validator.ValidationErrors

	parse := func(field, value string) ClockTime {
		ct, err := ParseClockTime(value)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a clock time in HH:MM format",
			})
		}
		return ct
	}

	ws := WorkSchedule{
		CheckInStart:          parse("check_in_start", r.CheckInStart),
		CheckInEnd:            parse("check_in_end", r.CheckInEnd),
		CheckOutStart:         parse("check_out_start", r.CheckOutStart),
		CheckOutEnd:           parse("check_out_end", r.CheckOutEnd),
		CheckInWindowEnabled:  r.CheckInWindowEnabled,
		CheckOutWindowEnabled: r.CheckOutWindowEnabled,
		StandardCheckIn:       parse("standard_check_in", r.StandardCheckIn),
		StandardShiftHours:    r.StandardShiftHours,
		MinWorkHours:          r.MinWorkHours,
		MaxWorkHours:          r.MaxWorkHours,
		LateToleranceMinutes:  r.LateToleranceMinutes,
	}

	if len(errs) == 0 {
		if ws.CheckInStart.Minutes() >= ws.CheckInEnd.Minutes() {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_start",
				Message: "check_in_start must be before check_in_end",
			})
		}
		if ws.CheckOutStart.Minutes() >= ws.CheckOutEnd.Minutes() {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_start",
				Message: "check_out_start must be before check_out_end",
			})
		}
	}

	if r.StandardShiftHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_shift_hours",
			Message: "standard_shift_hours must be greater than 0",
		})
	}

	if r.MinWorkHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours_min",
			Message: "work_hours_min must not be negative",
		})
	}

	if r.MaxWorkHours <= r.MinWorkHours {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours_max",
			Message: "work_hours_max must be greater than work_hours_min",
		})
	}

	if r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_tolerance",
			Message: "late_tolerance must not be negative",
		})
	}

	if len(errs) > 0 {
		return WorkSchedule{}, errs
	}

	return ws, nil
}

type UpdateGeofencingRequest struct {
	Enabled       bool `json:"enabled"`
	BlocksCheckIn bool `json:"blocks_check_in"`
}
