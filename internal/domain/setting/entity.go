package setting

import (
	"encoding/json"
	"fmt"
	"time"
)

// Setting keys known to the application.
const (
	KeyOfficeLocation = "office_location"
	KeyWorkSchedule   = "work_schedule"
	KeyGeofencing     = "geofencing"
)

// Setting is one row of the key/value settings store. Value holds the raw
// JSON document for the key; typed accessors live on the service.
type Setting struct {
	Key         string
	Value       json.RawMessage
	Description *string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClockTime is a time-of-day without a date, serialized as "15:04".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" in 24-hour form.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes returns the clock time as minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// OfficeLocation is the geofence configuration: the office center, the
// allowed radius, and the maximum GPS accuracy a reading may carry.
type OfficeLocation struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Address         string  `json:"address"`
	RadiusMeters    float64 `json:"radius_meters"`
	ToleranceMeters float64 `json:"tolerance_meters"`
}

// WorkSchedule configures the allowed check-in/check-out clock windows and
// the thresholds the attendance calculator works with.
type WorkSchedule struct {
	CheckInStart          ClockTime `json:"check_in_start"`
	CheckInEnd            ClockTime `json:"check_in_end"`
	CheckOutStart         ClockTime `json:"check_out_start"`
	CheckOutEnd           ClockTime `json:"check_out_end"`
	CheckInWindowEnabled  bool      `json:"check_in_window_enabled"`
	CheckOutWindowEnabled bool      `json:"check_out_window_enabled"`
	StandardCheckIn       ClockTime `json:"standard_check_in"`
	StandardShiftHours    float64   `json:"standard_shift_hours"`
	MinWorkHours          float64   `json:"work_hours_min"`
	MaxWorkHours          float64   `json:"work_hours_max"`
	LateToleranceMinutes  int       `json:"late_tolerance"`
}

// Geofencing toggles location enforcement. When BlocksCheckIn is false a
// check-in outside the fence is recorded with an outside_geofence status
// for review instead of being rejected.
type Geofencing struct {
	Enabled       bool `json:"enabled"`
	BlocksCheckIn bool `json:"blocks_check_in"`
}

// DefaultOfficeLocation is the fallback when no office_location row exists.
func DefaultOfficeLocation() OfficeLocation {
	return OfficeLocation{
		Latitude:        -6.2088,
		Longitude:       106.8456,
		Address:         "Jakarta, Indonesia",
		RadiusMeters:    100,
		ToleranceMeters: 10,
	}
}

// DefaultWorkSchedule is the fallback when no work_schedule row exists.
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		CheckInStart:          ClockTime{Hour: 6},
		CheckInEnd:            ClockTime{Hour: 10},
		CheckOutStart:         ClockTime{Hour: 14},
		CheckOutEnd:           ClockTime{Hour: 22},
		CheckInWindowEnabled:  true,
		CheckOutWindowEnabled: true,
		StandardCheckIn:       ClockTime{Hour: 9},
		StandardShiftHours:    8,
		MinWorkHours:          4,
		MaxWorkHours:          12,
		LateToleranceMinutes:  15,
	}
}

// DefaultGeofencing is the fallback when no geofencing row exists.
func DefaultGeofencing() Geofencing {
	return Geofencing{
		Enabled:       true,
		BlocksCheckIn: false,
	}
}
