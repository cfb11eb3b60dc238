package attendance

import (
	"testing"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, jakarta)
}

func officeFence() geo.Fence {
	office := setting.DefaultOfficeLocation()
	return geo.Fence{
		Latitude:        office.Latitude,
		Longitude:       office.Longitude,
		RadiusMeters:    office.RadiusMeters,
		ToleranceMeters: office.ToleranceMeters,
	}
}

func sampleAt(lat, lon, accuracy float64) *attendance.LocationPayload {
	return &attendance.LocationPayload{
		Latitude:  lat,
		Longitude: lon,
		Accuracy:  accuracy,
	}
}

func TestLateMinutes(t *testing.T) {
	ws := setting.DefaultWorkSchedule()

	tests := []struct {
		name    string
		checkIn time.Time
		want    int
	}{
		{"exactly on time", at(9, 0), 0},
		{"early check-in floors at zero", at(7, 30), 0},
		{"one minute late", at(9, 1), 1},
		{"within tolerance", at(9, 15), 15},
		{"just past tolerance", at(9, 16), 16},
		{"an hour late", at(10, 0), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LateMinutes(tt.checkIn, ws))
		})
	}
}

func TestDeriveCheckInStatus(t *testing.T) {
	ws := setting.DefaultWorkSchedule()
	fence := officeFence()
	inside := sampleAt(fence.Latitude, fence.Longitude, 5)

	t.Run("on time inside fence is present", func(t *testing.T) {
		got := DeriveCheckInStatus(at(8, 55), inside, ws, fence, true)
		assert.Equal(t, attendance.StatusPresent, got.Status)
		assert.Equal(t, 0, got.LateMinutes)
		assert.True(t, got.WithinGeofence)
	})

	t.Run("late within tolerance stays present", func(t *testing.T) {
		got := DeriveCheckInStatus(at(9, 10), inside, ws, fence, true)
		assert.Equal(t, attendance.StatusPresent, got.Status)
		assert.Equal(t, 10, got.LateMinutes)
	})

	t.Run("late past tolerance", func(t *testing.T) {
		got := DeriveCheckInStatus(at(9, 45), inside, ws, fence, true)
		assert.Equal(t, attendance.StatusLate, got.Status)
		assert.Equal(t, 45, got.LateMinutes)
	})

	t.Run("outside fence wins over late", func(t *testing.T) {
		far := sampleAt(fence.Latitude+0.05, fence.Longitude, 5)
		got := DeriveCheckInStatus(at(9, 45), far, ws, fence, true)
		assert.Equal(t, attendance.StatusOutsideGeofence, got.Status)
		assert.Equal(t, 45, got.LateMinutes)
		assert.False(t, got.WithinGeofence)
	})

	t.Run("poor accuracy fails the fence", func(t *testing.T) {
		blurry := sampleAt(fence.Latitude, fence.Longitude, fence.ToleranceMeters+5)
		got := DeriveCheckInStatus(at(8, 55), blurry, ws, fence, true)
		assert.Equal(t, attendance.StatusOutsideGeofence, got.Status)
	})

	t.Run("missing sample fails closed", func(t *testing.T) {
		got := DeriveCheckInStatus(at(8, 55), nil, ws, fence, true)
		assert.Equal(t, attendance.StatusOutsideGeofence, got.Status)
		assert.False(t, got.WithinGeofence)
	})

	t.Run("geofencing disabled passes anything", func(t *testing.T) {
		got := DeriveCheckInStatus(at(8, 55), nil, ws, fence, false)
		assert.Equal(t, attendance.StatusPresent, got.Status)
		assert.True(t, got.WithinGeofence)
	})
}

func TestDeriveFinalStatus(t *testing.T) {
	ws := setting.DefaultWorkSchedule()

	tests := []struct {
		name         string
		checkIn      time.Time
		checkOut     time.Time
		wantHours    float64
		wantOvertime float64
		wantStatus   attendance.Status
	}{
		{"full day on time", at(9, 0), at(17, 0), 8, 0, attendance.StatusPresent},
		{"full day with overtime", at(8, 30), at(19, 0), 10.5, 2.5, attendance.StatusPresent},
		{"late arrival full shift", at(9, 45), at(18, 0), 8.25, 0.25, attendance.StatusLate},
		{"short day is half day", at(9, 0), at(12, 30), 3.5, 0, attendance.StatusHalfDay},
		{"half day wins over late", at(10, 0), at(13, 0), 3, 0, attendance.StatusHalfDay},
		{"work hours rounded to two decimals", at(9, 0), at(17, 10), 8.17, 0.17, attendance.StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveFinalStatus(tt.checkIn, tt.checkOut, ws)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantHours, got.WorkHours, 1e-9)
			assert.InDelta(t, tt.wantOvertime, got.OvertimeHours, 1e-9)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		_, err := DeriveFinalStatus(at(17, 0), at(9, 0), ws)
		assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	})

	t.Run("check-out equal to check-in is rejected", func(t *testing.T) {
		_, err := DeriveFinalStatus(at(9, 0), at(9, 0), ws)
		assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	})

	t.Run("zero tolerance marks any lateness", func(t *testing.T) {
		strict := setting.DefaultWorkSchedule()
		strict.LateToleranceMinutes = 0

		got, err := DeriveFinalStatus(at(9, 5), at(17, 30), strict)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, got.Status)
		assert.Equal(t, 5, got.LateMinutes)
	})

	t.Run("closing never changes late minutes", func(t *testing.T) {
		checkIn := at(9, 40)
		pre := DeriveCheckInStatus(checkIn, nil, ws, officeFence(), false)
		post, err := DeriveFinalStatus(checkIn, at(18, 0), ws)
		require.NoError(t, err)
		assert.Equal(t, pre.LateMinutes, post.LateMinutes)
	})
}

func TestValidateCheckInTime(t *testing.T) {
	ws := setting.DefaultWorkSchedule()

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"window start is inclusive", at(6, 0), false},
		{"window end is inclusive", at(10, 0), false},
		{"before window", at(5, 59), true},
		{"after window", at(10, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCheckInTime(tt.at, ws)
			if tt.wantErr {
				assert.ErrorIs(t, err, attendance.ErrOutsideShiftWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("disabled window allows any time", func(t *testing.T) {
		open := setting.DefaultWorkSchedule()
		open.CheckInWindowEnabled = false
		assert.NoError(t, ValidateCheckInTime(at(3, 0), open))
	})
}

func TestValidateCheckOutTime(t *testing.T) {
	ws := setting.DefaultWorkSchedule()

	assert.NoError(t, ValidateCheckOutTime(at(14, 0), ws))
	assert.NoError(t, ValidateCheckOutTime(at(22, 0), ws))
	assert.ErrorIs(t, ValidateCheckOutTime(at(13, 59), ws), attendance.ErrOutsideShiftWindow)
	assert.ErrorIs(t, ValidateCheckOutTime(at(22, 1), ws), attendance.ErrOutsideShiftWindow)

	open := setting.DefaultWorkSchedule()
	open.CheckOutWindowEnabled = false
	assert.NoError(t, ValidateCheckOutTime(at(2, 0), open))
}
