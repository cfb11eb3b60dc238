package setting

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingRepo struct {
	rows map[string]setting.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{rows: make(map[string]setting.Setting)}
}

func (f *fakeSettingRepo) Get(_ context.Context, key string) (setting.Setting, error) {
	row, ok := f.rows[key]
	if !ok {
		return setting.Setting{}, setting.ErrSettingNotFound
	}
	return row, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, key string, value json.RawMessage, description string, isPublic bool) error {
	f.rows[key] = setting.Setting{Key: key, Value: value, Description: &description, IsPublic: isPublic}
	return nil
}

func TestGetOfficeLocationFallsBackToDefault(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	office, err := svc.GetOfficeLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, setting.DefaultOfficeLocation(), office)
}

func TestUpdateOfficeLocationRoundTrip(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	updated, err := svc.UpdateOfficeLocation(context.Background(), setting.UpdateOfficeLocationRequest{
		Latitude:        -7.25,
		Longitude:       112.75,
		Address:         "Surabaya branch",
		RadiusMeters:    150,
		ToleranceMeters: 20,
	})
	require.NoError(t, err)

	got, err := svc.GetOfficeLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, 150.0, got.RadiusMeters)
}

func TestUpdateOfficeLocationRejectsBadCoordinates(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo)

	_, err := svc.UpdateOfficeLocation(context.Background(), setting.UpdateOfficeLocationRequest{
		Latitude:     120,
		Longitude:    200,
		RadiusMeters: -1,
	})
	require.Error(t, err)
	assert.Empty(t, repo.rows)
}

func TestGetWorkScheduleFallsBackToDefault(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	ws, err := svc.GetWorkSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, setting.DefaultWorkSchedule(), ws)
}

func TestUpdateWorkScheduleRoundTrip(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	updated, err := svc.UpdateWorkSchedule(context.Background(), setting.UpdateWorkScheduleRequest{
		CheckInStart:          "05:30",
		CheckInEnd:            "09:30",
		CheckOutStart:         "15:00",
		CheckOutEnd:           "23:00",
		CheckInWindowEnabled:  true,
		CheckOutWindowEnabled: true,
		StandardCheckIn:       "08:30",
		StandardShiftHours:    7.5,
		MinWorkHours:          3,
		MaxWorkHours:          11,
		LateToleranceMinutes:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.CheckInStart.Hour)
	assert.Equal(t, 30, updated.CheckInStart.Minute)

	got, err := svc.GetWorkSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateWorkScheduleRejectsInvertedWindow(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	_, err := svc.UpdateWorkSchedule(context.Background(), setting.UpdateWorkScheduleRequest{
		CheckInStart:       "10:00",
		CheckInEnd:         "06:00",
		CheckOutStart:      "14:00",
		CheckOutEnd:        "22:00",
		StandardCheckIn:    "09:00",
		StandardShiftHours: 8,
		MinWorkHours:       4,
		MaxWorkHours:       12,
	})
	assert.Error(t, err)
}

func TestGeofencingRoundTrip(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo())

	g, err := svc.GetGeofencing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, setting.DefaultGeofencing(), g)

	updated, err := svc.UpdateGeofencing(context.Background(), setting.UpdateGeofencingRequest{
		Enabled:       true,
		BlocksCheckIn: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.BlocksCheckIn)

	got, err := svc.GetGeofencing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestPartialStoredDocumentKeepsDefaults(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.rows[setting.KeyWorkSchedule] = setting.Setting{
		Key:   setting.KeyWorkSchedule,
		Value: json.RawMessage(`{"late_tolerance": 5}`),
	}
	svc := NewSettingService(repo)

	ws, err := svc.GetWorkSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, ws.LateToleranceMinutes)
	assert.Equal(t, setting.DefaultWorkSchedule().CheckInStart, ws.CheckInStart)
}
