package setting

import "context"

// SettingService exposes the typed configuration documents. Reads fall back
// to the hardcoded defaults when the store has no row for the key.
type SettingService interface {
	GetOfficeLocation(ctx context.Context) (OfficeLocation, error)
	UpdateOfficeLocation(ctx context.Context, req UpdateOfficeLocationRequest) (OfficeLocation, error)

	GetWorkSchedule(ctx context.Context) (WorkSchedule, error)
	UpdateWorkSchedule(ctx context.Context, req UpdateWorkScheduleRequest) (WorkSchedule, error)

	GetGeofencing(ctx context.Context) (Geofencing, error)
	UpdateGeofencing(ctx context.Context, req UpdateGeofencingRequest) (Geofencing, error)
}
