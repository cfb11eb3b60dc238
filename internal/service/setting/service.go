package setting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/absenta/attendance-backend-go/internal/domain/setting"
)

type SettingServiceImpl struct {
	setting.SettingRepository
}

func NewSettingService(settingRepo setting.SettingRepository) setting.SettingService {
	return &SettingServiceImpl{
		SettingRepository: settingRepo,
	}
}

// get loads and decodes the JSON document under key into dst. A missing row
// leaves dst untouched so the caller's default applies.
func (s *SettingServiceImpl) get(ctx context.Context, key string, dst any) error {
	row, err := s.SettingRepository.Get(ctx, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	if err := json.Unmarshal(row.Value, dst); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}

	return nil
}

func (s *SettingServiceImpl) put(ctx context.Context, key string, value any, description string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	if err := s.SettingRepository.Upsert(ctx, key, raw, description, true); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}

	return nil
}

// GetOfficeLocation implements setting.SettingService.
func (s *SettingServiceImpl) GetOfficeLocation(ctx context.Context) (setting.OfficeLocation, error) {
	office := setting.DefaultOfficeLocation()
	if err := s.get(ctx, setting.KeyOfficeLocation, &office); err != nil {
		return setting.OfficeLocation{}, err
	}
	return office, nil
}

// UpdateOfficeLocation implements setting.SettingService.
func (s *SettingServiceImpl) UpdateOfficeLocation(ctx context.Context, req setting.UpdateOfficeLocationRequest) (setting.OfficeLocation, error) {
	if err := req.Validate(); err != nil {
		return setting.OfficeLocation{}, err
	}

	office := setting.OfficeLocation{
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		RadiusMeters:    req.RadiusMeters,
		ToleranceMeters: req.ToleranceMeters,
	}

	if err := s.put(ctx, setting.KeyOfficeLocation, office, "Office coordinates and geofence dimensions"); err != nil {
		return setting.OfficeLocation{}, err
	}

	return office, nil
}

// GetWorkSchedule implements setting.SettingService.
func (s *SettingServiceImpl) GetWorkSchedule(ctx context.Context) (setting.WorkSchedule, error) {
	ws := setting.DefaultWorkSchedule()
	if err := s.get(ctx, setting.KeyWorkSchedule, &ws); err != nil {
		return setting.WorkSchedule{}, err
	}
	return ws, nil
}

// UpdateWorkSchedule implements setting.SettingService.
func (s *SettingServiceImpl) UpdateWorkSchedule(ctx context.Context, req setting.UpdateWorkScheduleRequest) (setting.WorkSchedule, error) {
	ws, err := req.Schedule()
	if err != nil {
		return setting.WorkSchedule{}, err
	}

	if err := s.put(ctx, setting.KeyWorkSchedule, ws, "Shift windows and work hour thresholds"); err != nil {
		return setting.WorkSchedule{}, err
	}

	return ws, nil
}

// GetGeofencing implements setting.SettingService.
func (s *SettingServiceImpl) GetGeofencing(ctx context.Context) (setting.Geofencing, error) {
	g := setting.DefaultGeofencing()
	if err := s.get(ctx, setting.KeyGeofencing, &g); err != nil {
		return setting.Geofencing{}, err
	}
	return g, nil
}

// UpdateGeofencing implements setting.SettingService.
func (s *SettingServiceImpl) UpdateGeofencing(ctx context.Context, req setting.UpdateGeofencingRequest) (setting.Geofencing, error) {
	g := setting.Geofencing{
		Enabled:       req.Enabled,
		BlocksCheckIn: req.BlocksCheckIn,
	}

	if err := s.put(ctx, setting.KeyGeofencing, g, "Geofence enforcement policy"); err != nil {
		return setting.Geofencing{}, err
	}

	return g, nil
}
