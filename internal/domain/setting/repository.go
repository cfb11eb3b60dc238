package setting

import (
	"context"
	"encoding/json"
)

// SettingRepository is the key/value settings store. A missing key returns
// ErrSettingNotFound; typed fallbacks live on the service, not here.
type SettingRepository interface {
	// Get retrieves a setting row by key
	Get(ctx context.Context, key string) (Setting, error)

	// Upsert creates or replaces the value stored under key
	Upsert(ctx context.Context, key string, value json.RawMessage, description string, isPublic bool) error
}
