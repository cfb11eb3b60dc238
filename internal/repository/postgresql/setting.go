package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingRepositoryImpl struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// Get implements setting.SettingRepository.
func (r *settingRepositoryImpl) Get(ctx context.Context, key string) (setting.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT key, value, description, is_public, created_at, updated_at
		FROM settings
		WHERE key = $1
	`

	var s setting.Setting
	err := q.QueryRow(ctx, query, key).Scan(
		&s.Key,
		&s.Value,
		&s.Description,
		&s.IsPublic,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, err
	}

	return s, nil
}

// Upsert implements setting.SettingRepository.
func (r *settingRepositoryImpl) Upsert(ctx context.Context, key string, value json.RawMessage, description string, isPublic bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (key, value, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			description = EXCLUDED.description,
			is_public = EXCLUDED.is_public,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, key, value, description, isPublic)
	return err
}
