package postgresql

import (
	"context"
	"encoding/json"

	"github.com/absenta/attendance-backend-go/internal/domain/activity"
	"github.com/absenta/attendance-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Create(ctx context.Context, log activity.Log) error {
	q := GetQuerier(ctx, r.db)

	details, err := json.Marshal(log.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activity_logs (id, user_id, actor_id, action, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err = q.Exec(ctx, query,
		log.ID, log.UserID, log.ActorID, log.Action, log.ResourceType, log.ResourceID, details,
	)
	return err
}
