package activity

import "context"

type ActivityRepository interface {
	// Create appends an audit log row
	Create(ctx context.Context, log Log) error
}
