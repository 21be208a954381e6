package contract

import (
	"context"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/specification"
)

// SwipeRepository is append-only: events are never updated or deleted.
type SwipeRepository interface {
	Append(ctx context.Context, event *entity.SwipeEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SwipeEvent, error)
	SwipedTrackIds(ctx context.Context, username string) (map[string]bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
