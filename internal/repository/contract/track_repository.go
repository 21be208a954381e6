package contract

import (
	"context"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/specification"
)

type TrackRepository interface {
	Create(ctx context.Context, track *entity.Track) error
	CreateInBatches(ctx context.Context, tracks []*entity.Track, batchSize int) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Track, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Track, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
