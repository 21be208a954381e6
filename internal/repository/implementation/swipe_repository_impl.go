package implementation

import (
	"context"

	"music-match-be/internal/entity"
	"music-match-be/internal/mapper"
	"music-match-be/internal/model"
	"music-match-be/internal/repository/contract"
	"music-match-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SwipeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SwipeMapper
}

func NewSwipeRepository(db *gorm.DB) contract.SwipeRepository {
	return &SwipeRepositoryImpl{
		db:     db,
		mapper: mapper.NewSwipeMapper(),
	}
}

func (r *SwipeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SwipeRepositoryImpl) Append(ctx context.Context, event *entity.SwipeEvent) error {
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *SwipeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SwipeEvent, error) {
	var models []*model.SwipeEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// SwipedTrackIds returns every track the user has ever judged, across all
// sessions. Removal tombstones do not count as judgements.
func (r *SwipeRepositoryImpl) SwipedTrackIds(ctx context.Context, username string) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.SwipeEvent{}).
		Where("username = ? AND direction IN ?", username,
			[]string{string(entity.DirectionLike), string(entity.DirectionDislike)}).
		Distinct("track_id").
		Pluck("track_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *SwipeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SwipeEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
