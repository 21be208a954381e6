package implementation

import (
	"context"
	"errors"

	"music-match-be/internal/entity"
	"music-match-be/internal/mapper"
	"music-match-be/internal/model"
	"music-match-be/internal/repository/contract"
	"music-match-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TrackMapper
}

func NewTrackRepository(db *gorm.DB) contract.TrackRepository {
	return &TrackRepositoryImpl{
		db:     db,
		mapper: mapper.NewTrackMapper(),
	}
}

func (r *TrackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TrackRepositoryImpl) Create(ctx context.Context, track *entity.Track) error {
	m := r.mapper.ToModel(track)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*track = *r.mapper.ToEntity(m)
	return nil
}

func (r *TrackRepositoryImpl) CreateInBatches(ctx context.Context, tracks []*entity.Track, batchSize int) error {
	models := make([]*model.Track, len(tracks))
	for i, t := range tracks {
		models[i] = r.mapper.ToModel(t)
	}
	// Re-imports of the same dataset must be idempotent
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, batchSize).Error
}

func (r *TrackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Track, error) {
	var m model.Track
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TrackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Track, error) {
	var models []*model.Track
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TrackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Track{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
