package mapper

import (
	"music-match-be/internal/entity"
	"music-match-be/internal/model"
)

type SwipeMapper struct{}

func NewSwipeMapper() *SwipeMapper {
	return &SwipeMapper{}
}

func (m *SwipeMapper) ToEntity(e *model.SwipeEvent) *entity.SwipeEvent {
	if e == nil {
		return nil
	}
	return &entity.SwipeEvent{
		Id:        e.Id,
		Seq:       e.Seq,
		Username:  e.Username,
		TrackId:   e.TrackId,
		SessionId: e.SessionId,
		Direction: entity.SwipeDirection(e.Direction),
		Source:    e.Source,
		Phase:     e.Phase,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SwipeMapper) ToModel(e *entity.SwipeEvent) *model.SwipeEvent {
	if e == nil {
		return nil
	}
	return &model.SwipeEvent{
		Id:        e.Id,
		Seq:       e.Seq,
		Username:  e.Username,
		TrackId:   e.TrackId,
		SessionId: e.SessionId,
		Direction: string(e.Direction),
		Source:    e.Source,
		Phase:     e.Phase,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SwipeMapper) ToEntities(events []*model.SwipeEvent) []*entity.SwipeEvent {
	entities := make([]*entity.SwipeEvent, len(events))
	for i, e := range events {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
