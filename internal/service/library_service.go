package service

import (
	"context"
	"sort"
	"time"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/pkg/utils"

	"github.com/google/uuid"
)

type ILibraryService interface {
	GetLibrary(ctx context.Context, username string) (*dto.LibraryResponse, error)
	AddTrack(ctx context.Context, req *dto.AddLibraryTrackRequest) (*dto.AddLibraryTrackResponse, error)
	RemoveTrack(ctx context.Context, username, trackId string) (*dto.RemoveLibraryTrackResponse, error)

	// FoldLibrary replays the ledger and returns current members in
	// most-recently-liked order. Shared with the personality report.
	FoldLibrary(ctx context.Context, username string) ([]*entity.LibraryEntry, error)
}

type libraryService struct {
	uowFactory        unitofwork.RepositoryFactory
	trackService      ITrackService
	enrichmentService IEnrichmentService
}

func NewLibraryService(
	uowFactory unitofwork.RepositoryFactory,
	trackService ITrackService,
	enrichmentService IEnrichmentService,
) ILibraryService {
	return &libraryService{
		uowFactory:        uowFactory,
		trackService:      trackService,
		enrichmentService: enrichmentService,
	}
}

// foldState is the latest ledger state per (user, track) pair.
type foldState struct {
	direction entity.SwipeDirection
	source    string
	likedAt   time.Time
	likedSeq  int64
}

func (s *libraryService) FoldLibrary(ctx context.Context, username string) ([]*entity.LibraryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	events, err := uow.SwipeRepository().FindAll(ctx,
		specification.ByUsername{Username: username},
		specification.LedgerOrder{},
	)
	if err != nil {
		return nil, err
	}

	states := map[string]*foldState{}
	for _, event := range events {
		state, ok := states[event.TrackId]
		if !ok {
			state = &foldState{}
			states[event.TrackId] = state
		}
		state.direction = event.Direction
		if event.Direction == entity.DirectionLike {
			state.source = event.Source
			state.likedAt = event.CreatedAt
			state.likedSeq = event.Seq
		}
	}

	var memberIds []string
	for trackId, state := range states {
		if state.direction == entity.DirectionLike {
			memberIds = append(memberIds, trackId)
		}
	}
	if len(memberIds) == 0 {
		return nil, nil
	}

	tracks, err := s.trackService.GetTracksByIds(ctx, memberIds)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.LibraryEntry, 0, len(memberIds))
	for _, trackId := range memberIds {
		track, ok := tracks[trackId]
		if !ok {
			// Catalog row is gone; the ledger keeps the fact, the view skips it
			continue
		}
		state := states[trackId]
		entries = append(entries, &entity.LibraryEntry{
			TrackId: trackId,
			Track:   track,
			Source:  state.source,
			AddedAt: state.likedAt,
		})
	}

	// Ledger sequence, not wall clock, defines "most recently liked"
	sort.Slice(entries, func(i, j int) bool {
		return states[entries[i].TrackId].likedSeq > states[entries[j].TrackId].likedSeq
	})
	return entries, nil
}

func (s *libraryService) GetLibrary(ctx context.Context, username string) (*dto.LibraryResponse, error) {
	normalized := utils.NormalizeUsername(username)
	if normalized == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	entries, err := s.FoldLibrary(ctx, normalized)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LibraryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		enrichment := s.enrichmentService.Resolve(ctx, entry.Track)
		responses = append(responses, dto.LibraryEntryResponse{
			Track:   ToTrackResponse(entry.Track, enrichment),
			Source:  entry.Source,
			AddedAt: entry.AddedAt,
		})
	}

	return &dto.LibraryResponse{
		Username: normalized,
		Count:    len(responses),
		Entries:  responses,
	}, nil
}

func (s *libraryService) AddTrack(ctx context.Context, req *dto.AddLibraryTrackRequest) (*dto.AddLibraryTrackResponse, error) {
	username := utils.NormalizeUsername(req.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	track, err := s.trackService.GetTrack(ctx, req.TrackId)
	if err != nil {
		return nil, err
	}

	member, err := s.isMember(ctx, username, req.TrackId)
	if err != nil {
		return nil, err
	}
	if member {
		// Manual add is idempotent
		return &dto.AddLibraryTrackResponse{TrackId: req.TrackId, Added: false}, nil
	}

	if err := s.appendLedgerEvent(ctx, username, track, entity.DirectionLike, "manual"); err != nil {
		return nil, err
	}
	return &dto.AddLibraryTrackResponse{TrackId: req.TrackId, Added: true}, nil
}

func (s *libraryService) RemoveTrack(ctx context.Context, username, trackId string) (*dto.RemoveLibraryTrackResponse, error) {
	normalized := utils.NormalizeUsername(username)
	if normalized == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	member, err := s.isMember(ctx, normalized, trackId)
	if err != nil {
		return nil, err
	}
	if !member {
		// Removing a track that is not in the library is a no-op
		return &dto.RemoveLibraryTrackResponse{TrackId: trackId, Removed: false}, nil
	}

	track, err := s.trackService.GetTrack(ctx, trackId)
	if err != nil {
		return nil, err
	}

	if err := s.appendLedgerEvent(ctx, normalized, track, entity.DirectionRemoved, "manual"); err != nil {
		return nil, err
	}
	return &dto.RemoveLibraryTrackResponse{TrackId: trackId, Removed: true}, nil
}

func (s *libraryService) isMember(ctx context.Context, username, trackId string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	events, err := uow.SwipeRepository().FindAll(ctx,
		specification.ByUsername{Username: username},
		specification.BySwipedTrackID{TrackID: trackId},
		specification.LedgerOrder{},
	)
	if err != nil {
		return false, err
	}
	if len(events) == 0 {
		return false, nil
	}
	return events[len(events)-1].Direction == entity.DirectionLike, nil
}

// appendLedgerEvent writes a manual like or removal tombstone, keeping
// the user aggregates in step for likes (tombstones leave them alone).
func (s *libraryService) appendLedgerEvent(ctx context.Context, username string, track *entity.Track, direction entity.SwipeDirection, source string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	event := &entity.SwipeEvent{
		Id:        uuid.New(),
		Username:  username,
		TrackId:   track.Id,
		Direction: direction,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if err := uow.SwipeRepository().Append(ctx, event); err != nil {
		return err
	}

	if direction == entity.DirectionLike {
		user, err := uow.UserRepository().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			user = entity.NewUser(username, time.Now())
			user.ApplySwipe(track, true)
			if err := uow.UserRepository().Create(ctx, user); err != nil {
				return err
			}
		} else {
			user.ApplySwipe(track, true)
			user.LastActiveAt = time.Now()
			if err := uow.UserRepository().Update(ctx, user); err != nil {
				return err
			}
		}
	}

	return uow.Commit()
}
