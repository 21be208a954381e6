package service

import (
	"context"
	"sync"
	"time"

	"music-match-be/internal/dto"
	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/apperror"
	"music-match-be/internal/pkg/logger"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/pkg/recommend"
	"music-match-be/pkg/store"
	"music-match-be/pkg/utils"

	"github.com/google/uuid"
)

type ISessionService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	NextTrack(ctx context.Context, sessionId string) (*dto.NextTrackResponse, error)
	Swipe(ctx context.Context, req *dto.SwipeRequest) (*dto.SwipeResponse, error)
}

// SessionStore is the in-memory session state holder. Everything
// durable about a session lives in the swipe ledger; losing the store
// only costs in-flight decks.
type SessionStore interface {
	Save(session *store.MatchSession)
	Get(sessionID string) (*store.MatchSession, bool)
	Delete(sessionID string)
}

type sessionService struct {
	sessionRepo       SessionStore
	uowFactory        unitofwork.RepositoryFactory
	trackService      ITrackService
	userService       IUserService
	selector          recommend.CandidateSelector
	enrichmentService IEnrichmentService
	publisherService  IPublisherService
	logger            logger.ILogger
	seedSize          int

	// One mutex per live session: each session has a single writer, but
	// different sessions swipe concurrently. Entries are dropped once a
	// session completes or its state has been reaped from the store.
	locks sync.Map
}

func NewSessionService(
	sessionRepo SessionStore,
	uowFactory unitofwork.RepositoryFactory,
	trackService ITrackService,
	userService IUserService,
	selector recommend.CandidateSelector,
	enrichmentService IEnrichmentService,
	publisherService IPublisherService,
	log logger.ILogger,
	seedSize int,
) ISessionService {
	return &sessionService{
		sessionRepo:       sessionRepo,
		uowFactory:        uowFactory,
		trackService:      trackService,
		userService:       userService,
		selector:          selector,
		enrichmentService: enrichmentService,
		publisherService:  publisherService,
		logger:            log,
		seedSize:          seedSize,
	}
}

func (s *sessionService) lockSession(sessionId string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *sessionService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	username := utils.NormalizeUsername(req.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required")
	}

	if _, err := s.userService.EnsureUser(ctx, username); err != nil {
		return nil, err
	}

	seen, err := s.swipedTrackIds(ctx, username)
	if err != nil {
		return nil, err
	}

	seeds, err := s.trackService.GetSeedTracks(ctx, seen, s.seedSize)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &store.MatchSession{
		Id:           uuid.NewString(),
		Username:     username,
		Phase:        store.PhaseSeed,
		Status:       store.StatusActive,
		SeedTrackIds: seeds,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.sessionRepo.Save(session)

	s.logger.Info("session", "session started", map[string]interface{}{
		"session_id": session.Id,
		"username":   username,
		"seed_count": len(seeds),
	})

	return &dto.StartSessionResponse{
		SessionId: session.Id,
		Phase:     session.Phase,
		SeedCount: len(seeds),
	}, nil
}

// NextTrack is an idempotent peek: calling it again before swiping
// returns the same pending track and moves nothing.
func (s *sessionService) NextTrack(ctx context.Context, sessionId string) (*dto.NextTrackResponse, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		s.locks.Delete(sessionId)
		return nil, apperror.NewNotFound("session not found")
	}

	res, trackId, err := s.peekPending(ctx, session)
	if err != nil {
		return nil, err
	}
	if trackId == "" {
		return res, nil
	}

	// Enrichment runs after the session lock is released, so a cold
	// preview lookup never stalls a concurrent swipe.
	track, err := s.trackService.GetTrack(ctx, trackId)
	if err != nil {
		return nil, err
	}
	enrichment := s.enrichmentService.Resolve(ctx, track)
	card := ToTrackResponse(track, enrichment)
	res.Track = &card
	return res, nil
}

// peekPending decides (or keeps) the pending track under the session
// lock and returns the session snapshot. The caller fills in the track
// card; an empty track id means the session is complete.
func (s *sessionService) peekPending(ctx context.Context, session *store.MatchSession) (*dto.NextTrackResponse, string, error) {
	mu := s.lockSession(session.Id)
	mu.Lock()
	defer mu.Unlock()

	if session.Completed() {
		s.locks.Delete(session.Id)
		return s.completedResponse(session), "", nil
	}

	if session.PendingTrackId != "" {
		return s.snapshotResponse(session), session.PendingTrackId, nil
	}

	seen, err := s.swipedTrackIds(ctx, session.Username)
	if err != nil {
		return nil, "", err
	}

	if session.Phase == store.PhaseSeed {
		// Skip seeds judged in other sessions since the deck was built
		for session.Position < len(session.SeedTrackIds) {
			candidate := session.SeedTrackIds[session.Position]
			if !seen[candidate] {
				session.PendingTrackId = candidate
				break
			}
			session.Position++
		}
		if session.PendingTrackId == "" {
			session.Phase = store.PhaseRefined
		}
	}

	if session.PendingTrackId == "" {
		candidate, ok, err := s.refinedCandidate(ctx, session, seen)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			session.Status = store.StatusCompleted
			session.UpdatedAt = time.Now()
			s.sessionRepo.Save(session)
			s.locks.Delete(session.Id)
			s.logger.Info("session", "session completed", map[string]interface{}{
				"session_id": session.Id,
				"username":   session.Username,
			})
			return s.completedResponse(session), "", nil
		}
		session.PendingTrackId = candidate
	}

	session.UpdatedAt = time.Now()
	s.sessionRepo.Save(session)
	return s.snapshotResponse(session), session.PendingTrackId, nil
}

func (s *sessionService) Swipe(ctx context.Context, req *dto.SwipeRequest) (*dto.SwipeResponse, error) {
	username := utils.NormalizeUsername(req.Username)

	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		s.locks.Delete(req.SessionId)
		return nil, apperror.NewNotFound("session not found")
	}
	if session.Username != username {
		return nil, apperror.NewInvalidInput("session does not belong to this user")
	}

	mu := s.lockSession(req.SessionId)
	mu.Lock()
	defer mu.Unlock()

	if session.Completed() {
		s.locks.Delete(req.SessionId)
		return nil, apperror.NewConflict("session is already completed")
	}
	if session.PendingTrackId == "" {
		return nil, apperror.NewConflict("no track is awaiting a swipe; call next first")
	}
	if session.PendingTrackId != req.TrackId {
		return nil, apperror.NewConflict("track does not match the pending track")
	}

	direction := entity.SwipeDirection(req.Direction)
	if direction != entity.DirectionLike && direction != entity.DirectionDislike {
		return nil, apperror.NewInvalidInput("direction must be like or dislike")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	track, err := uow.TrackRepository().FindOne(ctx, specification.ByTrackID{TrackID: req.TrackId})
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, apperror.NewNotFound("track not found")
	}

	user, err := s.appendSwipe(ctx, uow, session, track, direction)
	if err != nil {
		return nil, err
	}

	session.Position++
	session.PendingTrackId = ""
	session.UpdatedAt = time.Now()
	s.sessionRepo.Save(session)

	s.prefetchUpcoming(session, track, direction)

	return &dto.SwipeResponse{
		SessionId: session.Id,
		Phase:     session.Phase,
		Status:    session.Status,
		Completed: session.Completed(),
		Likes:     user.LikesCount,
		Dislikes:  user.DislikesCount,
	}, nil
}

// appendSwipe writes the ledger event and the aggregate update in one
// transaction, so the ledger and the taste profile never diverge.
func (s *sessionService) appendSwipe(ctx context.Context, uow unitofwork.UnitOfWork, session *store.MatchSession, track *entity.Track, direction entity.SwipeDirection) (*entity.User, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	event := &entity.SwipeEvent{
		Id:        uuid.New(),
		Username:  session.Username,
		TrackId:   track.Id,
		SessionId: session.Id,
		Direction: direction,
		Source:    "swipe",
		Phase:     session.Phase,
		CreatedAt: time.Now(),
	}
	if err := uow.SwipeRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindByUsername(ctx, session.Username)
	if err != nil {
		return nil, err
	}
	liked := direction == entity.DirectionLike
	if user == nil {
		user = entity.NewUser(session.Username, time.Now())
		user.ApplySwipe(track, liked)
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		user.ApplySwipe(track, liked)
		user.LastActiveAt = time.Now()
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// prefetchUpcoming warms the preview cache for whatever the client is
// likely to request next. Failures only cost a cold lookup later.
func (s *sessionService) prefetchUpcoming(session *store.MatchSession, swiped *entity.Track, direction entity.SwipeDirection) {
	var target string
	if session.Phase == store.PhaseSeed && session.Position < len(session.SeedTrackIds) {
		target = session.SeedTrackIds[session.Position]
	} else if direction == entity.DirectionLike {
		target = swiped.Id
	}
	if target == "" {
		return
	}
	if err := s.publisherService.PublishPrefetchPreview(target); err != nil {
		s.logger.Warn("session", "prefetch publish failed", map[string]interface{}{
			"track_id": target,
			"error":    err.Error(),
		})
	}
}

func (s *sessionService) refinedCandidate(ctx context.Context, session *store.MatchSession, seen map[string]bool) (string, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByUsername(ctx, session.Username)
	if err != nil {
		return "", false, err
	}
	if user == nil {
		user = entity.NewUser(session.Username, time.Now())
	}

	state := recommend.UserState{
		Username:  session.Username,
		Seen:      seen,
		TopGenres: user.TopGenres(3),
		Profile:   user,
	}
	return s.selector.NextCandidate(ctx, state)
}

func (s *sessionService) swipedTrackIds(ctx context.Context, username string) (map[string]bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SwipeRepository().SwipedTrackIds(ctx, username)
}

func (s *sessionService) completedResponse(session *store.MatchSession) *dto.NextTrackResponse {
	return &dto.NextTrackResponse{
		SessionId: session.Id,
		Phase:     session.Phase,
		Status:    session.Status,
		Completed: true,
	}
}

func (s *sessionService) snapshotResponse(session *store.MatchSession) *dto.NextTrackResponse {
	return &dto.NextTrackResponse{
		SessionId: session.Id,
		Phase:     session.Phase,
		Status:    session.Status,
	}
}
