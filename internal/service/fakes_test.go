package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/contract"
	"music-match-be/internal/repository/specification"
	"music-match-be/internal/repository/unitofwork"
	"music-match-be/pkg/recommend"
)

// In-memory repository fakes. They interpret the same specification
// structs the GORM implementations do, so services run unchanged.

type fakeTrackRepo struct {
	mu     sync.Mutex
	tracks map[string]*entity.Track
}

func newFakeTrackRepo() *fakeTrackRepo {
	return &fakeTrackRepo{tracks: map[string]*entity.Track{}}
}

func (r *fakeTrackRepo) Create(_ context.Context, track *entity.Track) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracks[track.Id] = track
	return nil
}

func (r *fakeTrackRepo) CreateInBatches(ctx context.Context, tracks []*entity.Track, _ int) error {
	for _, track := range tracks {
		if err := r.Create(ctx, track); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTrackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Track, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *fakeTrackRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Track, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	minPop := -1.0
	prefix := ""
	limit := 0
	var onlyIds map[string]bool
	var exclude map[string]bool

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.PopularityAtLeast:
			minPop = s.Min
		case specification.NamePrefix:
			prefix = s.Prefix
		case specification.Limit:
			limit = s.Limit
		case specification.ByTrackID:
			onlyIds = map[string]bool{s.TrackID: true}
		case specification.ByTrackIDs:
			onlyIds = map[string]bool{}
			for _, id := range s.TrackIDs {
				onlyIds[id] = true
			}
		case specification.ExcludeTrackIDs:
			exclude = map[string]bool{}
			for _, id := range s.TrackIDs {
				exclude[id] = true
			}
		}
	}

	var result []*entity.Track
	for _, track := range r.tracks {
		if onlyIds != nil && !onlyIds[track.Id] {
			continue
		}
		if exclude != nil && exclude[track.Id] {
			continue
		}
		if minPop >= 0 && (track.PopularityNorm == nil || *track.PopularityNorm < minPop) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(track.NameLowercase, prefix) {
			continue
		}
		result = append(result, track)
	}

	sort.Slice(result, func(i, j int) bool {
		pi, pj := 0.0, 0.0
		if result[i].PopularityNorm != nil {
			pi = *result[i].PopularityNorm
		}
		if result[j].PopularityNorm != nil {
			pj = *result[j].PopularityNorm
		}
		if pi != pj {
			return pi > pj
		}
		return result[i].Id < result[j].Id
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeTrackRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tracks)), nil
}

type fakeSwipeRepo struct {
	mu     sync.Mutex
	events []*entity.SwipeEvent
	seq    int64
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{}
}

func (r *fakeSwipeRepo) Append(_ context.Context, event *entity.SwipeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	event.Seq = r.seq
	r.events = append(r.events, event)
	return nil
}

func (r *fakeSwipeRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SwipeEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username := ""
	trackId := ""
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUsername:
			username = s.Username
		case specification.BySwipedTrackID:
			trackId = s.TrackID
		}
	}

	var result []*entity.SwipeEvent
	for _, event := range r.events {
		if username != "" && event.Username != username {
			continue
		}
		if trackId != "" && event.TrackId != trackId {
			continue
		}
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}

func (r *fakeSwipeRepo) SwipedTrackIds(_ context.Context, username string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	for _, event := range r.events {
		if event.Username != username {
			continue
		}
		if event.Direction == entity.DirectionLike || event.Direction == entity.DirectionDislike {
			seen[event.TrackId] = true
		}
	}
	return seen, nil
}

func (r *fakeSwipeRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[username], nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// fakeUnitOfWork shares one set of repos; transactions are no-ops.
type fakeUnitOfWork struct {
	users  *fakeUserRepo
	tracks *fakeTrackRepo
	swipes *fakeSwipeRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository   { return u.users }
func (u *fakeUnitOfWork) TrackRepository() contract.TrackRepository { return u.tracks }
func (u *fakeUnitOfWork) SwipeRepository() contract.SwipeRepository { return u.swipes }

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		uow: &fakeUnitOfWork{
			users:  newFakeUserRepo(),
			tracks: newFakeTrackRepo(),
			swipes: newFakeSwipeRepo(),
		},
	}
}

func (f *fakeRepoFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	mu       sync.Mutex
	trackIds []string
}

func (p *fakePublisher) PublishPrefetchPreview(trackId string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trackIds = append(p.trackIds, trackId)
	return nil
}

// queueSelector hands out scripted refined-phase candidates.
type queueSelector struct {
	mu    sync.Mutex
	queue []string
}

func (s *queueSelector) NextCandidate(_ context.Context, state recommend.UserState) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.queue) > 0 {
		candidate := s.queue[0]
		s.queue = s.queue[1:]
		if !state.Seen[candidate] {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// stubEnrichment skips upstream lookups entirely.
type stubEnrichment struct{}

func (stubEnrichment) Resolve(_ context.Context, track *entity.Track) *entity.EnrichmentRecord {
	return &entity.EnrichmentRecord{TrackId: track.Id, Source: "stub"}
}

func (e stubEnrichment) ResolveMany(ctx context.Context, tracks []*entity.Track) map[string]*entity.EnrichmentRecord {
	records := make(map[string]*entity.EnrichmentRecord, len(tracks))
	for _, track := range tracks {
		records[track.Id] = e.Resolve(ctx, track)
	}
	return records
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func testTrack(id, name, genreGroup string, pop float64) *entity.Track {
	return &entity.Track{
		Id:             id,
		Name:           name,
		NameLowercase:  strings.ToLower(name),
		Artists:        []string{"Artist " + id},
		PopularityNorm: floatPtr(pop),
		GenreGroup:     strPtr(genreGroup),
		Energy:         floatPtr(0.5),
		Valence:        floatPtr(0.5),
		Danceability:   floatPtr(0.5),
	}
}
