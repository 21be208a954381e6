package memory

import (
	"time"

	"music-match-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions idle for a day are reaped; a reaped session simply reads
	// as not found and the client starts a new one.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.MatchSession) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.MatchSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.MatchSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
