package service

import (
	"context"
	"time"

	"music-match-be/internal/entity"
	"music-match-be/internal/pkg/logger"
	"music-match-be/pkg/preview"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type IEnrichmentService interface {
	// Resolve never fails the caller: upstream faults degrade to a
	// record tagged with an error source and no preview.
	Resolve(ctx context.Context, track *entity.Track) *entity.EnrichmentRecord
	ResolveMany(ctx context.Context, tracks []*entity.Track) map[string]*entity.EnrichmentRecord
}

const errorCacheTTL = 10 * time.Minute

type enrichmentService struct {
	provider preview.Provider
	cache    *cache.Cache
	group    singleflight.Group
	timeout  time.Duration
	logger   logger.ILogger
}

func NewEnrichmentService(provider preview.Provider, timeout time.Duration, log logger.ILogger) IEnrichmentService {
	// Definitive results (found or confirmed missing) never expire;
	// transient upstream errors are retried after errorCacheTTL.
	c := cache.New(cache.NoExpiration, 30*time.Minute)
	return &enrichmentService{
		provider: provider,
		cache:    c,
		timeout:  timeout,
		logger:   log,
	}
}

func (s *enrichmentService) Resolve(ctx context.Context, track *entity.Track) *entity.EnrichmentRecord {
	if cached, found := s.cache.Get(track.Id); found {
		return cached.(*entity.EnrichmentRecord)
	}

	// Coalesce concurrent lookups for the same track into one upstream call
	v, _, _ := s.group.Do(track.Id, func() (interface{}, error) {
		if cached, found := s.cache.Get(track.Id); found {
			return cached.(*entity.EnrichmentRecord), nil
		}
		record := s.lookup(ctx, track)
		ttl := cache.NoExpiration
		if record.Source == s.provider.Name()+"-error" {
			ttl = errorCacheTTL
		}
		s.cache.Set(track.Id, record, ttl)
		return record, nil
	})
	return v.(*entity.EnrichmentRecord)
}

func (s *enrichmentService) ResolveMany(ctx context.Context, tracks []*entity.Track) map[string]*entity.EnrichmentRecord {
	records := make(map[string]*entity.EnrichmentRecord, len(tracks))
	for _, track := range tracks {
		records[track.Id] = s.Resolve(ctx, track)
	}
	return records
}

func (s *enrichmentService) lookup(ctx context.Context, track *entity.Track) *entity.EnrichmentRecord {
	// The lookup is shared with coalesced callers and its result is
	// cached, so it must outlive the request that happened to start it.
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	meta, err := s.provider.LookupPreview(lookupCtx, preview.TrackInfo{
		Id:      track.Id,
		Name:    track.Name,
		Artists: track.Artists,
	})
	if err != nil {
		s.logger.Warn("enrichment", "preview lookup failed", map[string]interface{}{
			"track_id": track.Id,
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
		return &entity.EnrichmentRecord{
			TrackId: track.Id,
			Source:  s.provider.Name() + "-error",
		}
	}

	if meta == nil {
		// The upstream answered and had nothing: a definitive miss
		return &entity.EnrichmentRecord{
			TrackId: track.Id,
			Source:  s.provider.Name() + "-empty",
		}
	}

	return &entity.EnrichmentRecord{
		TrackId:     track.Id,
		PreviewURL:  meta.PreviewURL,
		AlbumArtURL: meta.AlbumArtURL,
		Source:      meta.Source,
	}
}
