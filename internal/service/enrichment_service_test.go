package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"music-match-be/pkg/preview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider counts upstream lookups and can be scripted to fail,
// stall, or answer with nothing.
type countingProvider struct {
	calls int32
	delay time.Duration
	fail  bool
	empty bool
	meta  *preview.Metadata
}

func (p *countingProvider) Name() string { return "itunes" }

func (p *countingProvider) LookupPreview(ctx context.Context, _ preview.TrackInfo) (*preview.Metadata, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.fail {
		return nil, errors.New("upstream down")
	}
	if p.empty {
		return nil, nil
	}
	if p.meta != nil {
		return p.meta, nil
	}
	url := "https://example.com/preview.m4a"
	return &preview.Metadata{PreviewURL: &url, Source: "itunes"}, nil
}

func TestEnrichmentResolveCachesResult(t *testing.T) {
	provider := &countingProvider{}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	first := svc.Resolve(context.Background(), track)
	second := svc.Resolve(context.Background(), track)

	assert.True(t, first.HasPreview())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEnrichmentCoalescesConcurrentLookups(t *testing.T) {
	provider := &countingProvider{delay: 50 * time.Millisecond}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record := svc.Resolve(context.Background(), track)
			assert.True(t, record.HasPreview())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEnrichmentAbsorbsUpstreamFailure(t *testing.T) {
	provider := &countingProvider{fail: true}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	record := svc.Resolve(context.Background(), track)
	require.NotNil(t, record)
	assert.False(t, record.HasPreview())
	assert.Equal(t, "itunes-error", record.Source)

	// The failure is negatively cached: no immediate retry
	svc.Resolve(context.Background(), track)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEnrichmentHandlesEmptyUpstreamAnswer(t *testing.T) {
	provider := &countingProvider{empty: true}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	// A nil answer is the normal "nothing found" case, not a fault
	record := svc.Resolve(context.Background(), track)
	require.NotNil(t, record)
	assert.False(t, record.HasPreview())
	assert.Equal(t, "itunes-empty", record.Source)

	// The miss is definitive and cached
	svc.Resolve(context.Background(), track)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEnrichmentSurvivesCallerCancellation(t *testing.T) {
	provider := &countingProvider{delay: 30 * time.Millisecond}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The abandoned caller still completes the shared lookup
	record := svc.Resolve(ctx, track)
	require.NotNil(t, record)
	assert.True(t, record.HasPreview())
	assert.Equal(t, "itunes", record.Source)

	// And the cache holds the real result, not an error record
	second := svc.Resolve(context.Background(), track)
	assert.Equal(t, record, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestEnrichmentCachesConfirmedMiss(t *testing.T) {
	provider := &countingProvider{meta: &preview.Metadata{Source: "itunes-missing"}}
	svc := NewEnrichmentService(provider, time.Second, noopLogger{})
	track := testTrack("t1", "Alpha", "pop", 0.9)

	first := svc.Resolve(context.Background(), track)
	second := svc.Resolve(context.Background(), track)

	assert.False(t, first.HasPreview())
	assert.Equal(t, "itunes-missing", first.Source)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}
