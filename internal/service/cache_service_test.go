package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

type fakeCacheRepo struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	failAll bool
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if f.failAll {
		return errors.New("connection refused")
	}
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.failAll {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(_ context.Context, pattern string) (int, error) {
	if f.failAll {
		return 0, errors.New("connection refused")
	}
	removed := 0
	for key := range f.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.entries, key)
			removed++
		}
	}
	return removed, nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newFakeCacheRepo()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Minute, zap.NewNop(), true)

	var out map[string]int
	assert.False(t, svc.Get(context.Background(), "dash:summary:2024-03", &out))

	svc.Set(context.Background(), "dash:summary:2024-03", map[string]int{"students": 42}, 0)
	assert.Equal(t, time.Minute, repo.ttls["dash:summary:2024-03"])

	require.True(t, svc.Get(context.Background(), "dash:summary:2024-03", &out))
	assert.Equal(t, 42, out["students"])
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("miss")))

	svc.Set(context.Background(), "other", 1, time.Hour)
	svc.Invalidate(context.Background(), dashboardCachePattern)
	assert.NotContains(t, repo.entries, "dash:summary:2024-03")
	assert.Contains(t, repo.entries, "other")
}

func TestCacheServiceSwallowsStoreFailures(t *testing.T) {
	repo := newFakeCacheRepo()
	repo.failAll = true
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	var out map[string]int
	assert.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", 1, 0)
	svc.Invalidate(context.Background(), "k*")
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newFakeCacheRepo()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)
	svc.Set(context.Background(), "k", 1, 0)
	assert.Empty(t, repo.entries)

	var nilService *CacheService
	assert.False(t, nilService.Enabled())
	nilService.Invalidate(context.Background(), "k*")
}
