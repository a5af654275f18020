//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	"pkp_monitor_backend/internals/features/penilaian/indicators/cache"
	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
	"pkp_monitor_backend/internals/testutil/containers"
)

type RedisCatalogCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RedisCatalogCache
}

func TestRedisCatalogCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCatalogCacheSuite))
}

func (s *RedisCatalogCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedisCatalogCache(s.redis.Client, time.Minute)
}

func (s *RedisCatalogCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func catalogItem(bundleID uuid.UUID) model.CatalogItem {
	pct, sasaran := 80.0, 1200
	return model.CatalogItem{
		ClusterID:     uuid.New(),
		BundleID:      bundleID,
		NamaKlaster:   "KIA",
		ClusterUrutan: 1,
		Indicator: model.IndicatorModel{
			ID:               uuid.New(),
			Urutan:           1,
			NamaIndikator:    "K4",
			Type:             scoring.TypeTargetAchievement,
			ScoringCriteria:  datatypes.NewJSONType(map[string]string{}),
			TargetPercentage: &pct,
			TotalSasaran:     &sasaran,
			Periodicity:      scoring.PeriodicityAnnual,
		},
	}
}

func (s *RedisCatalogCacheSuite) TestSetGetInvalidate() {
	ctx := context.Background()
	bundleID := uuid.New()

	_, ok, err := s.cache.Get(ctx, bundleID)
	s.Require().NoError(err)
	s.False(ok)

	item := catalogItem(bundleID)
	s.Require().NoError(s.cache.Set(ctx, bundleID, []model.CatalogItem{item}))

	got, ok, err := s.cache.Get(ctx, bundleID)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Len(got, 1)
	s.Equal(item.Indicator.ID, got[0].Indicator.ID)
	s.Equal(1200, *got[0].Indicator.TotalSasaran)

	s.Require().NoError(s.cache.Invalidate(ctx, bundleID))
	_, ok, err = s.cache.Get(ctx, bundleID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCatalogCacheSuite) TestCorruptEntryTreatedAsMiss() {
	ctx := context.Background()
	bundleID := uuid.New()
	s.Require().NoError(s.redis.Client.Set(ctx, "pkp:catalog:"+bundleID.String(), "bukan json", time.Minute).Err())

	_, ok, err := s.cache.Get(ctx, bundleID)
	s.Require().NoError(err)
	s.False(ok)

	n, err := s.redis.Client.Exists(ctx, "pkp:catalog:"+bundleID.String()).Result()
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *RedisCatalogCacheSuite) TestEntryExpiresWithTTL() {
	ctx := context.Background()
	bundleID := uuid.New()
	s.Require().NoError(s.cache.Set(ctx, bundleID, []model.CatalogItem{catalogItem(bundleID)}))

	ttl, err := s.redis.Client.TTL(ctx, "pkp:catalog:"+bundleID.String()).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}
