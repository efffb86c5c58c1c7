package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/geo"
	"github.com/rushteam/dinekit/model"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/recall"
	"github.com/rushteam/dinekit/store"
)

// Datasets 是一次加载得到的全部输入数据。
type Datasets struct {
	Businesses []*core.Business
	Reviews    []*core.Review

	// LatentFactors / Features 未配置路径时为 nil
	LatentFactors *model.LatentFactors
	Features      *model.FeatureStore
}

// LoadDatasets 并发读取商家、评论与两份离线产物，任何一份失败即返回错误。
func LoadDatasets(ctx context.Context, cfg config.DataConfig) (*Datasets, error) {
	ds := &Datasets{}
	eg, _ := errgroup.WithContext(ctx)

	eg.Go(func() error {
		bs, err := catalog.LoadBusinesses(cfg.Businesses)
		if err != nil {
			return fmt.Errorf("load businesses: %w", err)
		}
		ds.Businesses = bs
		return nil
	})
	eg.Go(func() error {
		rs, err := catalog.LoadReviews(cfg.Reviews)
		if err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		ds.Reviews = rs
		return nil
	})
	if cfg.LatentFactors != "" {
		eg.Go(func() error {
			m, err := model.LoadLatentFactors(cfg.LatentFactors)
			if err != nil {
				return fmt.Errorf("load latent factors: %w", err)
			}
			ds.LatentFactors = m
			return nil
		})
	}
	if cfg.Features != "" {
		eg.Go(func() error {
			fs, err := model.LoadFeatureStore(cfg.Features)
			if err != nil {
				return fmt.Errorf("load features: %w", err)
			}
			ds.Features = fs
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromDatasets 用已加载的数据构建控制器；离线产物缺失时对应的个性化模块不可用。
func FromDatasets(ds *Datasets, rc config.RecommendConfig, logger zerolog.Logger, opts ...Option) (*Recommender, error) {
	cat := catalog.New(ds.Businesses, ds.Reviews, rc.DampingK)

	var predictors []recall.Predictor
	if ds.LatentFactors != nil {
		predictors = append(predictors, &recall.Collaborative{
			Factors: &recall.StaticLatentFactors{Model: ds.LatentFactors},
			History: cat,
			Catalog: cat,
			Logger:  logger.With().Str("component", "recall.collaborative").Logger(),
		})
	}
	if ds.Features != nil {
		predictors = append(predictors, &recall.Content{
			Features: &recall.StaticFeatures{Store: ds.Features},
			History:  cat,
			Catalog:  cat,
		})
	}

	base := []Option{
		WithLogger(logger),
		WithDisplayCount(rc.DisplayCount),
		WithMaxDistance(rc.MaxDistance),
		WithOriginalScore(rc.OriginalScore),
		WithPredictors(predictors...),
	}
	return New(cat, append(base, opts...)...)
}

// Load 按应用配置加载数据、构建地理编码器与缓存，返回可用的控制器。
func Load(ctx context.Context, cfg *config.AppConfig, logger zerolog.Logger) (*Recommender, error) {
	ds, err := LoadDatasets(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}

	policy, ok := filter.ParseGeocodePolicy(cfg.Filters.GeocodeFailure)
	if !ok {
		return nil, fmt.Errorf("invalid geocode_failure policy %q", cfg.Filters.GeocodeFailure)
	}

	opts := []Option{WithGeocodePolicy(policy)}
	if cfg.Filters.PipelinePath != "" {
		pc, err := pipeline.LoadFromYAML(cfg.Filters.PipelinePath)
		if err != nil {
			return nil, fmt.Errorf("load filter pipeline: %w", err)
		}
		opts = append(opts, WithPipeline(pc))
	}

	geocoder, closeCache, err := buildGeocoder(cfg.Geocoder)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithGeocoder(geocoder))
	if closeCache != nil {
		opts = append(opts, withCloser(closeCache))
	}

	r, err := FromDatasets(ds, cfg.Recommend, logger, opts...)
	if err != nil {
		if closeCache != nil {
			_ = closeCache()
		}
		return nil, err
	}
	return r, nil
}

func buildGeocoder(cfg config.GeocoderConfig) (core.Geocoder, func() error, error) {
	client := geo.NewNominatimClient(geo.NominatimConfig{
		Endpoint:      cfg.Endpoint,
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
	})

	var cache core.Store
	switch cfg.Cache.Backend {
	case "memory":
		cache = store.NewMemoryStore()
	case "redis":
		rs, err := store.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, cfg.Cache.KeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("geocode cache: %w", err)
		}
		cache = rs
	default:
		return client, nil, nil
	}
	return geo.NewCachedGeocoder(client, cache, cfg.Cache.TTL), cache.Close, nil
}
