package geo

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/logging"
	"github.com/rushteam/dinekit/pkg/metrics"
)

// CachedGeocoder 在任意 Geocoder 之上叠加 core.Store 缓存。
// 只缓存成功的结果；缓存读写失败只记录日志，不影响查询。
type CachedGeocoder struct {
	Geocoder core.Geocoder
	Store    core.Store
	TTL      time.Duration
}

func NewCachedGeocoder(g core.Geocoder, store core.Store, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{Geocoder: g, Store: store, TTL: ttl}
}

// CacheKey 返回地址对应的缓存 key（忽略大小写与首尾空白）。
func CacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(address))
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (core.Point, error) {
	key := CacheKey(address)

	if data, err := g.Store.Get(ctx, key); err == nil {
		var p core.Point
		if err := json.Unmarshal(data, &p); err == nil {
			metrics.GeocodeRequests.WithLabelValues("hit").Inc()
			return p, nil
		}
		logging.Warn().Str("key", key).Msg("discarding malformed geocode cache entry")
	} else if !core.IsStoreNotFound(err) {
		logging.Warn().Err(err).Str("store", g.Store.Name()).Msg("geocode cache read failed")
	}
	metrics.GeocodeRequests.WithLabelValues("miss").Inc()

	p, err := g.Geocoder.Geocode(ctx, address)
	if err != nil {
		return core.Point{}, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := g.Store.Set(ctx, key, data, g.TTL); err != nil {
			logging.Warn().Err(err).Str("store", g.Store.Name()).Msg("geocode cache write failed")
		}
	}
	return p, nil
}
