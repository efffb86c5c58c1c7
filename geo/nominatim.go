package geo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/logging"
	"github.com/rushteam/dinekit/pkg/metrics"
)

const (
	// DefaultNominatimEndpoint 是 OpenStreetMap 公共 Nominatim 搜索接口
	DefaultNominatimEndpoint = "https://nominatim.openstreetmap.org/search"
	DefaultUserAgent         = "dinekit"
)

// errNoResult 表示服务正常响应但没有匹配的地址，不计入熔断失败。
var errNoResult = errors.New("no result")

// NominatimConfig 是 Nominatim 客户端配置。
type NominatimConfig struct {
	Endpoint  string
	UserAgent string

	// Timeout 单次查询超时，默认 10s，超时不重试
	Timeout time.Duration

	// RatePerSecond 每秒请求上限，公共 Nominatim 要求不超过 1
	RatePerSecond float64
}

// NominatimClient 基于 Nominatim 的地理编码实现。
// 请求经过限流与熔断保护：服务持续失败时直接拒绝，而不是让每次请求都等待超时。
type NominatimClient struct {
	cfg     NominatimConfig
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[core.Point]
}

// NewNominatimClient 创建客户端，零值字段使用默认配置。
func NewNominatimClient(cfg NominatimConfig) *NominatimClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultNominatimEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = core.DefaultGeocodeTimeout
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	cb := gobreaker.NewCircuitBreaker[core.Point](gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNoResult)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("geocoder circuit breaker state transition")
		},
	})

	return &NominatimClient{
		cfg:     cfg,
		http:    &http.Client{},
		limiter: rate.NewLimiter(limit, 1),
		cb:      cb,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode 查询地址坐标。
// 超时、服务不可用、熔断打开返回 UNAVAILABLE；没有匹配结果返回 NOT_FOUND。
// 两种错误的消息都带上出错的地址。
func (c *NominatimClient) Geocode(ctx context.Context, address string) (core.Point, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	p, err := c.cb.Execute(func() (core.Point, error) {
		return c.search(ctx, address)
	})
	switch {
	case err == nil:
		metrics.GeocodeRequests.WithLabelValues("ok").Inc()
		return p, nil
	case errors.Is(err, errNoResult):
		metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return core.Point{}, core.NewGeocodeError(core.ErrorCodeNotFound, address, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.GeocodeRequests.WithLabelValues("rejected").Inc()
	case isTimeout(err):
		metrics.GeocodeRequests.WithLabelValues("timeout").Inc()
	default:
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
	}
	return core.Point{}, core.NewGeocodeError(core.ErrorCodeUnavailable, address, err)
}

func (c *NominatimClient) search(ctx context.Context, address string) (core.Point, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return core.Point{}, fmt.Errorf("rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return core.Point{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return core.Point{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Point{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return core.Point{}, fmt.Errorf("decode response: %w", err)
	}
	if len(places) == 0 {
		return core.Point{}, errNoResult
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("parse lat %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("parse lon %q: %w", places[0].Lon, err)
	}
	return core.Point{Latitude: lat, Longitude: lon}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
