package engine

import (
	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/recall"
)

type options struct {
	displayCount  int
	maxDistance   float64
	originalScore bool
	policy        filter.GeocodePolicy
	geocoder      core.Geocoder
	pipeline      *pipeline.Config
	predictors    []recall.Predictor
	logger        zerolog.Logger
	closers       []func() error
}

func defaultOptions() *options {
	return &options{
		displayCount: core.DefaultDisplayCount,
		maxDistance:  core.DefaultMaxDistance,
		policy:       filter.GeocodeAbort,
		logger:       zerolog.Nop(),
	}
}

// Option 配置 Recommender。
type Option func(*options)

// WithDisplayCount 设置默认展示数量。
func WithDisplayCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.displayCount = n
		}
	}
}

// WithMaxDistance 设置请求未指定时的最大距离（英里）。
func WithMaxDistance(miles float64) Option {
	return func(o *options) {
		if miles > 0 {
			o.maxDistance = miles
		}
	}
}

// WithOriginalScore 初始候选集按原始评分而不是平滑分数排序。
func WithOriginalScore(v bool) Option {
	return func(o *options) { o.originalScore = v }
}

// WithGeocoder 设置位置过滤使用的地理编码器。
func WithGeocoder(g core.Geocoder) Option {
	return func(o *options) { o.geocoder = g }
}

// WithGeocodePolicy 设置地理编码失败策略。
func WithGeocodePolicy(p filter.GeocodePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithPipeline 使用自定义的过滤 Node 顺序。
func WithPipeline(cfg *pipeline.Config) Option {
	return func(o *options) { o.pipeline = cfg }
}

// WithPredictors 注册个性化召回源（按 Mode 区分，后注册的覆盖先注册的）。
func WithPredictors(ps ...recall.Predictor) Option {
	return func(o *options) { o.predictors = append(o.predictors, ps...) }
}

// WithLogger 设置日志。
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// withCloser 注册 Close 时需要释放的资源。
func withCloser(fn func() error) Option {
	return func(o *options) { o.closers = append(o.closers, fn) }
}
