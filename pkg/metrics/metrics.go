// Package metrics 定义推荐链路的 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests 按模块与结果统计顶层推荐调用
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinekit_recommend_requests_total",
			Help: "Total number of top-level recommendation calls",
		},
		[]string{"module", "outcome"}, // module: keyword/collaborative/content; outcome: ok/invalid/no_match/no_personalization/geocode/integrity/error
	)

	// FilterNoMatch 按过滤条件统计候选集被过滤为空的次数
	FilterNoMatch = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinekit_filter_no_match_total",
			Help: "Total number of filter steps that narrowed the candidate set to empty",
		},
		[]string{"criterion"},
	)

	// GeocodeRequests 地理编码请求（含缓存命中）
	GeocodeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinekit_geocode_requests_total",
			Help: "Total number of geocoding lookups",
		},
		[]string{"outcome"}, // hit/miss/ok/not_found/timeout/error/rejected
	)

	// GenericFallbacks 协同过滤对未知用户退化为通用推荐的次数
	GenericFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dinekit_collaborative_generic_fallback_total",
			Help: "Total number of collaborative predictions that fell back to the generic model",
		},
	)
)
