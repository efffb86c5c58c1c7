package filter

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/geo"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/metrics"
	"github.com/rushteam/dinekit/pkg/utils"
)

// GeocodePolicy 决定地理编码失败时位置过滤如何处理。
type GeocodePolicy string

const (
	// GeocodeAbort 返回地理编码错误，整个关键词请求失败
	GeocodeAbort GeocodePolicy = "abort"

	// GeocodeSkip 跳过位置过滤，继续后续过滤步骤（不产生距离列）
	GeocodeSkip GeocodePolicy = "skip"
)

// LabelLocationSkipped 是地理编码失败、位置过滤被跳过时写入的请求级 Label。
const LabelLocationSkipped = "location_skipped"

// ParseGeocodePolicy 解析配置值，空串为 abort。
func ParseGeocodePolicy(s string) (GeocodePolicy, bool) {
	switch GeocodePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", GeocodeAbort:
		return GeocodeAbort, true
	case GeocodeSkip:
		return GeocodeSkip, true
	}
	return "", false
}

// LocationNode 是位置过滤 Node。
//   - 提供了 zipcode 或 city：把 city/state/zipcode（省略空值）以逗号拼成地址做一次地理编码，
//     计算每个候选到该点的大圆距离（英里），写入 distance_to_interest 列，保留 <= MaxDistance 的候选
//   - 只提供 state：按州代码精确匹配，不计算距离
//   - 都没有：原样返回
type LocationNode struct {
	Geocoder core.Geocoder
	Policy   GeocodePolicy

	// MaxDistance 请求未指定最大距离时使用，<= 0 时为 core.DefaultMaxDistance
	MaxDistance float64

	Logger zerolog.Logger
}

func (n *LocationNode) Name() string        { return "filter.location" }
func (n *LocationNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *LocationNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	crit := rctx.GetCriteria()
	switch {
	case crit.HasGeoLocation():
		return n.byDistance(ctx, rctx, crit, items)
	case crit.State != "":
		state := &FilterNode{
			Criterion: CriterionLocation,
			Filters:   []Filter{&StateFilter{}},
			Message:   "no matching restaurant found for the state of interest",
		}
		return state.Process(ctx, rctx, items)
	}
	return items, nil
}

func (n *LocationNode) byDistance(
	ctx context.Context,
	rctx *core.RecommendContext,
	crit *core.Criteria,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Geocoder == nil {
		return nil, core.NewDomainError(core.ModuleGeocode, core.ErrorCodeUnavailable, "no geocoder configured for location filtering")
	}

	address := Address(crit)
	point, err := n.Geocoder.Geocode(ctx, address)
	if err != nil {
		if !core.IsGeocodeFailure(err) {
			err = core.NewGeocodeError(core.ErrorCodeUnavailable, address, err)
		}
		if n.Policy == GeocodeSkip {
			n.Logger.Warn().Err(err).Str("address", address).Msg("geocoding failed, skipping location filter")
			if rctx != nil {
				rctx.PutLabel(LabelLocationSkipped, utils.Label{Value: err.Error(), Source: "filter"})
			}
			return items, nil
		}
		return nil, err
	}

	maxDistance := crit.MaxDistance
	if maxDistance <= 0 {
		maxDistance = n.MaxDistance
	}
	if maxDistance <= 0 {
		maxDistance = core.DefaultMaxDistance
	}

	out := make([]*core.Candidate, 0, len(items))
	for _, item := range items {
		if item == nil || item.Business == nil {
			continue
		}
		d := geo.Distance(point, core.Point{Latitude: item.Business.Latitude, Longitude: item.Business.Longitude})
		if d > maxDistance {
			continue
		}
		item.SetScore(core.ColumnDistance, d)
		item.PutLabel("filtered_by", utils.Label{Value: n.Name(), Source: "filter"})
		out = append(out, item)
	}

	if len(out) == 0 {
		metrics.FilterNoMatch.WithLabelValues(CriterionLocation).Inc()
		return nil, core.NewNoMatchError(CriterionLocation, "no matching restaurant found within the acceptable distance of the location of interest")
	}
	return out, nil
}

// Address 把 city、state、zipcode 中非空的部分以逗号拼接成地理编码查询地址。
func Address(c *core.Criteria) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.City, c.State, c.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ",")
}
