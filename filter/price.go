package filter

import (
	"context"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// PriceFilter 保留价格档位在请求列表中的商家。
// 请求是逗号分隔的档位列表（例如 "1, 2"），每项去掉首尾空白。
type PriceFilter struct{}

func (f *PriceFilter) Name() string { return "filter.price" }

func (f *PriceFilter) Applies(c *core.Criteria) bool { return strings.TrimSpace(c.Price) != "" }

func (f *PriceFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	_, ok := PriceTiers(rctx.GetCriteria().Price)[item.Business.PriceTier]
	return !ok, nil
}

// PriceTiers 解析逗号分隔的价格档位集合，空项被忽略。
func PriceTiers(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

// NewPriceNode 创建价格过滤 Node。
func NewPriceNode() *FilterNode {
	return &FilterNode{
		Criterion: CriterionPrice,
		Filters:   []Filter{&PriceFilter{}},
		Message:   "no matching restaurant found for the price range of interest",
	}
}
