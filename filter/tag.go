package filter

import (
	"context"
	"strings"

	"github.com/rushteam/dinekit/core"
)

// CuisineFilter 保留菜系标签中包含所请求菜系的商家（按逗号拆分后精确匹配）。
type CuisineFilter struct{}

func (f *CuisineFilter) Name() string { return "filter.cuisine" }

func (f *CuisineFilter) Applies(c *core.Criteria) bool { return c.Cuisine != "" }

func (f *CuisineFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	return !item.Business.HasCuisine(rctx.GetCriteria().Cuisine), nil
}

// StyleFilter 与 CuisineFilter 相同，作用于风格标签。
type StyleFilter struct{}

func (f *StyleFilter) Name() string { return "filter.style" }

func (f *StyleFilter) Applies(c *core.Criteria) bool { return c.Style != "" }

func (f *StyleFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	return !item.Business.HasStyle(rctx.GetCriteria().Style), nil
}

// StateFilter 按州代码过滤，请求值先转成大写再与商家记录精确比较。
// 仅在没有提供 zipcode/city 时生效（有时由距离过滤负责位置）。
type StateFilter struct{}

func (f *StateFilter) Name() string { return "filter.state" }

func (f *StateFilter) Applies(c *core.Criteria) bool {
	return c.State != "" && !c.HasGeoLocation()
}

func (f *StateFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	return item.Business.State != strings.ToUpper(rctx.GetCriteria().State), nil
}

// NewCuisineNode 创建菜系过滤 Node。
func NewCuisineNode() *FilterNode {
	return &FilterNode{
		Criterion: CriterionCuisine,
		Filters:   []Filter{&CuisineFilter{}},
		Message:   "no matching restaurant found for the cuisine of interest",
	}
}

// NewStyleNode 创建风格过滤 Node。
func NewStyleNode() *FilterNode {
	return &FilterNode{
		Criterion: CriterionStyle,
		Filters:   []Filter{&StyleFilter{}},
		Message:   "no matching restaurant found for the style of interest",
	}
}
