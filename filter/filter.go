// Package filter 实现关键词过滤：位置（距离或州）、菜系、风格、价格与 CEL 表达式。
//
// 过滤是严格的 AND 语义：各步骤按顺序执行，任何一步把候选集过滤为空时
// 立即返回 NO_MATCH 错误（带上触发的条件），后续步骤不再执行。
package filter

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// 过滤条件名称，出现在 NO_MATCH 错误的 Criterion 中
const (
	CriterionLocation = "location"
	CriterionCuisine  = "cuisine"
	CriterionStyle    = "style"
	CriterionPrice    = "price"
	CriterionExpr     = "expr"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error)
}

// Conditional 是可选接口：过滤器只在请求提供了对应条件时生效。
type Conditional interface {
	Applies(c *core.Criteria) bool
}

func applies(f Filter, c *core.Criteria) bool {
	if cf, ok := f.(Conditional); ok {
		return cf.Applies(c)
	}
	return true
}
