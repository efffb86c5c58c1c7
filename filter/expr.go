package filter

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤：表达式为 false 的候选被移除。
// 表达式来自 Criteria.Expr；Expr 非空时优先使用固定表达式（来自配置）。
//
// 示例：business.review_count > 100 && business.stars >= 4.0
type ExprFilter struct {
	Expr string
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) Applies(c *core.Criteria) bool { return f.Expr != "" || c.Expr != "" }

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Candidate) (bool, error) {
	expr := f.Expr
	if expr == "" {
		expr = rctx.GetCriteria().Expr
	}
	prg, err := dsl.Compile(expr)
	if err != nil {
		return false, core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput, "invalid filter expression: "+err.Error())
	}
	ok, err := prg.Match(item)
	if err != nil {
		return false, core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput, "invalid filter expression: "+err.Error())
	}
	return !ok, nil
}

// NewExprNode 创建表达式过滤 Node，expr 为空时从请求条件读取。
func NewExprNode(expr string) *FilterNode {
	return &FilterNode{
		Criterion: CriterionExpr,
		Filters:   []Filter{&ExprFilter{Expr: expr}},
		Message:   "no matching restaurant found for the expression of interest",
	}
}
