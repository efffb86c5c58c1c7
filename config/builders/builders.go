// Package builders 在 init 中注册内置的过滤 Node 构建器。
package builders

import (
	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/conv"
	"github.com/rushteam/dinekit/pkg/dsl"
)

func init() {
	config.Register("filter.cuisine", BuildCuisineNode)
	config.Register("filter.style", BuildStyleNode)
	config.Register("filter.price", BuildPriceNode)
	config.Register("filter.expr", BuildExprNode)
}

func BuildCuisineNode(cfg map[string]any) (pipeline.Node, error) {
	n := filter.NewCuisineNode()
	n.Message = conv.ConfigGet(cfg, "message", n.Message)
	return n, nil
}

func BuildStyleNode(cfg map[string]any) (pipeline.Node, error) {
	n := filter.NewStyleNode()
	n.Message = conv.ConfigGet(cfg, "message", n.Message)
	return n, nil
}

func BuildPriceNode(cfg map[string]any) (pipeline.Node, error) {
	n := filter.NewPriceNode()
	n.Message = conv.ConfigGet(cfg, "message", n.Message)
	return n, nil
}

// BuildExprNode 构建表达式过滤 Node；配置了 expr 时在构建阶段编译，尽早暴露语法错误。
func BuildExprNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr != "" {
		if _, err := dsl.Compile(expr); err != nil {
			return nil, err
		}
	}
	n := filter.NewExprNode(expr)
	n.Message = conv.ConfigGet(cfg, "message", n.Message)
	return n, nil
}
