package pipeline

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// Pipeline 把推荐逻辑拆成按顺序执行的 Node 链。
// 任何 Node 返回错误都会立即终止后续 Node（过滤 Node 在候选集为空时返回 NO_MATCH）。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Names 返回各 Node 的名称，用于日志。
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		names = append(names, n.Name())
	}
	return names
}
