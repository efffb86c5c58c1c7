package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/metrics"
	"github.com/rushteam/dinekit/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该候选就会被过滤掉。
// 过滤后候选集为空时返回 NO_MATCH，Criterion 为本 Node 的过滤条件。
type FilterNode struct {
	Criterion string
	Filters   []Filter

	// Message 自定义 NO_MATCH 消息，默认根据 Criterion 生成
	Message string
}

func (n *FilterNode) Name() string {
	if n.Criterion == "" {
		return "filter.node"
	}
	return "filter." + n.Criterion
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	crit := rctx.GetCriteria()

	active := make([]Filter, 0, len(n.Filters))
	for _, f := range n.Filters {
		if applies(f, crit) {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return items, nil
	}

	out := make([]*core.Candidate, 0, len(items))
	for _, item := range items {
		if item == nil || item.Business == nil {
			continue
		}

		drop := false
		for _, f := range active {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name(), err)
			}
			if ok {
				drop = true
				break
			}
		}
		if drop {
			continue
		}

		item.PutLabel("filtered_by", utils.Label{Value: n.Name(), Source: "filter"})
		out = append(out, item)
	}

	if len(out) == 0 {
		metrics.FilterNoMatch.WithLabelValues(n.Criterion).Inc()
		return nil, core.NewNoMatchError(n.Criterion, n.noMatchMessage())
	}
	return out, nil
}

func (n *FilterNode) noMatchMessage() string {
	if n.Message != "" {
		return n.Message
	}
	return fmt.Sprintf("no matching restaurant found for the %s of interest", n.Criterion)
}
