package rerank

import (
	"context"
	"fmt"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个候选。
// 截断必须发生在召回结果与商家目录 join 之后，否则会偏向恰好能 join 上的商家。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.SortNode{Column: core.ColumnAdjustedScore}, // 排序
//	        &rerank.TopNNode{N: 5},                            // 截取 Top 5
//	    },
//	}
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	// 如果 N <= 0，则返回所有候选（不截断）
	// 如果 N > len(items)，则返回所有候选
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

// Page 是展示给调用方的一页推荐：前 N 条候选，只保留展示列。
type Page struct {
	Candidates []*core.Candidate
	Columns    []string

	// Total 截断前的候选总数
	Total int

	// Note 例如 "top 5 of 42" / "all 3"
	Note string
}

// ErrNoRecommendation 当前候选集为空。
var ErrNoRecommendation = core.NewDomainError(core.ModuleEngine, core.ErrorCodeNoMatch, "sorry, there is no matching recommendations")

// Display 返回已排序结果的前 n 条（n <= 0 时使用默认的 5 条）。
// 结果为空时返回 NO_MATCH；n 不小于候选数量时返回全部并在 Note 中说明。
func Display(ctx context.Context, result *core.Result, n int) (*Page, error) {
	if result.Len() == 0 {
		return nil, ErrNoRecommendation
	}
	if n <= 0 {
		n = core.DefaultDisplayCount
	}

	rows, err := (&TopNNode{N: n}).Process(ctx, nil, result.Candidates)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Candidates: rows,
		Columns:    append([]string(nil), result.Columns...),
		Total:      result.Len(),
	}
	if n >= page.Total {
		page.Note = fmt.Sprintf("Below is a list of all %d recommended restaurants for you (fewer than the %d requested):", page.Total, n)
	} else {
		page.Note = fmt.Sprintf("Below is a list of the top %d recommended restaurants for you:", n)
	}
	return page, nil
}

// Rows 返回按展示列格式化后的表格数据。
func (p *Page) Rows() [][]string {
	out := make([][]string, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		row := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			row[i] = c.Value(col)
		}
		out = append(out, row)
	}
	return out
}
