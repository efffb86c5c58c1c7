package rank

import (
	"context"
	"sort"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/utils"
)

// SortNode 按某一分数列降序排序候选集。
// - 排序稳定：分数相同的候选保持原有顺序，保证重复调用结果一致
// - 不携带该列的候选排在末尾
// - 写入 labels：rank_score
type SortNode struct {
	Column string
}

func (n *SortNode) Name() string        { return "rank.sort" }
func (n *SortNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Column == "" || len(items) == 0 {
		return items, nil
	}
	for _, it := range items {
		it.PutLabel("rank_score", utils.Label{Value: n.Column, Source: "rank"})
	}
	SortByScore(items, n.Column)
	return items, nil
}

// SortByScore 按 column 降序稳定排序。
func SortByScore(items []*core.Candidate, column string) {
	sort.SliceStable(items, func(i, j int) bool {
		si, oki := items[i].Score(column)
		sj, okj := items[j].Score(column)
		switch {
		case oki && !okj:
			return true
		case !oki:
			return false
		}
		return si > sj
	})
}

// ScoreColumn 选择排序分数列，按顺序判断：
// 个性化模式用模式对应的分数列；否则 originalScore 用原始评分；默认用平滑分数。
func ScoreColumn(personalized bool, mode core.Mode, originalScore bool) string {
	if personalized && mode != core.ModeNone {
		return mode.ScoreColumn()
	}
	if originalScore {
		return core.ColumnStars
	}
	return core.ColumnAdjustedScore
}
