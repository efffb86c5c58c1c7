package recall

import (
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/utils"
	"github.com/rushteam/dinekit/rank"
)

// joinCatalog 把预测结果与营业中商家目录按 ID 做 inner join（目录中没有的预测被丢弃），
// 跳过 exclude 中的商家，写入分数列后按分数降序稳定排序。
// join 必须发生在任何 TopN 截断之前。
func joinCatalog(cat Catalog, scores []Scored, exclude map[string]struct{}, column, source string) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(scores))
	for _, s := range scores {
		if _, skip := exclude[s.BusinessID]; skip {
			continue
		}
		b, ok := cat.OpenBusiness(s.BusinessID)
		if !ok {
			continue
		}
		c := core.NewCandidate(b)
		c.SetScore(column, s.Score)
		c.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
		out = append(out, c)
	}
	rank.SortByScore(out, column)
	return out
}
