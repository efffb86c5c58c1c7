package core

import (
	"strconv"
	"strings"

	"github.com/rushteam/dinekit/pkg/utils"
)

// Candidate 是候选集中的一行：商家记录 + 派生分数列 + 标签。
// Scores 只存放派生列（距离、预测评分、相似度），原始评分与平滑分数来自 Business。
type Candidate struct {
	Business *Business
	Scores   map[string]float64
	Labels   map[string]utils.Label
}

func NewCandidate(b *Business) *Candidate {
	return &Candidate{
		Business: b,
		Scores:   make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// ID 返回商家 ID。
func (c *Candidate) ID() string {
	if c.Business == nil {
		return ""
	}
	return c.Business.ID
}

// Score 读取数值列：stars / adjusted_score 来自商家记录，其余来自派生列。
func (c *Candidate) Score(column string) (float64, bool) {
	switch column {
	case ColumnStars:
		return c.Business.Stars, true
	case ColumnAdjustedScore:
		return c.Business.AdjustedScore, true
	case ColumnReviewCount:
		return float64(c.Business.ReviewCount), true
	}
	v, ok := c.Scores[column]
	return v, ok
}

// SetScore 写入派生列。
func (c *Candidate) SetScore(column string, v float64) {
	if c.Scores == nil {
		c.Scores = make(map[string]float64)
	}
	c.Scores[column] = v
}

// Has 判断候选是否携带某个派生列。
func (c *Candidate) Has(column string) bool {
	_, ok := c.Score(column)
	return ok
}

// Clone 复制候选（共享只读的 Business），可选地丢弃部分派生列。
func (c *Candidate) Clone(drop ...string) *Candidate {
	out := NewCandidate(c.Business)
	for k, v := range c.Scores {
		out.Scores[k] = v
	}
	for _, k := range drop {
		delete(out.Scores, k)
	}
	for k, v := range c.Labels {
		out.Labels[k] = v
	}
	return out
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}

// Value 按展示列名返回格式化后的字段值。
func (c *Candidate) Value(column string) string {
	b := c.Business
	switch column {
	case ColumnState:
		return b.State
	case ColumnCity:
		return b.City
	case ColumnName:
		return b.Name
	case ColumnAddress:
		return b.Address
	case ColumnPostalCode:
		return b.PostalCode
	case ColumnPrice:
		return b.PriceTier
	case ColumnCuisine:
		return strings.Join(b.Cuisine, ",")
	case ColumnStyle:
		return strings.Join(b.Style, ",")
	case ColumnReviewCount:
		return strconv.Itoa(b.ReviewCount)
	case ColumnBusinessID:
		return b.ID
	}
	if v, ok := c.Score(column); ok {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return ""
}

// FromBusinesses 为每个商家创建一条全新的候选。
func FromBusinesses(bs []*Business) []*Candidate {
	out := make([]*Candidate, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewCandidate(b))
	}
	return out
}

// CloneAll 复制整个候选集。
func CloneAll(items []*Candidate, drop ...string) []*Candidate {
	out := make([]*Candidate, 0, len(items))
	for _, it := range items {
		if it == nil || it.Business == nil {
			continue
		}
		out = append(out, it.Clone(drop...))
	}
	return out
}
