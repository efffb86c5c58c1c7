package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

func TestSmoother_PullsTowardMean(t *testing.T) {
	s := &Smoother{K: 22, GlobalMean: 4.2}

	a := s.Adjust(5.0, 1)
	b := s.Adjust(4.0, 500)

	// 只有 1 条评论的商家被强烈拉向均值
	assert.Less(t, a-4.2, 5.0-a)
	assert.InDelta(t, 4.2348, a, 1e-3)

	// 500 条评论的商家基本保持原始评分
	assert.InDelta(t, 4.0, b, 0.01)
	assert.Greater(t, b, 4.0)
}

func TestSmoother_MonotoneShrinkage(t *testing.T) {
	businesses := []*core.Business{
		{ID: "a", Stars: 5.0, ReviewCount: 1},
		{ID: "b", Stars: 4.0, ReviewCount: 500},
		{ID: "c", Stars: 1.5, ReviewCount: 3},
		{ID: "d", Stars: 3.5, ReviewCount: 40},
		{ID: "e", Stars: 4.5, ReviewCount: 0},
	}
	s := NewSmoother(businesses, 0)
	require.Equal(t, core.DefaultDampingK, s.K)
	s.Apply(businesses)

	for _, b := range businesses {
		switch {
		case b.Stars < s.GlobalMean:
			assert.LessOrEqual(t, b.Stars, b.AdjustedScore, b.ID)
			assert.LessOrEqual(t, b.AdjustedScore, s.GlobalMean, b.ID)
		case b.Stars > s.GlobalMean:
			assert.GreaterOrEqual(t, b.Stars, b.AdjustedScore, b.ID)
			assert.GreaterOrEqual(t, b.AdjustedScore, s.GlobalMean, b.ID)
		default:
			assert.InDelta(t, s.GlobalMean, b.AdjustedScore, 1e-9, b.ID)
		}
	}
	// 没有评论时等于全局均值
	assert.InDelta(t, s.GlobalMean, businesses[4].AdjustedScore, 1e-9)
}

func TestGlobalMean(t *testing.T) {
	tests := []struct {
		name string
		bs   []*core.Business
		want float64
	}{
		{
			name: "weighted by review count",
			bs: []*core.Business{
				{Stars: 5, ReviewCount: 1},
				{Stars: 3, ReviewCount: 3},
			},
			want: 3.5,
		},
		{
			name: "no reviews falls back to plain mean",
			bs: []*core.Business{
				{Stars: 5},
				{Stars: 3},
			},
			want: 4,
		},
		{name: "empty", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GlobalMean(tt.bs), 1e-9)
		})
	}
}
