package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

func result(n int) *core.Result {
	bs := make([]*core.Business, 0, n)
	for i := 0; i < n; i++ {
		bs = append(bs, &core.Business{ID: string(rune('a' + i)), Name: "R" + string(rune('a'+i)), Stars: float64(5 - i)})
	}
	return &core.Result{
		Candidates: core.FromBusinesses(bs),
		Columns:    []string{core.ColumnName, core.ColumnStars},
	}
}

func TestTopNNode(t *testing.T) {
	items := result(4).Candidates
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 4},
		{n: 2, want: 2},
		{n: 4, want: 4},
		{n: 9, want: 4},
	}
	for _, tt := range tests {
		out, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, items)
		require.NoError(t, err)
		assert.Len(t, out, tt.want)
	}
}

func TestDisplay(t *testing.T) {
	ctx := context.Background()

	page, err := Display(ctx, result(8), 0)
	require.NoError(t, err)
	assert.Len(t, page.Candidates, core.DefaultDisplayCount)
	assert.Equal(t, 8, page.Total)
	assert.Contains(t, page.Note, "top 5")

	page, err = Display(ctx, result(3), 5)
	require.NoError(t, err)
	assert.Len(t, page.Candidates, 3)
	assert.Contains(t, page.Note, "all 3")

	assert.Equal(t, [][]string{{"Ra", "5.000"}, {"Rb", "4.000"}, {"Rc", "3.000"}}, page.Rows())
}

func TestDisplay_Empty(t *testing.T) {
	_, err := Display(context.Background(), &core.Result{}, 5)
	assert.True(t, core.IsNoMatch(err))

	_, err = Display(context.Background(), nil, 5)
	assert.ErrorIs(t, err, ErrNoRecommendation)
}
