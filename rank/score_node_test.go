package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

func ids(items []*core.Candidate) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func TestSortByScore_StableDescending(t *testing.T) {
	items := core.FromBusinesses([]*core.Business{
		{ID: "a", AdjustedScore: 3.9},
		{ID: "b", AdjustedScore: 4.1},
		{ID: "c", AdjustedScore: 3.9},
		{ID: "d", AdjustedScore: 4.5},
	})
	SortByScore(items, core.ColumnAdjustedScore)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(items))
}

func TestSortByScore_MissingColumnLast(t *testing.T) {
	items := core.FromBusinesses([]*core.Business{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	items[1].SetScore(core.ColumnPredictedStars, 2.0)
	items[2].SetScore(core.ColumnPredictedStars, 4.0)

	SortByScore(items, core.ColumnPredictedStars)
	assert.Equal(t, []string{"c", "b", "a"}, ids(items))
}

func TestSortNode_Process(t *testing.T) {
	items := core.FromBusinesses([]*core.Business{
		{ID: "a", Stars: 3},
		{ID: "b", Stars: 5},
	})
	out, err := (&SortNode{Column: core.ColumnStars}).Process(context.Background(), nil, items)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(out))
	assert.Equal(t, core.ColumnStars, out[0].Labels["rank_score"].Value)
}

func TestScoreColumn(t *testing.T) {
	tests := []struct {
		name         string
		personalized bool
		mode         core.Mode
		original     bool
		want         string
	}{
		{"collaborative", true, core.ModeCollaborative, true, core.ColumnPredictedStars},
		{"content", true, core.ModeContent, false, core.ColumnSimilarityScore},
		{"personalized without mode", true, core.ModeNone, false, core.ColumnAdjustedScore},
		{"original score", false, core.ModeContent, true, core.ColumnStars},
		{"default", false, core.ModeNone, false, core.ColumnAdjustedScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreColumn(tt.personalized, tt.mode, tt.original))
		})
	}
}
