package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

func testCandidate() *core.Candidate {
	c := core.NewCandidate(&core.Business{
		ID:          "b1",
		Name:        "Taco Town",
		City:        "Las Vegas",
		State:       "NV",
		PriceTier:   "1",
		Cuisine:     []string{"mexican", "tacos"},
		Style:       []string{"fast food"},
		Stars:       4.5,
		ReviewCount: 120,
		IsOpen:      true,
	})
	c.SetScore(core.ColumnDistance, 2.5)
	return c
}

func TestProgram_Match(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`business.review_count > 100`, true},
		{`business.review_count > 100 && business.stars >= 4.8`, false},
		{`"tacos" in business.cuisine`, true},
		{`"sushi bars" in business.cuisine`, false},
		{`business.city.startsWith("Las")`, true},
		{`score.distance_to_interest < 3.0`, true},
		{`business.price == "2"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := p.Match(testCandidate())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Cached(t *testing.T) {
	p1, err := Compile(`business.stars > 1.0`)
	require.NoError(t, err)
	p2, err := Compile(`business.stars > 1.0`)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`business.stars >`)
	assert.Error(t, err)
}

func TestProgram_NonBoolean(t *testing.T) {
	p, err := Compile(`business.name`)
	require.NoError(t, err)
	_, err = p.Match(testCandidate())
	assert.Error(t, err)
}
