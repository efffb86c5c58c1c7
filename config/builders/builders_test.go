package builders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
)

func TestRegisteredBuilders(t *testing.T) {
	types := config.SupportedTypes()
	for _, want := range []string{"filter.cuisine", "filter.style", "filter.price", "filter.expr"} {
		assert.Contains(t, types, want)
	}
}

func TestBuildFromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: keyword
  nodes:
    - type: filter.cuisine
      config:
        message: no tacos here
    - type: filter.expr
      config:
        expr: business.stars >= 4.0
`))
	require.NoError(t, err)
	require.NoError(t, config.ValidatePipelineConfig(cfg))

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	require.NoError(t, err)
	require.Len(t, p.Nodes, 2)

	items := core.FromBusinesses([]*core.Business{
		{ID: "a", Cuisine: []string{"tacos"}, Stars: 4.5},
		{ID: "b", Cuisine: []string{"tacos"}, Stars: 3.0},
		{ID: "c", Cuisine: []string{"pizza"}, Stars: 5.0},
	})
	out, err := p.Run(context.Background(), &core.RecommendContext{Criteria: &core.Criteria{Cuisine: "tacos"}}, items)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID())

	_, err = p.Run(context.Background(), &core.RecommendContext{Criteria: &core.Criteria{Cuisine: "sushi"}}, items)
	assert.True(t, core.IsNoMatch(err))
	assert.Equal(t, "no tacos here", core.GetDomainError(err).Message)
}

func TestBuildExprNode_InvalidExpr(t *testing.T) {
	_, err := BuildExprNode(map[string]any{"expr": "business.stars >="})
	assert.Error(t, err)
}
