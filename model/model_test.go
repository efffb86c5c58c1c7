package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
)

const latentJSON = `{
  "mean_rating": 3.5,
  "user_bias": [0.5, -0.5],
  "item_bias": [0.1, 0.2, -0.3],
  "user_latent": [[1, 0], [0, 1]],
  "item_latent": [[0.5, 0.1], [0.2, 0.4], [0.0, 0.0]],
  "userid_to_index": {"u1": 0, "u2": 1},
  "itemid_to_index": {"b2": 1, "b1": 0, "b3": 2}
}`

func TestParseLatentFactors(t *testing.T) {
	m, err := ParseLatentFactors([]byte(latentJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"b1", "b2", "b3"}, m.ItemIDs())

	row, ok := m.UserRow("u1")
	require.True(t, ok)
	got := m.PredictUser(row)
	want := []float64{3.5 + 0.5 + 0.1 + 0.5, 3.5 + 0.5 + 0.2 + 0.2, 3.5 + 0.5 - 0.3}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })); diff != "" {
		t.Errorf("PredictUser mismatch (-want +got):\n%s", diff)
	}

	_, ok = m.UserRow("unknown")
	assert.False(t, ok)
	assert.InDeltaSlice(t, []float64{3.6, 3.7, 3.2}, m.PredictGeneric(), 1e-9)
}

func TestLatentFactors_Validate(t *testing.T) {
	valid := func() *LatentFactors {
		m, err := ParseLatentFactors([]byte(latentJSON))
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name   string
		mutate func(m *LatentFactors)
	}{
		{"item bias count", func(m *LatentFactors) { m.ItemBias = m.ItemBias[:2] }},
		{"item index count", func(m *LatentFactors) { delete(m.ItemIndex, "b3") }},
		{"user bias count", func(m *LatentFactors) { m.UserBias = append(m.UserBias, 1) }},
		{"row out of range", func(m *LatentFactors) { m.ItemIndex["b3"] = 7 }},
		{"shared row", func(m *LatentFactors) { m.ItemIndex["b3"] = 0 }},
		{"dimension", func(m *LatentFactors) { m.ItemLatent[1] = []float64{1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)
			assert.True(t, core.IsIntegrityViolation(m.Validate()))
		})
	}
}

func TestFeatureStore(t *testing.T) {
	s, err := ParseFeatureStore([]byte(`{
	  "users": [{"id": "u1", "vector": [1, 2]}],
	  "businesses": [{"id": "b1", "vector": [1, 0]}, {"id": "b2", "vector": [0.5, 1]}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Dim())

	u, ok := s.User("u1")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{1, 2.5}, s.Similarity(u), 1e-9)

	_, ok = s.User("u2")
	assert.False(t, ok)
}

func TestNewFeatureStore_Integrity(t *testing.T) {
	_, err := NewFeatureStore(
		[]Vector{{ID: "u1", Vector: []float64{1, 2}}},
		[]Vector{{ID: "b1", Vector: []float64{1, 2, 3}}},
	)
	assert.True(t, core.IsIntegrityViolation(err))

	_, err = NewFeatureStore(nil, []Vector{{ID: "b1", Vector: []float64{1}}, {ID: "b1", Vector: []float64{2}}})
	assert.True(t, core.IsIntegrityViolation(err))
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float64{1, 2}, []float64{3, 4}), 1e-9)
	assert.Zero(t, Dot([]float64{1}, []float64{1, 2}))
}
