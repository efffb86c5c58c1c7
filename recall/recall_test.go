package recall

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/model"
)

const (
	knownUser   = "uuuuuuuuuuuuuuuuuuuuu1" // 22 chars
	unknownUser = "zzzzzzzzzzzzzzzzzzzzz9"
	shortUser   = "uuuuuuuuuuuuuuuuuuuuu" // 21 chars
)

type mapCatalog map[string]*core.Business

func (c mapCatalog) OpenBusiness(id string) (*core.Business, bool) {
	b, ok := c[id]
	if !ok || !b.IsOpen {
		return nil, false
	}
	return b, true
}

type fakeHistory struct {
	rated map[string]map[string]struct{}
	calls int
}

func (h *fakeHistory) RatedBy(_ context.Context, userID string) (map[string]struct{}, error) {
	h.calls++
	return h.rated[userID], nil
}

func (h *fakeHistory) HasRestaurantHistory(_ context.Context, userID string) (bool, error) {
	h.calls++
	return len(h.rated[userID]) > 0, nil
}

type countingFactors struct {
	m     *model.LatentFactors
	calls int
}

func (s *countingFactors) LatentFactors(context.Context) (*model.LatentFactors, error) {
	s.calls++
	return s.m, nil
}

type countingFeatures struct {
	fs    *model.FeatureStore
	calls int
}

func (s *countingFeatures) Features(context.Context) (*model.FeatureStore, error) {
	s.calls++
	return s.fs, nil
}

func testCatalog() mapCatalog {
	return mapCatalog{
		"b1": {ID: "b1", IsOpen: true},
		"b2": {ID: "b2", IsOpen: true},
		"b3": {ID: "b3", IsOpen: true},
		"b4": {ID: "b4", IsOpen: false},
		// b5 只在目录中，模型里没有
		"b5": {ID: "b5", IsOpen: true},
	}
}

func testFactors(t *testing.T) *model.LatentFactors {
	t.Helper()
	m := &model.LatentFactors{
		MeanRating: 3.5,
		UserBias:   []float64{0.2},
		ItemBias:   []float64{0.1, 0.3, -0.2, 0.4, 0.0},
		UserLatent: [][]float64{{1, 1}},
		ItemLatent: [][]float64{{0.1, 0.1}, {0.0, 0.2}, {0.5, 0.5}, {0.3, 0.3}, {0.2, 0.0}},
		UserIndex:  map[string]int{knownUser: 0},
		// bx 是非餐厅商家，目录中不存在
		ItemIndex: map[string]int{"b1": 0, "b2": 1, "b3": 2, "b4": 3, "bx": 4},
	}
	require.NoError(t, m.Validate())
	return m
}

func ids(items []*core.Candidate) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func newCollaborative(t *testing.T, hist *fakeHistory) (*Collaborative, *countingFactors) {
	factors := &countingFactors{m: testFactors(t)}
	return &Collaborative{
		Factors: factors,
		History: hist,
		Catalog: testCatalog(),
		Logger:  zerolog.Nop(),
	}, factors
}

func TestCollaborative_KnownUser(t *testing.T) {
	hist := &fakeHistory{rated: map[string]map[string]struct{}{knownUser: {"b1": {}}}}
	c, _ := newCollaborative(t, hist)

	pred, err := c.Predict(context.Background(), knownUser)
	require.NoError(t, err)
	assert.Equal(t, Personalized, pred.Kind)
	// 行数等于商家索引数量（join、排除之前）
	assert.Len(t, pred.Scores, 5)

	out, err := c.Recall(context.Background(), knownUser)
	require.NoError(t, err)
	// b1 已评价被排除，b4 已关店、bx 不在目录中被 join 丢弃
	// b2: 3.5+0.2+0.3+0.2=4.2, b3: 3.5+0.2-0.2+1.0=4.5
	assert.Equal(t, []string{"b3", "b2"}, ids(out.Candidates))
	s, ok := out.Candidates[0].Score(core.ColumnPredictedStars)
	require.True(t, ok)
	assert.InDelta(t, 4.5, s, 1e-9)
	assert.Equal(t, core.ColumnPredictedStars, out.Column)
}

func TestCollaborative_UnknownUserFallsBackToGeneric(t *testing.T) {
	hist := &fakeHistory{rated: map[string]map[string]struct{}{unknownUser: {"b1": {}}}}
	c, _ := newCollaborative(t, hist)

	out, err := c.Recall(context.Background(), unknownUser)
	require.NoError(t, err)
	assert.Equal(t, Generic, out.Prediction.Kind)
	assert.Equal(t, GenericReason, out.Prediction.Reason)
	// 通用推荐不做排除：b2 3.8, b1 3.6, b3 3.3
	assert.Equal(t, []string{"b2", "b1", "b3"}, ids(out.Candidates))
	assert.Zero(t, hist.calls)
}

func TestCollaborative_Idempotent(t *testing.T) {
	hist := &fakeHistory{rated: map[string]map[string]struct{}{knownUser: {"b1": {}}}}
	c, _ := newCollaborative(t, hist)

	first, err := c.Recall(context.Background(), knownUser)
	require.NoError(t, err)
	second, err := c.Recall(context.Background(), knownUser)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Candidates, second.Candidates); diff != "" {
		t.Errorf("repeated recall differs (-first +second):\n%s", diff)
	}
}

func TestCollaborative_RowCountMismatch(t *testing.T) {
	m := testFactors(t)
	m.ItemBias = append(m.ItemBias, 0.1)
	m.ItemLatent = append(m.ItemLatent, []float64{0, 0})

	c := &Collaborative{
		Factors: &StaticLatentFactors{Model: m},
		History: &fakeHistory{},
		Catalog: testCatalog(),
		Logger:  zerolog.Nop(),
	}
	_, err := c.Recall(context.Background(), knownUser)
	assert.True(t, core.IsIntegrityViolation(err))
}

func newContent(t *testing.T, hist *fakeHistory) (*Content, *countingFeatures) {
	t.Helper()
	fs, err := model.NewFeatureStore(
		[]model.Vector{{ID: knownUser, Vector: []float64{1, 0}}},
		[]model.Vector{
			{ID: "b1", Vector: []float64{0.9, 0}},
			{ID: "b2", Vector: []float64{0.1, 1}},
			{ID: "b3", Vector: []float64{0.5, 0}},
			{ID: "b4", Vector: []float64{2.0, 0}},
			{ID: "bx", Vector: []float64{3.0, 0}},
		},
	)
	require.NoError(t, err)
	features := &countingFeatures{fs: fs}
	return &Content{Features: features, History: hist, Catalog: testCatalog()}, features
}

func TestContent_Recall(t *testing.T) {
	hist := &fakeHistory{rated: map[string]map[string]struct{}{knownUser: {"b1": {}}}}
	c, _ := newContent(t, hist)

	out, err := c.Recall(context.Background(), knownUser)
	require.NoError(t, err)
	assert.Equal(t, Personalized, out.Prediction.Kind)
	assert.Equal(t, []string{"b3", "b2"}, ids(out.Candidates))
	s, _ := out.Candidates[0].Score(core.ColumnSimilarityScore)
	assert.InDelta(t, 0.5, s, 1e-9)
}

func TestContent_NoHistory(t *testing.T) {
	c, features := newContent(t, &fakeHistory{})

	_, err := c.Recall(context.Background(), unknownUser)
	assert.True(t, core.IsNoPersonalization(err))
	assert.Zero(t, features.calls)
}

func TestExclusionLaw(t *testing.T) {
	rated := map[string]struct{}{"b2": {}, "b3": {}}
	hist := &fakeHistory{rated: map[string]map[string]struct{}{knownUser: rated}}

	collab, _ := newCollaborative(t, hist)
	content, _ := newContent(t, hist)
	for _, p := range []Predictor{collab, content} {
		out, err := p.Recall(context.Background(), knownUser)
		require.NoError(t, err, p.Name())
		for _, c := range out.Candidates {
			assert.NotContains(t, rated, c.ID(), p.Name())
		}
	}
}

func TestInvalidUserID_NoStoreAccess(t *testing.T) {
	hist := &fakeHistory{}
	collab, factors := newCollaborative(t, hist)
	content, features := newContent(t, hist)

	for _, p := range []Predictor{collab, content} {
		_, err := p.Recall(context.Background(), shortUser)
		assert.True(t, core.IsInvalidInput(err), p.Name())
		assert.ErrorIs(t, err, core.ErrInvalidUserID)

		_, err = p.Recall(context.Background(), "")
		assert.ErrorIs(t, err, core.ErrNoUserID)
	}
	assert.Zero(t, factors.calls)
	assert.Zero(t, features.calls)
	assert.Zero(t, hist.calls)
}
