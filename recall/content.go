package recall

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/validation"
)

// Content 是基于内容的召回源：用户特征向量与每个商家特征向量的线性核相似度。
//
// 用户必须评价过目录中的餐厅，否则返回 NO_PERSONALIZATION（没有通用兜底）。
// 只有同时出现在特征库与营业商家目录中的商家会保留，用户评价过的商家被排除。
type Content struct {
	Features FeatureStore
	History  History
	Catalog  Catalog
}

func (c *Content) Name() string    { return "recall.content" }
func (c *Content) Mode() core.Mode { return core.ModeContent }

// Predict 计算特征库中每个商家的相似度（未 join、未排除）。
func (c *Content) Predict(ctx context.Context, userID string) (*Prediction, error) {
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}

	ok, err := c.History.HasRestaurantHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrNoPersonalData
	}

	fs, err := c.Features.Features(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := fs.User(userID)
	if !ok {
		return nil, core.ErrNoPersonalData
	}

	sims := fs.Similarity(user)
	businesses := fs.Businesses()
	pred := &Prediction{Kind: Personalized, Scores: make([]Scored, len(sims))}
	for i, s := range sims {
		pred.Scores[i] = Scored{BusinessID: businesses[i].ID, Score: s}
	}
	return pred, nil
}

func (c *Content) Recall(ctx context.Context, userID string) (*Outcome, error) {
	pred, err := c.Predict(ctx, userID)
	if err != nil {
		return nil, err
	}

	rated, err := c.History.RatedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Prediction: pred,
		Candidates: joinCatalog(c.Catalog, pred.Scores, rated, core.ColumnSimilarityScore, "content"),
		Column:     core.ColumnSimilarityScore,
	}, nil
}
