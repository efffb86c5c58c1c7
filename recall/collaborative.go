package recall

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/metrics"
	"github.com/rushteam/dinekit/pkg/validation"
)

// GenericReason 是未知用户退化为通用推荐时给调用方的提示。
const GenericReason = "no personal data available for this user_id yet; showing the generic recommendation computed from all users"

// Collaborative 是基于矩阵分解的协同过滤召回源。
//
//   - 用户在模型中：predicted = mean + user_bias + item_bias + user_latent · item_latent，
//     并排除用户已评价过的商家
//   - 用户不在模型中：退化为 mean + item_bias 的通用预测（Prediction.Kind = Generic）
//
// 预测值按行号与商家 ID 配对，行数必须与商家索引数量一致，否则返回 INTEGRITY_VIOLATION。
type Collaborative struct {
	Factors LatentFactorStore
	History History
	Catalog Catalog
	Logger  zerolog.Logger
}

func (c *Collaborative) Name() string    { return "recall.collaborative" }
func (c *Collaborative) Mode() core.Mode { return core.ModeCollaborative }

// Predict 计算所有已索引商家的预测评分（未 join、未排除）。
func (c *Collaborative) Predict(ctx context.Context, userID string) (*Prediction, error) {
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}

	m, err := c.Factors.LatentFactors(ctx)
	if err != nil {
		return nil, err
	}

	pred := &Prediction{Kind: Personalized}
	var values []float64
	if row, ok := m.UserRow(userID); ok {
		values = m.PredictUser(row)
	} else {
		pred.Kind = Generic
		pred.Reason = GenericReason
		values = m.PredictGeneric()
		metrics.GenericFallbacks.Inc()
	}

	ids := m.ItemIDs()
	if len(ids) != len(values) {
		err := core.NewIntegrityError(core.ModuleRecall,
			"collaborative: %d predicted ratings but %d indexed businesses", len(values), len(ids))
		c.Logger.Error().Err(err).Str("user_id", userID).Msg("prediction rows do not match the item index")
		return nil, err
	}

	pred.Scores = make([]Scored, len(values))
	for i, v := range values {
		pred.Scores[i] = Scored{BusinessID: ids[i], Score: v}
	}
	return pred, nil
}

func (c *Collaborative) Recall(ctx context.Context, userID string) (*Outcome, error) {
	pred, err := c.Predict(ctx, userID)
	if err != nil {
		return nil, err
	}

	var exclude map[string]struct{}
	if pred.Kind == Personalized {
		if exclude, err = c.History.RatedBy(ctx, userID); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Prediction: pred,
		Candidates: joinCatalog(c.Catalog, pred.Scores, exclude, core.ColumnPredictedStars, "collaborative"),
		Column:     core.ColumnPredictedStars,
	}, nil
}
