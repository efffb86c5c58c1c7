package recall

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/model"
)

// Predictor 是个性化召回源（协同过滤 / 基于内容）：给定用户 ID，产出按分数降序的候选集。
type Predictor interface {
	Name() string

	// Mode 返回该召回源对应的个性化模式
	Mode() core.Mode

	Recall(ctx context.Context, userID string) (*Outcome, error)
}

// PredictionKind 标记预测结果是否个性化。
type PredictionKind int

const (
	Personalized PredictionKind = iota
	Generic
)

func (k PredictionKind) String() string {
	if k == Generic {
		return "generic"
	}
	return "personalized"
}

// Scored 是一条商家预测分数。
type Scored struct {
	BusinessID string
	Score      float64
}

// Prediction 是显式标记的预测结果：Personalized(scores) 或 Generic(scores, reason)，
// 调用方无法把通用推荐误当作个性化推荐。
type Prediction struct {
	Kind   PredictionKind
	Scores []Scored
	Reason string // 仅 Generic 时非空
}

// Outcome 是一次召回的结果：原始预测 + 与商家目录 join、排除、排序后的候选集。
type Outcome struct {
	Prediction *Prediction
	Candidates []*core.Candidate

	// Column 写入候选的分数列（predicted_stars / similarity_score）
	Column string
}

// Catalog 是营业中商家的查找接口。
type Catalog interface {
	OpenBusiness(id string) (*core.Business, bool)
}

// History 是用户评价历史。
type History interface {
	// RatedBy 返回用户评价过的所有商家 ID
	RatedBy(ctx context.Context, userID string) (map[string]struct{}, error)

	// HasRestaurantHistory 用户是否评价过目录中的餐厅
	HasRestaurantHistory(ctx context.Context, userID string) (bool, error)
}

// LatentFactorStore 提供矩阵分解产物。
type LatentFactorStore interface {
	LatentFactors(ctx context.Context) (*model.LatentFactors, error)
}

// FeatureStore 提供特征向量库。
type FeatureStore interface {
	Features(ctx context.Context) (*model.FeatureStore, error)
}
