package recall

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/model"
)

// StaticLatentFactors 把内存中的矩阵分解产物适配为 LatentFactorStore。
type StaticLatentFactors struct {
	Model *model.LatentFactors
}

func (s *StaticLatentFactors) LatentFactors(_ context.Context) (*model.LatentFactors, error) {
	if s == nil || s.Model == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeUnavailable, "collaborative model is not loaded")
	}
	return s.Model, nil
}

// StaticFeatures 把内存中的特征库适配为 FeatureStore。
type StaticFeatures struct {
	Store *model.FeatureStore
}

func (s *StaticFeatures) Features(_ context.Context) (*model.FeatureStore, error) {
	if s == nil || s.Store == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeUnavailable, "feature vectors are not loaded")
	}
	return s.Store, nil
}
