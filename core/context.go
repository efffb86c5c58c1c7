package core

import "github.com/rushteam/dinekit/pkg/utils"

// RecommendContext 承载单次请求的过滤条件与会话信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	SessionID string

	// Criteria 关键词过滤条件，过滤 Node 从这里读取各自的参数
	Criteria *Criteria

	// Mode 当前会话的个性化模式
	Mode Mode

	// Labels 是请求级标签，Node 用它向调用方回传提示
	Labels map[string]utils.Label
}

// GetCriteria 返回过滤条件，nil 时返回空条件。
func (rctx *RecommendContext) GetCriteria() *Criteria {
	if rctx == nil || rctx.Criteria == nil {
		return &Criteria{}
	}
	return rctx.Criteria
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
