package pipeline

import (
	"context"

	"github.com/rushteam/dinekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集（协同过滤 / 基于内容）
	KindFilter      Kind = "filter"      // 过滤阶段：位置、菜系、风格、价格
	KindRank        Kind = "rank"        // 排序阶段：按分数列排序
	KindReRank      Kind = "rerank"      // 重排阶段：TopN 截断
	KindPostProcess Kind = "postprocess" // 后处理阶段
)

// Node 是 Pipeline 的最小可扩展单元，统一采用“输入候选 -> 输出候选”的形态。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Candidate,
	) ([]*core.Candidate, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(config map[string]any) (Node, error)
