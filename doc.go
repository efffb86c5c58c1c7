// Package dinekit 是一个餐厅推荐工具包。
//
// 设计要点：
// - Pipeline-first: 关键词过滤通过 Node 串联（位置 → 菜系 → 风格 → 价格），顺序可由 YAML 配置
// - 三种推荐方式：关键词过滤、协同过滤（矩阵分解）、基于内容（特征相似度）
// - 平滑分数：阻尼均值把评论数少的商家拉向全局均值
// - 会话状态只由 engine.Recommender 的方法修改，每次调用返回显式的 Result
package dinekit

import (
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/engine"
	"github.com/rushteam/dinekit/pipeline"
)

// 轻量 facade：便于用户直接 import "dinekit" 使用核心抽象。
type (
	Pipeline    = pipeline.Pipeline
	Node        = pipeline.Node
	Kind        = pipeline.Kind
	Recommender = engine.Recommender
	Criteria    = core.Criteria
	Result      = core.Result
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
