// Package engine 是推荐状态控制器：持有会话状态（个性化模式、当前候选集、展示列），
// 编排关键词过滤、协同过滤、基于内容三种推荐方式以及 TopN 展示。
//
// 每个顶层调用（Keyword / Collaborative / Content）都从全新的候选集开始
// （营业商家目录，或调用方显式传入的上一次结果），派生列不会跨调用残留。
package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/config"
	_ "github.com/rushteam/dinekit/config/builders"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/filter"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/conv"
	"github.com/rushteam/dinekit/pkg/metrics"
	"github.com/rushteam/dinekit/pkg/validation"
	"github.com/rushteam/dinekit/rank"
	"github.com/rushteam/dinekit/recall"
	"github.com/rushteam/dinekit/rerank"
)

// Session 是会话状态快照。
type Session struct {
	ID     string
	Mode   core.Mode
	Result *core.Result
}

// KeywordRequest 是关键词推荐请求。
type KeywordRequest struct {
	Criteria core.Criteria

	// Personalized 按当前个性化模式的分数列排序，要求候选集已携带该列
	Personalized bool

	// OriginalScore 按原始评分而不是平滑分数排序
	OriginalScore bool

	// Base 在上一次结果上继续过滤；为 nil 时使用全部营业商家
	Base *core.Result
}

// Recommender 是推荐状态控制器，会话状态只由自身方法修改。
type Recommender struct {
	catalog    *catalog.Catalog
	filters    *pipeline.Pipeline
	predictors map[core.Mode]recall.Predictor
	opts       *options
	logger     zerolog.Logger

	mu      sync.Mutex
	session Session
}

// New 创建控制器，并把会话初始化为按分数排序的全部营业商家。
func New(cat *catalog.Catalog, opts ...Option) (*Recommender, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	filters, err := buildFilters(o)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	r := &Recommender{
		catalog:    cat,
		filters:    filters,
		predictors: make(map[core.Mode]recall.Predictor, len(o.predictors)),
		opts:       o,
		logger:     o.logger.With().Str("component", "engine").Str("session_id", sessionID).Logger(),
	}
	for _, p := range o.predictors {
		r.predictors[p.Mode()] = p
	}

	initial := cat.Open()
	column := rank.ScoreColumn(false, core.ModeNone, o.originalScore)
	rank.SortByScore(initial, column)
	r.session = Session{
		ID:   sessionID,
		Mode: core.ModeNone,
		Result: &core.Result{
			Candidates:  initial,
			Columns:     core.DisplayColumns(),
			ScoreColumn: column,
		},
	}

	r.logger.Info().Int("open_businesses", len(initial)).Strs("filters", filters.Names()).Msg("recommender ready")
	return r, nil
}

// buildFilters 按配置构建过滤 Pipeline；filter.location 依赖地理编码器，在这里注册。
func buildFilters(o *options) (*pipeline.Pipeline, error) {
	cfg := o.pipeline
	if cfg == nil {
		cfg = pipeline.DefaultKeywordConfig()
	}
	if err := config.ValidatePipelineConfig(cfg, "filter.location"); err != nil {
		return nil, err
	}

	factory := config.DefaultFactory()
	factory.Register("filter.location", func(c map[string]any) (pipeline.Node, error) {
		policy, ok := filter.ParseGeocodePolicy(conv.ConfigGet(c, "geocode_failure", string(o.policy)))
		if !ok {
			return nil, core.NewDomainError(core.ModuleFilter, core.ErrorCodeInvalidInput, "invalid geocode_failure policy")
		}
		return &filter.LocationNode{
			Geocoder:    o.geocoder,
			Policy:      policy,
			MaxDistance: conv.ConfigGetFloat64(c, "max_distance", o.maxDistance),
			Logger:      o.logger.With().Str("component", "filter.location").Logger(),
		}, nil
	})
	return cfg.BuildPipeline(factory)
}

// Keyword 关键词推荐：依次按位置、菜系、风格、价格过滤后排序。
// 个性化模式不被修改；过滤为空或地理编码失败时当前候选集被置空并返回错误；
// 请求校验失败时会话保持不变。
func (r *Recommender) Keyword(ctx context.Context, req KeywordRequest) (*core.Result, error) {
	res, err := r.keyword(ctx, req)
	metrics.Requests.WithLabelValues("keyword", outcome(err)).Inc()
	return res, err
}

func (r *Recommender) keyword(ctx context.Context, req KeywordRequest) (*core.Result, error) {
	if err := validation.Struct(&req.Criteria); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var base []*core.Candidate
	if req.Base != nil {
		base = core.CloneAll(req.Base.Candidates, core.ColumnDistance)
	} else {
		base = r.catalog.Open()
	}

	mode := r.session.Mode
	if req.Personalized && !carriesScore(base, mode) {
		return nil, core.ErrNoPersonalizedResult
	}

	crit := req.Criteria
	rctx := &core.RecommendContext{
		SessionID: r.session.ID,
		Criteria:  &crit,
		Mode:      mode,
	}

	out, err := r.filters.Run(ctx, rctx, base)
	if err != nil {
		if core.IsNoMatch(err) || core.IsGeocodeFailure(err) {
			r.session.Result = &core.Result{Mode: mode, Columns: core.DisplayColumns()}
		}
		r.logger.Info().Err(err).Msg("keyword filtering stopped")
		return nil, err
	}

	column := rank.ScoreColumn(req.Personalized, mode, req.OriginalScore)
	out, err = (&rank.SortNode{Column: column}).Process(ctx, rctx, out)
	if err != nil {
		return nil, err
	}

	var leading []string
	if req.Personalized {
		leading = append(leading, column)
	}
	if len(out) > 0 && out[0].Has(core.ColumnDistance) {
		leading = append(leading, core.ColumnDistance)
	}

	res := &core.Result{
		Candidates:  out,
		Columns:     core.DisplayColumns(leading...),
		Mode:        mode,
		ScoreColumn: column,
	}
	if lbl, ok := rctx.GetLabel(filter.LabelLocationSkipped); ok {
		res.Notice = "location filter skipped: " + lbl.Value
	}
	r.session.Result = res
	return res, nil
}

// Refine 在当前会话结果上继续关键词过滤。
func (r *Recommender) Refine(ctx context.Context, crit core.Criteria, personalized, originalScore bool) (*core.Result, error) {
	return r.Keyword(ctx, KeywordRequest{
		Criteria:      crit,
		Personalized:  personalized,
		OriginalScore: originalScore,
		Base:          r.Session().Result,
	})
}

// carriesScore 候选集是否处在个性化模式且每个候选都携带该模式的分数列。
func carriesScore(items []*core.Candidate, mode core.Mode) bool {
	column := mode.ScoreColumn()
	if column == "" || len(items) == 0 {
		return false
	}
	for _, it := range items {
		if !it.Has(column) {
			return false
		}
	}
	return true
}

// Collaborative 协同过滤推荐。未知用户得到通用推荐，Result.Notice 说明原因。
func (r *Recommender) Collaborative(ctx context.Context, userID string) (*core.Result, error) {
	res, err := r.personalize(ctx, core.ModeCollaborative, userID)
	metrics.Requests.WithLabelValues("collaborative", outcome(err)).Inc()
	return res, err
}

// Content 基于内容的推荐。没有餐厅评价历史的用户返回 NO_PERSONALIZATION。
func (r *Recommender) Content(ctx context.Context, userID string) (*core.Result, error) {
	res, err := r.personalize(ctx, core.ModeContent, userID)
	metrics.Requests.WithLabelValues("content", outcome(err)).Inc()
	return res, err
}

// personalize 执行个性化召回；失败时会话保持不变。
func (r *Recommender) personalize(ctx context.Context, mode core.Mode, userID string) (*core.Result, error) {
	p, ok := r.predictors[mode]
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotSupported, mode.String()+" recommendation is not available")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out, err := p.Recall(ctx, userID)
	if err != nil {
		ev := r.logger.Info()
		if core.IsIntegrityViolation(err) {
			ev = r.logger.Error()
		}
		ev.Err(err).Str("predictor", p.Name()).Msg("personalized recommendation failed")
		return nil, err
	}

	res := &core.Result{
		Candidates:  out.Candidates,
		Columns:     core.DisplayColumns(out.Column),
		Mode:        mode,
		ScoreColumn: out.Column,
	}
	if out.Prediction.Kind == recall.Generic {
		res.Notice = out.Prediction.Reason
		r.logger.Warn().Str("predictor", p.Name()).Msg("user not in model, serving generic recommendation")
	}

	r.session.Mode = mode
	r.session.Result = res
	return res, nil
}

// Display 返回当前结果的前 n 条，n <= 0 时使用配置的默认数量。
func (r *Recommender) Display(ctx context.Context, n int) (*rerank.Page, error) {
	if n <= 0 {
		n = r.opts.displayCount
	}
	return rerank.Display(ctx, r.Session().Result, n)
}

// Session 返回会话状态快照。
func (r *Recommender) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Close 释放缓存等资源。
func (r *Recommender) Close() error {
	var errs []error
	for _, fn := range r.opts.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case core.IsInvalidInput(err):
		return "invalid"
	case core.IsNoMatch(err):
		return "no_match"
	case core.IsNoPersonalization(err):
		return "no_personalization"
	case core.IsGeocodeFailure(err):
		return "geocode"
	case core.IsIntegrityViolation(err):
		return "integrity"
	}
	return "error"
}
