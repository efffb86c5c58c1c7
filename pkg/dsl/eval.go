package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/dinekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once

	// programs 缓存已编译的表达式：expr -> *Program
	programs sync.Map
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("business", cel.DynType),
			cel.Variable("score", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的过滤表达式，使用 CEL (Common Expression Language) 语法。
//
// 可用变量：
//   - business: id / name / city / state / postal_code / price / cuisine / style /
//     stars / adjusted_score / review_count / latitude / longitude / is_open
//   - score: 派生列，例如 score.distance_to_interest、score.predicted_stars
//
// 示例：
//   - `business.review_count > 100 && business.stars >= 4.0`
//   - `"tacos" in business.cuisine`
//   - `business.city.startsWith("Las")`
type Program struct {
	Expr string
	prg  cel.Program
}

// Compile 编译表达式；相同表达式只编译一次。
func Compile(expr string) (*Program, error) {
	if p, ok := programs.Load(expr); ok {
		return p.(*Program), nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	p := &Program{Expr: expr, prg: prg}
	actual, _ := programs.LoadOrStore(expr, p)
	return actual.(*Program), nil
}

// Match 对单个候选求值，表达式必须返回布尔值。
func (p *Program) Match(c *core.Candidate) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(c))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(c *core.Candidate) map[string]any {
	b := c.Business
	business := map[string]any{
		"id":             b.ID,
		"name":           b.Name,
		"address":        b.Address,
		"city":           b.City,
		"state":          b.State,
		"postal_code":    b.PostalCode,
		"price":          b.PriceTier,
		"cuisine":        stringsOrEmpty(b.Cuisine),
		"style":          stringsOrEmpty(b.Style),
		"stars":          b.Stars,
		"adjusted_score": b.AdjustedScore,
		"review_count":   int64(b.ReviewCount),
		"latitude":       b.Latitude,
		"longitude":      b.Longitude,
		"is_open":        b.IsOpen,
	}
	score := make(map[string]any, len(c.Scores))
	for k, v := range c.Scores {
		score[k] = v
	}
	return map[string]any{
		"business": business,
		"score":    score,
	}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
