package rank

import "github.com/rushteam/dinekit/core"

// Smoother 用阻尼均值（Bayesian average）平滑商家评分：
//
//	adjusted = (review_count * stars + k * global_mean) / (review_count + k)
//
// 评论数越少的商家越被拉向全局均值；评论数足够多时接近原始评分。
// 结果总是落在 stars 与 global_mean 之间。
type Smoother struct {
	// K 阻尼强度，默认取商家评论数的中位数 22
	K float64

	// GlobalMean 以评论数加权的全局平均评分
	GlobalMean float64
}

// NewSmoother 基于整个商家数据集计算全局均值。k <= 0 时使用 core.DefaultDampingK。
func NewSmoother(businesses []*core.Business, k float64) *Smoother {
	if k <= 0 {
		k = core.DefaultDampingK
	}
	return &Smoother{K: k, GlobalMean: GlobalMean(businesses)}
}

// GlobalMean 计算以评论数加权的平均评分 sum(stars*count)/sum(count)。
// 所有商家评论数都为 0 时退化为评分的算术平均。
func GlobalMean(businesses []*core.Business) float64 {
	var weighted, total, plain float64
	n := 0
	for _, b := range businesses {
		if b == nil {
			continue
		}
		count := float64(max(b.ReviewCount, 0))
		weighted += b.Stars * count
		total += count
		plain += b.Stars
		n++
	}
	if total > 0 {
		return weighted / total
	}
	if n == 0 {
		return 0
	}
	return plain / float64(n)
}

// Adjust 返回单个商家的平滑分数。
func (s *Smoother) Adjust(stars float64, reviewCount int) float64 {
	count := float64(max(reviewCount, 0))
	return (count*stars + s.K*s.GlobalMean) / (count + s.K)
}

// Apply 为每个商家写入 AdjustedScore，每次数据加载只调用一次。
func (s *Smoother) Apply(businesses []*core.Business) {
	for _, b := range businesses {
		if b == nil {
			continue
		}
		b.AdjustedScore = s.Adjust(b.Stars, b.ReviewCount)
	}
}
