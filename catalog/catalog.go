// Package catalog 持有商家与评论数据集：加载时一次性计算平滑分数，
// 提供营业商家目录、用户已评价商家集合等只读查询。
package catalog

import (
	"context"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/rank"
)

// Catalog 是一次数据加载的只读快照，构建后可被并发读取。
type Catalog struct {
	businesses []*core.Business
	byID       map[string]*core.Business
	open       []*core.Business

	// rated 用户 -> 评价过的商家（全部评论）
	rated map[string]map[string]struct{}
	// restaurantUsers 评价过目录中餐厅的用户
	restaurantUsers map[string]struct{}

	smoother *rank.Smoother
}

// New 构建目录，并用阻尼均值为每个商家写入 AdjustedScore（k <= 0 时使用默认值 22）。
func New(businesses []*core.Business, reviews []*core.Review, k float64) *Catalog {
	c := &Catalog{
		businesses:      make([]*core.Business, 0, len(businesses)),
		byID:            make(map[string]*core.Business, len(businesses)),
		rated:           make(map[string]map[string]struct{}),
		restaurantUsers: make(map[string]struct{}),
	}
	for _, b := range businesses {
		if b == nil {
			continue
		}
		if _, dup := c.byID[b.ID]; dup {
			continue
		}
		c.byID[b.ID] = b
		c.businesses = append(c.businesses, b)
		if b.IsOpen {
			c.open = append(c.open, b)
		}
	}

	c.smoother = rank.NewSmoother(c.businesses, k)
	c.smoother.Apply(c.businesses)

	for _, r := range reviews {
		if r == nil || r.UserID == "" {
			continue
		}
		set, ok := c.rated[r.UserID]
		if !ok {
			set = make(map[string]struct{})
			c.rated[r.UserID] = set
		}
		set[r.BusinessID] = struct{}{}
		if _, ok := c.byID[r.BusinessID]; ok {
			c.restaurantUsers[r.UserID] = struct{}{}
		}
	}
	return c
}

// Len 返回商家数量。
func (c *Catalog) Len() int { return len(c.businesses) }

// OpenLen 返回营业中的商家数量。
func (c *Catalog) OpenLen() int { return len(c.open) }

// Smoother 返回加载时使用的平滑参数。
func (c *Catalog) Smoother() *rank.Smoother { return c.smoother }

// Business 按 ID 查找商家（包含已关店的）。
func (c *Catalog) Business(id string) (*core.Business, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// OpenBusiness 按 ID 查找营业中的商家。
func (c *Catalog) OpenBusiness(id string) (*core.Business, bool) {
	b, ok := c.byID[id]
	if !ok || !b.IsOpen {
		return nil, false
	}
	return b, true
}

// Open 返回全新的营业商家候选集（数据集顺序），每次调用互不影响。
func (c *Catalog) Open() []*core.Candidate {
	return core.FromBusinesses(c.open)
}

// RatedBy 返回用户评价过的商家 ID 集合，调用方不得修改。
func (c *Catalog) RatedBy(_ context.Context, userID string) (map[string]struct{}, error) {
	return c.rated[userID], nil
}

// HasRestaurantHistory 用户是否评价过目录中的餐厅。
func (c *Catalog) HasRestaurantHistory(_ context.Context, userID string) (bool, error) {
	_, ok := c.restaurantUsers[userID]
	return ok, nil
}
