package core

// Criteria 是关键词过滤条件，空字符串表示未提供。
type Criteria struct {
	Zipcode string `validate:"omitempty,max=16"`
	City    string `validate:"omitempty,max=128"`
	State   string `validate:"omitempty,max=8"`

	// MaxDistance 最大可接受距离（英里），仅在提供 zipcode/city 时生效
	MaxDistance float64 `validate:"gte=0"`

	Cuisine string
	Style   string

	// Price 逗号分隔的价格档位，例如 "1, 2"
	Price string

	// Expr 额外的 CEL 表达式过滤条件，例如 business.review_count > 100
	Expr string
}

// HasGeoLocation 是否提供了需要地理编码的位置（zipcode 或 city）。
func (c *Criteria) HasGeoLocation() bool {
	return c != nil && (c.Zipcode != "" || c.City != "")
}

// HasLocation 是否提供了任意位置信息。
func (c *Criteria) HasLocation() bool {
	return c != nil && (c.Zipcode != "" || c.City != "" || c.State != "")
}

// Empty 是否没有任何过滤条件。
func (c *Criteria) Empty() bool {
	return c == nil || (!c.HasLocation() && c.Cuisine == "" && c.Style == "" && c.Price == "" && c.Expr == "")
}
