package core

// Business 是商家（餐厅）记录，会话内不可变。
// AdjustedScore 由 rank.Smoother 在数据加载时一次性计算。
type Business struct {
	ID          string
	Name        string
	Address     string
	City        string
	State       string
	PostalCode  string
	Latitude    float64
	Longitude   float64
	Cuisine     []string // 逗号分隔的多值标签
	Style       []string // 逗号分隔的多值标签
	PriceTier   string
	IsOpen      bool
	Stars       float64
	ReviewCount int

	AdjustedScore float64
}

// HasCuisine 判断商家菜系标签中是否包含 cuisine（精确匹配）。
func (b *Business) HasCuisine(cuisine string) bool {
	return containsTag(b.Cuisine, cuisine)
}

// HasStyle 判断商家风格标签中是否包含 style（精确匹配）。
func (b *Business) HasStyle(style string) bool {
	return containsTag(b.Style, style)
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// Review 是评论记录，仅用于确定用户已评价过的商家。
type Review struct {
	ID         string
	UserID     string
	BusinessID string
	Text       string
	Stars      float64
}
