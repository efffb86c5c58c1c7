package core

import "time"

// 推荐链路的默认参数。
const (
	// DefaultDisplayCount 默认展示的推荐数量
	DefaultDisplayCount = 5

	// DefaultMaxDistance 默认可接受的最大距离（英里）
	DefaultMaxDistance = 10.0

	// DefaultDampingK 评分平滑强度 k，取商家评论数的中位数
	DefaultDampingK = 22.0

	// UserIDLength 合法用户 ID 的长度
	UserIDLength = 22

	// DefaultGeocodeTimeout 地理编码请求超时时间
	DefaultGeocodeTimeout = 10 * time.Second
)
