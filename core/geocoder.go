package core

import "context"

// Point 是地理坐标（角度制）。
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Geocoder 是地理编码能力的领域接口：自由文本地址 -> 坐标。
//
// 实现：
//   - geo.NominatimClient 基于 OpenStreetMap Nominatim
//   - geo.CachedGeocoder 在任意 Geocoder 之上叠加 Store 缓存
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, error)
}
