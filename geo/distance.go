// Package geo 提供地理相关能力：球面距离计算与地址地理编码。
package geo

import (
	"math"

	"github.com/rushteam/dinekit/core"
)

const (
	// EarthRadiusKm 地球平均半径（千米）
	EarthRadiusKm = 6371.009

	// MilesPerKm 千米到英里的换算系数
	MilesPerKm = 0.621371
)

// Distance 使用球面余弦定律计算两点间的大圆距离（英里）。
func Distance(a, b core.Point) float64 {
	lat1, lon1 := radians(a.Latitude), radians(a.Longitude)
	lat2, lon2 := radians(b.Latitude), radians(b.Longitude)

	cos := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2)
	// 浮点误差可能让 cos 略超出 [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))

	return EarthRadiusKm * math.Acos(cos) * MilesPerKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
