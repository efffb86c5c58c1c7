// Package model 承载离线训练产物：矩阵分解的隐因子与特征向量库。
// 模型训练不在本项目范围内，产物以 JSON 文件提供并在加载时校验一致性。
package model

// Dot 计算两个向量的点积，维度不同时返回 0。
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
