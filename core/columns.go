package core

// 展示列 / 分数列名称。
const (
	ColumnBusinessID    = "business_id"
	ColumnState         = "state"
	ColumnCity          = "city"
	ColumnName          = "name"
	ColumnAddress       = "address"
	ColumnPostalCode    = "postal_code"
	ColumnPrice         = "attributes.RestaurantsPriceRange2"
	ColumnCuisine       = "cuisine"
	ColumnStyle         = "style"
	ColumnReviewCount   = "review_count"
	ColumnStars         = "stars"
	ColumnAdjustedScore = "adjusted_score"

	// 派生列
	ColumnDistance        = "distance_to_interest"
	ColumnPredictedStars  = "predicted_stars"
	ColumnSimilarityScore = "similarity_score"
)

// DefaultColumns 返回默认展示列（每次调用返回新切片）。
func DefaultColumns() []string {
	return []string{
		ColumnState, ColumnCity, ColumnName, ColumnAddress, ColumnPrice,
		ColumnCuisine, ColumnStyle, ColumnReviewCount, ColumnStars, ColumnAdjustedScore,
	}
}

// DisplayColumns 组装展示列：派生列按顺序插入到最前面。
// 例如 DisplayColumns(predicted_stars, distance) -> [predicted_stars, distance, state, ...]
func DisplayColumns(leading ...string) []string {
	cols := make([]string, 0, len(leading)+10)
	for _, c := range leading {
		if c != "" {
			cols = append(cols, c)
		}
	}
	return append(cols, DefaultColumns()...)
}
