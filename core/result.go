package core

// Mode 标记当前候选集由哪种个性化模块产生。
type Mode int

const (
	ModeNone          Mode = 0 // 尚未计算个性化推荐
	ModeCollaborative Mode = 1 // 协同过滤（矩阵分解）
	ModeContent       Mode = 2 // 基于内容（特征相似度）
)

func (m Mode) String() string {
	switch m {
	case ModeCollaborative:
		return "collaborative"
	case ModeContent:
		return "content"
	default:
		return "none"
	}
}

// ScoreColumn 返回个性化模式对应的分数列；ModeNone 返回空串。
func (m Mode) ScoreColumn() string {
	switch m {
	case ModeCollaborative:
		return ColumnPredictedStars
	case ModeContent:
		return ColumnSimilarityScore
	default:
		return ""
	}
}

// Result 是一次推荐调用的显式返回值：排好序的候选集 + 展示列。
type Result struct {
	Candidates []*Candidate
	Columns    []string

	// Mode 产生该结果时的个性化模式
	Mode Mode

	// ScoreColumn 排序所用的分数列
	ScoreColumn string

	// Notice 给调用方的提示（例如：非个性化的通用推荐）
	Notice string
}

// Len 返回候选数量，nil 安全。
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Candidates)
}

// IDs 返回候选的商家 ID 列表（保持顺序）。
func (r *Result) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		ids = append(ids, c.ID())
	}
	return ids
}
