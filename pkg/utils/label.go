package utils

// Label 用于解释候选从何而来、被谁处理过：可解释、可追踪、可透传。
// 例如 recall_source=collaborative / filtered_by=filter.price。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rank / engine ...
}

// MergeLabel 合并同名 Label，保留历史：
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
