package model

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/rushteam/dinekit/core"
)

// LatentFactors 是离线训练好的矩阵分解（带偏置的 SVD）产物，运行时只读。
//
//	predicted(u, i) = mean + user_bias[u] + item_bias[i] + user_latent[u] · item_latent[i]
//
// UserIndex / ItemIndex 把用户 ID、商家 ID 映射到矩阵行号。
type LatentFactors struct {
	MeanRating float64        `json:"mean_rating"`
	UserBias   []float64      `json:"user_bias"`
	ItemBias   []float64      `json:"item_bias"`
	UserLatent [][]float64    `json:"user_latent"`
	ItemLatent [][]float64    `json:"item_latent"`
	UserIndex  map[string]int `json:"userid_to_index"`
	ItemIndex  map[string]int `json:"itemid_to_index"`

	itemIDs []string // 行号 -> 商家 ID
}

// Validate 检查产物的一致性，并建立行号到商家 ID 的反向映射：
//   - 行数与索引映射的基数一致
//   - 每个行号恰好对应一个 ID
//   - 所有隐向量维度相同
func (m *LatentFactors) Validate() error {
	if len(m.UserBias) != len(m.UserLatent) || len(m.UserIndex) != len(m.UserLatent) {
		return core.NewIntegrityError(core.ModuleModel,
			"latent factors: %d user rows, %d user biases, %d user ids", len(m.UserLatent), len(m.UserBias), len(m.UserIndex))
	}
	if len(m.ItemBias) != len(m.ItemLatent) || len(m.ItemIndex) != len(m.ItemLatent) {
		return core.NewIntegrityError(core.ModuleModel,
			"latent factors: %d item rows, %d item biases, %d item ids", len(m.ItemLatent), len(m.ItemBias), len(m.ItemIndex))
	}

	if _, err := rowOwners("user", m.UserIndex, len(m.UserLatent)); err != nil {
		return err
	}
	ids, err := rowOwners("item", m.ItemIndex, len(m.ItemLatent))
	if err != nil {
		return err
	}

	dim := -1
	for _, rows := range [][][]float64{m.UserLatent, m.ItemLatent} {
		for i, row := range rows {
			if dim < 0 {
				dim = len(row)
			}
			if len(row) != dim {
				return core.NewIntegrityError(core.ModuleModel, "latent factors: row %d has dimension %d, want %d", i, len(row), dim)
			}
		}
	}

	m.itemIDs = ids
	return nil
}

func rowOwners(kind string, index map[string]int, rows int) ([]string, error) {
	owners := make([]string, rows)
	for id, row := range index {
		if row < 0 || row >= rows {
			return nil, core.NewIntegrityError(core.ModuleModel, "latent factors: %s %q maps to row %d out of [0,%d)", kind, id, row, rows)
		}
		if owners[row] != "" {
			return nil, core.NewIntegrityError(core.ModuleModel, "latent factors: %s row %d claimed by %q and %q", kind, row, owners[row], id)
		}
		owners[row] = id
	}
	return owners, nil
}

// ItemIDs 返回按行号排列的商家 ID，需先调用 Validate。
func (m *LatentFactors) ItemIDs() []string {
	return m.itemIDs
}

// UserRow 返回用户所在行号。
func (m *LatentFactors) UserRow(userID string) (int, bool) {
	row, ok := m.UserIndex[userID]
	return row, ok
}

// PredictUser 为已知用户重建对每个商家的预测评分（稠密，按行号排列）。
func (m *LatentFactors) PredictUser(row int) []float64 {
	u := m.UserLatent[row]
	base := m.MeanRating + m.UserBias[row]
	out := make([]float64, len(m.ItemLatent))
	for i, item := range m.ItemLatent {
		out[i] = base + m.ItemBias[i] + Dot(u, item)
	}
	return out
}

// PredictGeneric 是未知用户的通用预测：mean + item_bias。
func (m *LatentFactors) PredictGeneric() []float64 {
	out := make([]float64, len(m.ItemBias))
	for i, b := range m.ItemBias {
		out[i] = m.MeanRating + b
	}
	return out
}

// ParseLatentFactors 解析 JSON 格式的产物并校验。
func ParseLatentFactors(data []byte) (*LatentFactors, error) {
	var m LatentFactors
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse latent factors: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadLatentFactors 从 JSON 文件加载产物。
func LoadLatentFactors(path string) (*LatentFactors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read latent factors: %w", err)
	}
	return ParseLatentFactors(data)
}
