package model

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/rushteam/dinekit/core"
)

// Vector 是带 ID 的特征向量。
type Vector struct {
	ID     string    `json:"id"`
	Vector []float64 `json:"vector"`
}

// FeatureStore 是离线抽取的用户/商家特征向量（评论文本降维结果），维度一致。
// 商家向量保持文件中的顺序，保证相似度结果的顺序稳定。
type FeatureStore struct {
	users      map[string][]float64
	businesses []Vector
	dim        int
}

// NewFeatureStore 校验维度与 ID 唯一性后创建特征库。
func NewFeatureStore(users, businesses []Vector) (*FeatureStore, error) {
	s := &FeatureStore{
		users:      make(map[string][]float64, len(users)),
		businesses: businesses,
		dim:        -1,
	}
	check := func(kind string, v Vector) error {
		if s.dim < 0 {
			s.dim = len(v.Vector)
		}
		if len(v.Vector) != s.dim {
			return core.NewIntegrityError(core.ModuleModel, "features: %s %q has dimension %d, want %d", kind, v.ID, len(v.Vector), s.dim)
		}
		return nil
	}

	for _, u := range users {
		if err := check("user", u); err != nil {
			return nil, err
		}
		if _, dup := s.users[u.ID]; dup {
			return nil, core.NewIntegrityError(core.ModuleModel, "features: duplicate user %q", u.ID)
		}
		s.users[u.ID] = u.Vector
	}
	seen := make(map[string]struct{}, len(businesses))
	for _, b := range businesses {
		if err := check("business", b); err != nil {
			return nil, err
		}
		if _, dup := seen[b.ID]; dup {
			return nil, core.NewIntegrityError(core.ModuleModel, "features: duplicate business %q", b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	if s.dim < 0 {
		s.dim = 0
	}
	return s, nil
}

// Dim 返回特征维度。
func (s *FeatureStore) Dim() int { return s.dim }

// User 返回用户特征向量。
func (s *FeatureStore) User(userID string) ([]float64, bool) {
	v, ok := s.users[userID]
	return v, ok
}

// Businesses 返回所有商家向量（只读）。
func (s *FeatureStore) Businesses() []Vector { return s.businesses }

// Similarity 用线性核（点积）计算用户向量与每个商家向量的相似度，顺序与 Businesses 一致。
func (s *FeatureStore) Similarity(user []float64) []float64 {
	out := make([]float64, len(s.businesses))
	for i, b := range s.businesses {
		out[i] = Dot(user, b.Vector)
	}
	return out
}

type featureFile struct {
	Users      []Vector `json:"users"`
	Businesses []Vector `json:"businesses"`
}

// ParseFeatureStore 解析 JSON 格式的特征库。
func ParseFeatureStore(data []byte) (*FeatureStore, error) {
	var f featureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse features: %w", err)
	}
	return NewFeatureStore(f.Users, f.Businesses)
}

// LoadFeatureStore 从 JSON 文件加载特征库。
func LoadFeatureStore(path string) (*FeatureStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read features: %w", err)
	}
	return ParseFeatureStore(data)
}
