package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"column": "cuisine", "enabled": true, "limit": 3}

	assert.Equal(t, "cuisine", ConfigGet(cfg, "column", ""))
	assert.Equal(t, true, ConfigGet(cfg, "enabled", false))
	assert.Equal(t, "style", ConfigGet(cfg, "missing", "style"))
	// 类型不符时返回默认值
	assert.Equal(t, "x", ConfigGet(cfg, "limit", "x"))
	assert.Equal(t, "x", ConfigGet[string](nil, "column", "x"))
}

func TestConfigGetFloat64(t *testing.T) {
	cfg := map[string]any{"int": 10, "float": 2.5, "str": "abc"}

	assert.Equal(t, 10.0, ConfigGetFloat64(cfg, "int", 0))
	assert.Equal(t, 2.5, ConfigGetFloat64(cfg, "float", 0))
	assert.Equal(t, 7.0, ConfigGetFloat64(cfg, "str", 7))
	assert.Equal(t, 7.0, ConfigGetFloat64(cfg, "missing", 7))
}
