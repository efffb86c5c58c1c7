package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/logging"
	"github.com/rushteam/dinekit/pkg/validation"
)

// EnvPrefix 环境变量前缀：DINEKIT_RECOMMEND_DISPLAY_COUNT -> recommend.display_count
const EnvPrefix = "DINEKIT_"

// ConfigPathEnvVar 指定配置文件路径的环境变量
const ConfigPathEnvVar = "DINEKIT_CONFIG"

// DefaultConfigPaths 未指定路径时按顺序查找的配置文件
var DefaultConfigPaths = []string{
	"dinekit.yaml",
	"dinekit.yml",
	"/etc/dinekit/config.yaml",
}

// AppConfig 是应用配置：默认值 -> YAML 文件 -> 环境变量，优先级依次升高。
type AppConfig struct {
	Log       logging.Config  `koanf:"log"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Filters   FiltersConfig   `koanf:"filters"`
	Geocoder  GeocoderConfig  `koanf:"geocoder"`
}

// DataConfig 数据集与离线产物路径。
type DataConfig struct {
	Businesses string `koanf:"businesses" validate:"required"`
	Reviews    string `koanf:"reviews" validate:"required"`

	// LatentFactors / Features 为空时对应的个性化模块不可用
	LatentFactors string `koanf:"latent_factors"`
	Features      string `koanf:"features"`
}

// RecommendConfig 推荐参数。
type RecommendConfig struct {
	DisplayCount  int     `koanf:"display_count" validate:"gte=1"`
	DampingK      float64 `koanf:"damping_k" validate:"gt=0"`
	MaxDistance   float64 `koanf:"max_distance" validate:"gt=0"`
	OriginalScore bool    `koanf:"original_score"`
}

// FiltersConfig 关键词过滤配置。
type FiltersConfig struct {
	// PipelinePath 可选的过滤 Node 顺序（pipeline YAML），为空时使用默认顺序
	PipelinePath string `koanf:"pipeline_path"`

	// GeocodeFailure 地理编码失败策略：abort / skip
	GeocodeFailure string `koanf:"geocode_failure" validate:"oneof=abort skip"`
}

// GeocoderConfig 地理编码配置。
type GeocoderConfig struct {
	Endpoint      string        `koanf:"endpoint" validate:"omitempty,url"`
	UserAgent     string        `koanf:"user_agent" validate:"required"`
	Timeout       time.Duration `koanf:"timeout" validate:"gt=0"`
	RatePerSecond float64       `koanf:"rate_per_second" validate:"gte=0"`
	Cache         CacheConfig   `koanf:"cache"`
}

// CacheConfig 地理编码结果缓存。
type CacheConfig struct {
	Backend   string        `koanf:"backend" validate:"oneof=memory redis none"`
	TTL       time.Duration `koanf:"ttl" validate:"gte=0"`
	RedisAddr string        `koanf:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB   int           `koanf:"redis_db" validate:"gte=0"`
	KeyPrefix string        `koanf:"key_prefix"`
}

// Default 返回默认配置。
func Default() *AppConfig {
	return &AppConfig{
		Log: logging.Config{Level: "info", Format: "console"},
		Data: DataConfig{
			Businesses:    "business_clean.csv",
			Reviews:       "review_clean.csv",
			LatentFactors: "svd_trained_info.json",
			Features:      "pcafeatures.json",
		},
		Recommend: RecommendConfig{
			DisplayCount: core.DefaultDisplayCount,
			DampingK:     core.DefaultDampingK,
			MaxDistance:  core.DefaultMaxDistance,
		},
		Filters: FiltersConfig{
			GeocodeFailure: "abort",
		},
		Geocoder: GeocoderConfig{
			Endpoint:      "https://nominatim.openstreetmap.org/search",
			UserAgent:     "dinekit",
			Timeout:       core.DefaultGeocodeTimeout,
			RatePerSecond: 1,
			Cache: CacheConfig{
				Backend:   "memory",
				TTL:       24 * time.Hour,
				KeyPrefix: "dinekit:",
			},
		},
	}
}

// Load 加载配置。path 为空时依次查找 DINEKIT_CONFIG 与 DefaultConfigPaths，找不到文件只用默认值与环境变量。
func Load(path string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 使用 validator 校验配置。
func (c *AppConfig) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envSections = []string{"log", "data", "recommend", "filters", "geocoder"}

// envTransformFunc 把环境变量名映射为 koanf 路径：
//
//	DINEKIT_GEOCODER_RATE_PER_SECOND -> geocoder.rate_per_second
//	DINEKIT_GEOCODER_CACHE_REDIS_ADDR -> geocoder.cache.redis_addr
//
// 不属于已知配置段的变量被忽略（返回空串）。
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "config" {
		return ""
	}
	for _, section := range envSections {
		rest, ok := strings.CutPrefix(key, section+"_")
		if !ok {
			continue
		}
		if section == "geocoder" {
			if sub, ok := strings.CutPrefix(rest, "cache_"); ok {
				return "geocoder.cache." + sub
			}
		}
		return section + "." + rest
	}
	return ""
}
