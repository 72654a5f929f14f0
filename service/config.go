package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bincshop/shoprec/core"
)

// Config 是推荐引擎的配置结构（支持 YAML）。
//
// 示例：
//
//	model_dir: ./models
//	als:
//	  factors: 100
//	  regularization: 0.01
//	  iterations: 20
//	  alpha: 40
//	tfidf:
//	  max_features: 5000
//	  ngram_max: 2
//	hybrid:
//	  recent_view_limit: 5
//	  similar_per_product: 3
//	redis:
//	  addr: 127.0.0.1:6379
//	  db: 0
type Config struct {
	// ModelDir 模型产物目录；为空时不做持久化
	ModelDir string `yaml:"model_dir"`

	ALS    core.ALSConfig    `yaml:"als"`
	TFIDF  core.TFIDFConfig  `yaml:"tfidf"`
	Hybrid core.HybridConfig `yaml:"hybrid"`

	Redis struct {
		Addr   string `yaml:"addr"`
		DB     int    `yaml:"db"`
		Prefix string `yaml:"prefix"`
	} `yaml:"redis"`
}

// DefaultConfig 返回各模型的默认超参数配置。
func DefaultConfig() Config {
	return Config{
		ALS:    core.DefaultALSConfig(),
		TFIDF:  core.DefaultTFIDFConfig(),
		Hybrid: core.DefaultHybridConfig(),
	}
}

// LoadConfig 从 YAML 文件加载引擎配置，缺省字段用默认值填充。
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.ALS.Factors <= 0 {
		cfg.ALS = core.DefaultALSConfig()
	}
	if cfg.TFIDF.MaxFeatures <= 0 {
		cfg.TFIDF = core.DefaultTFIDFConfig()
	}
	if cfg.Hybrid.RecentViewLimit <= 0 {
		cfg.Hybrid = core.DefaultHybridConfig()
	}
	return cfg, nil
}
