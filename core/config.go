package core

// ALSConfig 是协同过滤模型（隐式反馈 ALS）的超参数。
// 超参数是可调配置而非不变式：调整只影响推荐质量，不影响接口契约。
type ALSConfig struct {
	// Factors 隐向量维度
	Factors int `yaml:"factors" json:"factors"`

	// Regularization 正则化强度（防止过拟合）
	Regularization float64 `yaml:"regularization" json:"regularization"`

	// Iterations 交替最小二乘的迭代轮数
	Iterations int `yaml:"iterations" json:"iterations"`

	// Alpha 置信度缩放系数：confidence = 1 + Alpha * score
	Alpha float64 `yaml:"alpha" json:"alpha"`
}

// DefaultALSConfig 返回默认的 ALS 超参数。
func DefaultALSConfig() ALSConfig {
	return ALSConfig{
		Factors:        100,
		Regularization: 0.01,
		Iterations:     20,
		Alpha:          40,
	}
}

// TFIDFConfig 是内容模型（TF-IDF 向量空间）的超参数。
type TFIDFConfig struct {
	// MaxFeatures 词表容量上限（按语料词频截断）
	MaxFeatures int `yaml:"max_features" json:"max_features"`

	// NGramMax n-gram 最大长度：1 只用 unigram，2 为 unigram + bigram
	NGramMax int `yaml:"ngram_max" json:"ngram_max"`
}

// DefaultTFIDFConfig 返回默认的 TF-IDF 超参数。
func DefaultTFIDFConfig() TFIDFConfig {
	return TFIDFConfig{
		MaxFeatures: 5000,
		NGramMax:    2,
	}
}

// HybridConfig 是混合推荐的配额配置。
type HybridConfig struct {
	// RecentViewLimit 内容召回取用户最近浏览的商品数
	RecentViewLimit int `yaml:"recent_view_limit" json:"recent_view_limit"`

	// SimilarPerProduct 每个浏览商品扩展的相似商品数
	SimilarPerProduct int `yaml:"similar_per_product" json:"similar_per_product"`
}

// DefaultHybridConfig 返回默认的混合推荐配额。
func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		RecentViewLimit:   5,
		SimilarPerProduct: 3,
	}
}
