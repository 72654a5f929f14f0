// Package sentiment 实现评论情感分析：把评论文本映射为归一化的极性分数与离散标签。
//
// 能力探测在构造时一次完成（而非每次调用时散落检查）：
//   - 词典可用 → LexiconAnalyzer（基于情感词典的文本分析）
//   - 词典不可用 → RatingAnalyzer（由评分推导的确定性降级实现）
//
// 无论哪个实现，空评论都走评分推导路径：同样的评分必须产出逐位一致的结果，
// 这是一条可测试的契约。
package sentiment

import (
	"go.uber.org/zap"
)

// 标签常量
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// 极性分数的分类阈值：(>0.05) 正面，(<-0.05) 负面，其余中性
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Result 是一次情感分析的输出。
type Result struct {
	// Score 极性分数，范围 [-1, 1]
	Score float64 `json:"score"`

	// Label 离散标签：positive / negative / neutral
	Label string `json:"label"`

	// Consistency 评分与文本情感的一致度，范围 [0, 1]。
	// 作为可靠性信号输出，目前不回灌到排序（规划中的后续工作）。
	Consistency float64 `json:"consistency"`
}

// Analyzer 是情感分析的能力接口。
type Analyzer interface {
	// Name 返回实现名称（用于日志/观测）
	Name() string

	// Score 对一条评论打分。comment 为空时退化为评分推导，
	// 输出是 rating 的纯函数。rating 取值 1~5。
	Score(comment string, rating int) Result
}

// New 构造情感分析器：探测词典能力并选择实现，降级时记录一次日志。
func New(logger *zap.Logger) Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(valenceLexicon) > 0 {
		return &LexiconAnalyzer{}
	}
	// 词典缺失：降级为评分推导（只在构造时记录一次）
	logger.Warn("sentiment lexicon unavailable, falling back to rating-derived analyzer")
	return &RatingAnalyzer{}
}

// Consistency 计算评分与情感分数的一致度：
// 两者归一化到 [0,1] 后取 1 - |差值|。
func Consistency(rating int, score float64) float64 {
	ratingNorm := (float64(rating) - 1) / 4 // 1~5 -> 0~1
	scoreNorm := (score + 1) / 2            // -1~1 -> 0~1
	c := 1 - abs(ratingNorm-scoreNorm)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// classify 按阈值将极性分数映射为标签。
func classify(score float64) string {
	switch {
	case score > positiveThreshold:
		return LabelPositive
	case score < negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
