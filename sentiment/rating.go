package sentiment

// RatingAnalyzer 是确定性的降级实现：完全由评分推导情感，不读评论文本。
//
// 契约：同样的 rating 两次调用产出逐位一致的 Result，与 comment 内容无关。
// 因为分数直接来自评分本身，一致度恒为 1。
type RatingAnalyzer struct{}

var _ Analyzer = (*RatingAnalyzer)(nil)

func (a *RatingAnalyzer) Name() string { return "sentiment.rating" }

func (a *RatingAnalyzer) Score(_ string, rating int) Result {
	return ratingResult(rating)
}

// ratingResult 由评分推导情感：
//   - 分数 (rating-3)/2，缩放到 [-1, 1]
//   - 标签 rating > 3 正面 / rating < 3 负面 / 其余中性
//   - 一致度恒为 1（情感即评分，完全一致）
func ratingResult(rating int) Result {
	var label string
	switch {
	case rating > 3:
		label = LabelPositive
	case rating < 3:
		label = LabelNegative
	default:
		label = LabelNeutral
	}
	return Result{
		Score:       (float64(rating) - 3) / 2,
		Label:       label,
		Consistency: 1.0,
	}
}
