package sentiment

import (
	"math"
	"strings"
)

// LexiconAnalyzer 是基于情感词典的文本分析实现。
//
// 打分流程：
//  1. 小写切词
//  2. 逐词查词典取效价（valence），否定窗口内出现否定词时效价取反并衰减
//  3. 效价求和后做 VADER 风格归一化：sum / sqrt(sum² + 15)，压缩到 [-1, 1]
//
// 空评论不走文本路径：按约定退化为评分推导，保证输出是 rating 的纯函数。
type LexiconAnalyzer struct{}

var _ Analyzer = (*LexiconAnalyzer)(nil)

// negationWindow 否定词的作用窗口（向前看的词数）
const negationWindow = 3

// normalizationAlpha 归一化常数，控制分数趋近 ±1 的速度
const normalizationAlpha = 15

func (a *LexiconAnalyzer) Name() string { return "sentiment.lexicon" }

func (a *LexiconAnalyzer) Score(comment string, rating int) Result {
	if strings.TrimSpace(comment) == "" {
		return ratingResult(rating)
	}

	tokens := strings.Fields(strings.ToLower(comment))
	var sum float64
	for i, tok := range tokens {
		tok = strings.Trim(tok, ".,!?;:\"'()[]")
		valence, ok := valenceLexicon[tok]
		if !ok {
			continue
		}
		// 否定窗口：前 negationWindow 个词内出现否定词则极性取反并衰减
		if negatedBefore(tokens, i) {
			valence = -valence * 0.74
		}
		sum += valence
	}

	score := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return Result{
		Score:       score,
		Label:       classify(score),
		Consistency: Consistency(rating, score),
	}
}

// negatedBefore 检查第 i 个词前的否定窗口内是否有否定词。
func negatedBefore(tokens []string, i int) bool {
	start := i - negationWindow
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		tok := strings.Trim(tokens[j], ".,!?;:\"'()[]")
		if _, ok := negationWords[tok]; ok {
			return true
		}
	}
	return false
}

// valenceLexicon 情感词典：词 -> 效价。
// 正值代表正面情感，负值代表负面，绝对值代表强度（范围约 ±4，与 VADER 同尺度）。
// 覆盖电商评论里最常见的情感表达。
var valenceLexicon = map[string]float64{
	// 正面
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8,
	"awesome": 3.1, "fantastic": 2.6, "wonderful": 2.7, "perfect": 2.7,
	"love": 3.2, "loved": 2.9, "loves": 2.7, "like": 1.5, "liked": 1.7,
	"best": 3.2, "better": 1.9, "nice": 1.8, "happy": 2.7, "satisfied": 1.9,
	"quality": 1.4, "recommend": 1.7, "recommended": 1.8, "fast": 1.3,
	"quick": 1.2, "easy": 1.4, "works": 1.2, "working": 1.0, "worth": 1.4,
	"beautiful": 2.9, "comfortable": 1.9, "durable": 1.6, "reliable": 1.9,
	"sturdy": 1.5, "solid": 1.4, "smooth": 1.4, "impressive": 2.2,
	"impressed": 2.1, "pleased": 2.0, "pleasant": 1.9, "superb": 2.9,
	"outstanding": 3.0, "brilliant": 2.8, "delighted": 2.9, "enjoy": 2.0,
	"enjoyed": 2.2, "fine": 0.8, "ok": 0.9, "okay": 0.9, "decent": 1.1,
	"value": 1.0, "bargain": 1.7, "cheap": 0.5, "affordable": 1.2,
	"stylish": 1.7, "elegant": 2.1, "premium": 1.5, "win": 2.4, "winner": 2.8,
	// 负面
	"bad": -2.5, "terrible": -3.1, "awful": -3.1, "horrible": -2.9,
	"worst": -3.1, "worse": -2.1, "poor": -2.1, "hate": -2.7, "hated": -3.2,
	"disappointed": -2.1, "disappointing": -2.2, "disappointment": -2.3,
	"broken": -2.1, "broke": -1.9, "breaks": -1.8, "defective": -2.4,
	"faulty": -2.2, "useless": -1.8, "waste": -1.8, "wasted": -2.0,
	"slow": -1.2, "difficult": -1.5, "hard": -0.4, "problem": -1.7,
	"problems": -1.7, "issue": -1.2, "issues": -1.3, "fail": -2.3,
	"failed": -2.2, "failure": -2.4, "return": -0.6, "returned": -0.8,
	"refund": -0.9, "cheap-looking": -1.6, "flimsy": -1.8, "fragile": -1.1,
	"scam": -2.9, "fake": -2.1, "wrong": -1.8, "missing": -1.4,
	"damaged": -2.0, "scratched": -1.5, "ugly": -2.3, "uncomfortable": -1.9,
	"noisy": -1.4, "loud": -0.6, "annoying": -2.0, "regret": -2.1,
	"avoid": -1.6, "never": -1.3, "overpriced": -1.9, "expensive": -0.9,
	"misleading": -2.0, "unusable": -2.2, "unreliable": -1.9,
	// 强化/弱化附近的常见修饰词（轻微效价）
	"really": 0.3, "very": 0.3, "extremely": 0.4, "absolutely": 0.4,
	"barely": -0.4, "hardly": -0.5,
}

// negationWords 否定词表。
var negationWords = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nothing": {},
	"neither": {}, "nor": {}, "cannot": {}, "cant": {}, "can't": {},
	"dont": {}, "don't": {}, "doesnt": {}, "doesn't": {}, "didnt": {},
	"didn't": {}, "isnt": {}, "isn't": {}, "wasnt": {}, "wasn't": {},
	"wont": {}, "won't": {}, "wouldnt": {}, "wouldn't": {}, "without": {},
}
