package model

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/bincshop/shoprec/core"
)

// tokenPattern 切词规则：字母数字串，其余均作分隔符
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// TFIDFModel 是基于 TF-IDF 向量空间的内容模型。
//
// 核心思想：商品文本（名称+描述+类目+品牌+规格）向量化后，
// 用余弦相似度回答"与这个商品相似的商品"查询。
//
// 向量化规则：
//   - 小写切词，去除英文停用词
//   - unigram + bigram（bigram 在去停用词后拼接）
//   - 词表按语料词频截断到 MaxFeatures（同频按字典序，保证词表稳定）
//   - 平滑 idf：ln((1+N)/(1+df)) + 1
//   - 每行 L2 归一化，余弦相似度即归一化向量点积
//
// 不变式：拟合后的向量空间不可变，第 i 行对应 productIDs[i]；
// 重新拟合产出全新实例由上层原子替换，查询不会看到半新半旧的空间。
type TFIDFModel struct {
	cfg core.TFIDFConfig

	vocabulary map[string]int // 词 -> 列下标
	idf        []float64      // 列下标 -> idf
	productIDs []string       // 行下标 -> 商品 ID
	rowIndex   map[string]int // 商品 ID -> 行下标

	// rows 是稀疏的 L2 归一化 TF-IDF 矩阵：行 -> (列下标 -> 权重)
	rows []map[int]float64
}

// FitTFIDF 用商品目录快照拟合一个新的 TFIDFModel。
// 输入为空时返回 ErrInsufficientData。
func FitTFIDF(products []core.Product, cfg core.TFIDFConfig) (*TFIDFModel, error) {
	if len(products) == 0 {
		return nil, core.ErrInsufficientData
	}
	if cfg.MaxFeatures <= 0 {
		cfg = core.DefaultTFIDFConfig()
	}
	if cfg.NGramMax < 1 {
		cfg.NGramMax = 1
	}

	// 1. 每个商品生成词串（含 n-gram）
	docs := make([][]string, len(products))
	productIDs := make([]string, len(products))
	for i, p := range products {
		docs[i] = ngrams(Tokenize(p.Document()), cfg.NGramMax)
		productIDs[i] = p.ID
	}

	// 2. 统计语料词频与文档频率
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range doc {
			corpusFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	// 3. 词表截断：按语料词频降序，同频按字典序
	terms := make([]string, 0, len(corpusFreq))
	for t := range corpusFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > cfg.MaxFeatures {
		terms = terms[:cfg.MaxFeatures]
	}
	// 列下标按字典序分配，保证词表与下标的对应稳定
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	for i, t := range terms {
		vocabulary[t] = i
	}

	// 4. 平滑 idf
	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for t, col := range vocabulary {
		idf[col] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	// 5. 逐行计算 TF-IDF 并做 L2 归一化
	rows := make([]map[int]float64, len(docs))
	rowIndex := make(map[string]int, len(docs))
	for i, doc := range docs {
		tf := make(map[int]float64)
		for _, term := range doc {
			if col, ok := vocabulary[term]; ok {
				tf[col]++
			}
		}

		var norm float64
		for _, col := range sortedCols(tf) {
			w := tf[col] * idf[col]
			tf[col] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for col := range tf {
				tf[col] /= norm
			}
		}

		rows[i] = tf
		rowIndex[productIDs[i]] = i
	}

	return &TFIDFModel{
		cfg:        cfg,
		vocabulary: vocabulary,
		idf:        idf,
		productIDs: productIDs,
		rowIndex:   rowIndex,
		rows:       rows,
	}, nil
}

// SimilarTo 返回与指定商品最相似的 TopN 其他商品（自身排除）。
// 商品不在拟合空间中时返回空（冷启动属正常态，不报错）。
func (m *TFIDFModel) SimilarTo(productID string, n int) []Scored {
	if m == nil || n <= 0 {
		return nil
	}
	row, ok := m.rowIndex[productID]
	if !ok {
		return nil
	}

	target := m.rows[row]
	scores := make([]Scored, 0, len(m.rows))
	for i, other := range m.rows {
		if i == row {
			continue // 排除自身
		}
		sim := sparseDot(target, other)
		scores = append(scores, Scored{ProductID: m.productIDs[i], Score: sim})
	}

	sortScoredDesc(scores)
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// HasProduct 检查商品是否在拟合空间中。
func (m *TFIDFModel) HasProduct(productID string) bool {
	if m == nil {
		return false
	}
	_, ok := m.rowIndex[productID]
	return ok
}

// VocabularySize 返回截断后词表的特征数。
func (m *TFIDFModel) VocabularySize() int {
	if m == nil {
		return 0
	}
	return len(m.vocabulary)
}

// ProductIDs 返回拟合空间中的全部商品 ID（行序）。
func (m *TFIDFModel) ProductIDs() []string {
	if m == nil {
		return nil
	}
	return m.productIDs
}

// Tokenize 小写切词并去除英文停用词。
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, ok := englishStopWords[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ngrams 在去停用词后的词序列上生成 1..max 长度的 n-gram（空格拼接）。
func ngrams(tokens []string, max int) []string {
	if max <= 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*max)
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// sparseDot 计算两个稀疏向量的点积（遍历较小的一侧）。
func sparseDot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for _, col := range sortedCols(a) {
		if vb, ok := b[col]; ok {
			sum += a[col] * vb
		}
	}
	return sum
}
