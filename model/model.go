// Package model 实现推荐核心的两个离线模型：
//   - ALSModel: 隐式反馈交替最小二乘（协同过滤），学习用户/商品隐向量
//   - TFIDFModel: TF-IDF 向量空间（内容过滤），回答商品相似度查询
//
// 两个模型都是"一次训练、只读查询"的不可变结构：重训产出全新实例，
// 由上层（service 的生命周期管理）做原子替换，查询方永远看到完整快照。
package model

import "sort"

// Scored 是 (商品 ID, 预测分数) 对，模型查询的统一输出形态。
type Scored struct {
	ProductID string
	Score     float64
}

// sortScoredDesc 按分数降序排序；同分按商品 ID 升序，保证结果确定。
func sortScoredDesc(s []Scored) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].ProductID < s[j].ProductID
	})
}

// sortedCols 返回稀疏行的列下标（升序）。
// 浮点加法不满足结合律，累加必须按固定顺序遍历，保证重复计算逐位一致。
func sortedCols(row map[int]float64) []int {
	cols := make([]int, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// dotProduct 计算两个向量的点积
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
