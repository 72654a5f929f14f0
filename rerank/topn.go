// Package rerank 实现候选重排：按分数稳定排序并截断到目标数量。
package rerank

import (
	"context"
	"sort"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
)

// TopN 按分数降序排序后截取前 N 个商品，同分按 ID 升序，结果确定。
// 通常放在链路末端，控制最终返回数量。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Fanout{...},
//	        &filter.Node{...},
//	        &rerank.TopN{N: 20},
//	    },
//	}
type TopN struct {
	// N 要保留的商品数量；N <= 0 时只排序不截断
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sorted := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			sorted = append(sorted, it)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ID < sorted[j].ID
	})

	if n.N > 0 && len(sorted) > n.N {
		sorted = sorted[:n.N]
	}
	return sorted, nil
}
