// Package recall 实现候选集生成：协同过滤、内容相似、热门兜底，
// 以及把多路召回并发扇出再合并的 Fanout 节点。
package recall

import (
	"context"

	"github.com/bincshop/shoprec/core"
)

// Source 表示一个可复用的召回源（协同/内容/热门/...）。
// 可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// rankScore 把名次折算成召回分：名次越靠前分越高，跨源可比。
func rankScore(rank int) float64 {
	return 1.0 / float64(rank+1)
}
