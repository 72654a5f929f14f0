package recall

import (
	"context"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
)

// ContentProvider 提供内容相似推荐能力（由 service.Engine 实现）。
// 商品不在拟合语料中时返回空列表。
type ContentProvider interface {
	RecommendContent(productID string, n int) []string
}

// Content 是内容相似召回源：以用户最近浏览的商品为种子做相似扩展。
// 全局顺序 = 先按种子新近度、再按相似度名次；同一商品只保留首次出现。
type Content struct {
	Provider ContentProvider
	// SeedLimit 取最近浏览的前几个商品作种子（<=0 时取 5）
	SeedLimit int
	// PerSeed 每个种子扩展的相似商品数（<=0 时取 3）
	PerSeed int
}

func (r *Content) Name() string        { return "recall.content" }
func (r *Content) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Content) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Content) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Provider == nil || rctx == nil || len(rctx.RecentlyViewed) == 0 {
		return nil, nil
	}
	seedLimit := r.SeedLimit
	if seedLimit <= 0 {
		seedLimit = 5
	}
	perSeed := r.PerSeed
	if perSeed <= 0 {
		perSeed = 3
	}

	seeds := rctx.RecentlyViewed
	if len(seeds) > seedLimit {
		seeds = seeds[:seedLimit]
	}

	out := make([]*core.Item, 0, len(seeds)*perSeed)
	seen := make(map[string]struct{}, len(seeds)*perSeed)
	for _, seed := range seeds {
		for _, id := range r.Provider.RecommendContent(seed, perSeed) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			it := core.NewItem(id)
			it.Score = rankScore(len(out))
			it.PutLabel("strategy", utils.Label{Value: "content", Source: r.Name()})
			it.PutLabel("content_seed", utils.Label{Value: seed, Source: r.Name()})
			out = append(out, it)
		}
	}
	return out, nil
}
