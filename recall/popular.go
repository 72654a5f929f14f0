package recall

import (
	"context"
	"encoding/json"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
	"github.com/bincshop/shoprec/store"
)

// PopularProvider 提供按浏览量排序的热门商品（由 behavior.Store 实现）。
type PopularProvider interface {
	Popular(ctx context.Context, limit int) ([]string, error)
}

// Popular 是热门兜底召回源，按优先级尝试三类数据源：
//   - Provider：行为日志的浏览量排行
//   - Store：有序集合 ZRange（KeyValueStore）或普通 key 的 JSON 数组
//   - IDs：内存兜底列表（运营配置/demo）
//
// 同时实现 Source 和 Node 接口，可直接编排进 Pipeline。
type Popular struct {
	Provider PopularProvider
	Store    store.Store
	Key      string // 存储 key，例如 "popular:items"
	IDs      []string
	Limit    int // 召回数量（<=0 时取 100）
}

func (r *Popular) Name() string        { return "recall.popular" }
func (r *Popular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Popular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Popular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = 100
	}

	ids := r.fromProvider(ctx, limit)
	if len(ids) == 0 {
		ids = r.fromStore(ctx, limit)
	}
	if len(ids) == 0 {
		ids = r.IDs
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]*core.Item, 0, len(ids))
	for i, id := range ids {
		it := core.NewItem(id)
		it.Score = rankScore(i)
		it.PutLabel("strategy", utils.Label{Value: "popular", Source: r.Name()})
		out = append(out, it)
	}
	return out, nil
}

func (r *Popular) fromProvider(ctx context.Context, limit int) []string {
	if r.Provider == nil {
		return nil
	}
	ids, err := r.Provider.Popular(ctx, limit)
	if err != nil {
		return nil
	}
	return ids
}

func (r *Popular) fromStore(ctx context.Context, limit int) []string {
	if r.Store == nil || r.Key == "" {
		return nil
	}
	if kv, ok := r.Store.(store.KeyValueStore); ok {
		members, err := kv.ZRange(ctx, r.Key, 0, int64(limit-1))
		if err == nil {
			return members
		}
		return nil
	}
	data, err := r.Store.Get(ctx, r.Key)
	if err != nil {
		return nil
	}
	var parsed []string
	if json.Unmarshal(data, &parsed) != nil {
		return nil
	}
	return parsed
}
