package recall

import (
	"context"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
)

// CollaborativeProvider 提供协同过滤推荐能力（由 service.Engine 实现）。
// 冷启动用户返回空列表而非错误。
type CollaborativeProvider interface {
	RecommendCollaborative(userID string, n int) []string
}

// Collaborative 是协同过滤召回源：用隐式反馈矩阵分解的结果作为候选。
// 同时实现 Source 和 Node 接口，可直接编排进 Pipeline。
type Collaborative struct {
	Provider CollaborativeProvider
	N        int // 召回数量（<=0 时取默认 20）
}

func (r *Collaborative) Name() string        { return "recall.collaborative" }
func (r *Collaborative) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Collaborative) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Collaborative) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Provider == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	n := r.N
	if n <= 0 {
		n = 20
	}

	ids := r.Provider.RecommendCollaborative(rctx.UserID, n)
	out := make([]*core.Item, 0, len(ids))
	for i, id := range ids {
		it := core.NewItem(id)
		it.Score = rankScore(i)
		it.PutLabel("strategy", utils.Label{Value: "collaborative", Source: r.Name()})
		out = append(out, it)
	}
	return out, nil
}
