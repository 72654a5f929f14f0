package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/filter"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
	"github.com/bincshop/shoprec/recall"
	"github.com/bincshop/shoprec/rerank"
)

// Feed 各桶的容量与行为序列的读取上限
const (
	newBucketCap    = 10
	recentReadLimit = 20
	defaultFeedSize = 20
)

// LogBehavior 记录一条用户行为事件（view / like / purchase）。
func (e *Engine) LogBehavior(ctx context.Context, userID, productID string, action core.Action) error {
	return e.behavior.Log(ctx, core.InteractionEvent{
		UserID:    userID,
		ProductID: productID,
		Action:    action,
		Timestamp: time.Now(),
	})
}

// EnsureTrained 惰性训练：哪个模型缺失就训练哪个。
// 通常在推荐请求发现模型不在内存时调用；训练失败（含数据不足）只记录日志，
// 推荐链路继续走空结果 + 兜底。
func (e *Engine) EnsureTrained(ctx context.Context) {
	if e.als.Model() == nil {
		if _, err := e.TrainCollaborative(ctx); err != nil {
			e.log.Info("lazy collaborative training not ready", zap.Error(err))
		}
	}
	if e.tfidf.Model() == nil {
		if _, err := e.TrainContent(ctx); err != nil {
			e.log.Info("lazy content training not ready", zap.Error(err))
		}
	}
}

// Feed 组装用户主页的推荐流，四路信号按优先级填充到 n：
//
//	preferred（混合推荐头部） > liked（点赞近邻） > new（30 天上新） > popular（热门兜底）
//
// 个性化信号不足时（新用户冷启动），上新与热门自然占满整条流。
// 每个 Item 带 rec_type label 标记来源桶，热门桶经过完整的
// 召回 → 已交互过滤 → TopN 截断链路。
func (e *Engine) Feed(ctx context.Context, userID string, n int) ([]*core.Item, error) {
	if n <= 0 {
		n = defaultFeedSize
	}
	e.EnsureTrained(ctx)

	viewed, err := e.behavior.Recent(ctx, userID, core.ActionView, recentReadLimit)
	if err != nil {
		e.log.Warn("read recent views failed", zap.String("user", userID), zap.Error(err))
	}
	liked, err := e.behavior.Recent(ctx, userID, core.ActionLike, recentReadLimit)
	if err != nil {
		e.log.Warn("read recent likes failed", zap.String("user", userID), zap.Error(err))
	}

	rctx := &core.RecommendContext{
		UserID:         userID,
		Scene:          "feed",
		RecentlyViewed: viewed,
		Liked:          liked,
	}

	out := make([]*core.Item, 0, n)
	seen := make(map[string]struct{}, n)
	appendBucket := func(ids []string, recType string) {
		for _, id := range ids {
			if len(out) >= n {
				return
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			it := core.NewItem(id)
			it.Score = rankScore(len(out))
			it.PutLabel("rec_type", utils.Label{Value: recType, Source: "feed"})
			out = append(out, it)
		}
	}

	personalized := e.Personalized(userID, viewed, liked, n)
	appendBucket(personalized.Preferred, "preferred")
	appendBucket(personalized.Liked, "liked")
	appendBucket(e.catalog.Newest(time.Now(), newBucketCap), "new")

	if len(out) < n {
		popular, err := e.popularCandidates(ctx, rctx, n)
		if err != nil {
			e.log.Warn("popular fallback failed", zap.String("user", userID), zap.Error(err))
		}
		appendBucket(popular, "popular")
	}
	return out, nil
}

// popularCandidates 通过召回链路产出热门兜底：
// 热门召回 → 剔除已交互商品 → 按分截断。
func (e *Engine) popularCandidates(ctx context.Context, rctx *core.RecommendContext, n int) ([]string, error) {
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{
				Sources: []recall.Source{
					&recall.Popular{Provider: e.behavior, Limit: n * 2},
				},
				Dedup:         true,
				MergeStrategy: recall.MergeFirst,
			},
			&filter.Node{Filters: []filter.Filter{filter.NewInteracted(e)}},
			&rerank.TopN{N: n},
		},
	}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	return core.ItemIDs(items), nil
}

// rankScore 把填充位次折算为展示分，保持 Feed 内部有序可比。
func rankScore(rank int) float64 {
	return 1.0 / float64(rank+1)
}
