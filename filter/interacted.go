package filter

import (
	"context"

	"github.com/bincshop/shoprec/core"
)

// InteractedChecker 判断用户是否与商品产生过交互（由 service.Engine 实现，
// 查的是协同过滤模型的训练期交互快照）。
type InteractedChecker interface {
	Interacted(userID, productID string) bool
}

// Interacted 剔除用户已经浏览/点赞/购买过的商品。
// 推荐已交互商品没有增量价值；兜底桶（热门/上新）尤其需要这层过滤。
type Interacted struct {
	Checker InteractedChecker
}

func NewInteracted(checker InteractedChecker) *Interacted {
	return &Interacted{Checker: checker}
}

func (f *Interacted) Name() string { return "filter.interacted" }

func (f *Interacted) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Checker == nil || rctx == nil || rctx.UserID == "" || item == nil {
		return false, nil
	}
	return f.Checker.Interacted(rctx.UserID, item.ID), nil
}
