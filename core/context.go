package core

import "github.com/bincshop/shoprec/pkg/utils"

// RecommendContext 承载用户/场景/实时行为信息，贯穿整个推荐链路透传。
type RecommendContext struct {
	UserID string
	Scene  string

	// RecentlyViewed 用户最近浏览的商品 ID 列表（最近的在前）。
	// 内容召回以此为种子：对最近浏览的商品做相似商品扩展。
	RecentlyViewed []string

	// Liked 用户最近点赞/收藏的商品 ID 列表（最近的在前）。
	Liked []string

	// Labels 是用户级标签，可驱动过滤/重排策略。
	// 例如：新用户、重度用户、价格敏感等。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、时段、AB 分桶等）。
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
