package core

import "time"

// Action 是用户对商品的行为类型。
type Action string

const (
	ActionView     Action = "view"     // 浏览
	ActionLike     Action = "like"     // 点赞/收藏
	ActionPurchase Action = "purchase" // 购买
)

// Weight 返回行为的隐式反馈权重。
// 购买 > 点赞 > 浏览，聚合后作为协同过滤的打分信号。
func (a Action) Weight() float64 {
	switch a {
	case ActionView:
		return 1.0
	case ActionLike:
		return 3.0
	case ActionPurchase:
		return 5.0
	default:
		return 0
	}
}

// Valid 检查行为类型是否合法。
func (a Action) Valid() bool {
	return a == ActionView || a == ActionLike || a == ActionPurchase
}

// InteractionEvent 是一条用户行为事件（追加写入，写入后不可变）。
type InteractionEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Interaction 是按 (用户, 商品) 聚合后的隐式反馈打分，协同过滤的训练输入。
type Interaction struct {
	UserID    string  `json:"user_id"`
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}
