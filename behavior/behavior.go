// Package behavior 实现用户行为日志（Interaction Store）：
// 追加写入的 view / like / purchase 事件流，以及读取侧的三类视图：
//   - Recent: 用户最近行为序列（内容召回的种子）
//   - Aggregate: 按 (用户, 商品) 聚合的隐式反馈打分（协同过滤的训练输入）
//   - Popular: 按浏览量排序的热门商品（兜底召回）
package behavior

import (
	"context"

	"github.com/bincshop/shoprec/core"
)

// Store 是行为日志的领域接口。
// 写入完成后事件对后续读取可见；更强的一致性由具体后端保证。
type Store interface {
	// Log 追加一条行为事件；事件写入后不可变。
	// event.ID 为空时由实现生成；event.Action 非法时返回 INVALID_INPUT。
	Log(ctx context.Context, event core.InteractionEvent) error

	// Recent 返回用户指定行为最近涉及的商品 ID（最近的在前，去重后截断到 limit）。
	Recent(ctx context.Context, userID string, action core.Action, limit int) ([]string, error)

	// Aggregate 返回按 (用户, 商品) 聚合的隐式反馈打分。
	// 返回顺序确定（按用户、商品 ID 排序），保证重复训练产出一致。
	Aggregate(ctx context.Context) ([]core.Interaction, error)

	// Popular 返回按浏览量降序的 TopN 商品 ID（只统计 view 事件）。
	Popular(ctx context.Context, limit int) ([]string, error)

	// Count 返回已记录的事件总数。
	Count(ctx context.Context) (int64, error)
}

// ErrInvalidAction 表示行为类型非法。
var ErrInvalidAction = core.NewDomainError(core.ModuleBehavior, core.ErrorCodeInvalidInput, "behavior: invalid action")
