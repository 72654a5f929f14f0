package filter

import (
	"context"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pkg/dsl"
)

// Expr 是表达式过滤器：用 CEL 表达式描述剔除条件，命中即过滤。
//
// 表达式的输入变量见 pkg/dsl，常见写法：
//   - `label.recall_source.contains("popular")` → 剔除热门兜底召回的商品
//   - `item.score < 0.1` → 剔除低分长尾
//   - `label.strategy == "content" && rctx.scene == "cart"` → 购物车场景不出内容召回
//
// 表达式编译或求值失败时保留商品（过滤是收紧策略，出错宁可放行）。
type Expr struct {
	// Expression 剔除条件；空表达式不过滤任何商品
	Expression string
}

func NewExpr(expression string) *Expr {
	return &Expr{Expression: expression}
}

func (f *Expr) Name() string { return "filter.expr" }

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expression == "" || item == nil {
		return false, nil
	}
	hit, err := dsl.NewEval(item, rctx).Evaluate(f.Expression)
	if err != nil {
		return false, err
	}
	return hit, nil
}
