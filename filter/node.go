package filter

import (
	"context"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
)

// Node 是过滤 Node，串联多个过滤器：任何一个返回 true，该商品即被剔除。
// 单个过滤器出错时跳过该过滤器继续判断，不中断整条链路。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string        { return "filter.node" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		removed := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				// 记录过滤原因，用于调试/观测
				item.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				removed = true
				break
			}
		}
		if !removed {
			out = append(out, item)
		}
	}
	return out, nil
}
