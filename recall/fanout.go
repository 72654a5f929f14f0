package recall

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/utils"
)

// 合并策略：first 按首次出现去重（默认）；union 不去重；priority 按源优先级去重。
const (
	MergeFirst    = "first"
	MergeUnion    = "union"
	MergePriority = "priority"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 支持超时、并发上限、按源优先级合并。单个源失败或超时只丢弃该源的结果，
// 不中断其他源（召回是尽力而为的，宁可少不可断）。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // first / union / priority（优先级按 Sources 顺序）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

// sourceResult 按源索引暂存结果，合并阶段保持 Sources 声明顺序，产出确定。
type sourceResult struct {
	priority int
	items    []*core.Item
}

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([]sourceResult, 0, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		s := src
		priority := i // 索引越小优先级越高

		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时丢弃该源结果，不中断其他召回源
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(priority), Source: "recall"})
			}

			mu.Lock()
			results = append(results, sourceResult{priority: priority, items: items})
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 恢复 Sources 声明顺序，消除并发完成次序带来的不确定性
	ordered := make([][]*core.Item, len(n.Sources))
	for _, r := range results {
		ordered[r.priority] = r.items
	}
	all := make([]*core.Item, 0)
	for _, items := range ordered {
		all = append(all, items...)
	}

	switch n.MergeStrategy {
	case MergeUnion:
		return all, nil
	case MergePriority:
		// 源已按优先级排列，首次出现即最高优先级，后续同 ID 只并 label
		return n.mergeFirst(all), nil
	default: // MergeFirst
		return n.mergeFirst(all), nil
	}
}

// mergeFirst 按 ID 去重，保留第一个出现的；重复项的 label 并入保留项。
func (n *Fanout) mergeFirst(all []*core.Item) []*core.Item {
	if !n.Dedup {
		return all
	}
	seen := make(map[string]*core.Item, len(all))
	out := make([]*core.Item, 0, len(all))
	for _, it := range all {
		if it == nil {
			continue
		}
		if old, ok := seen[it.ID]; ok {
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[it.ID] = it
		out = append(out, it)
	}
	return out
}
