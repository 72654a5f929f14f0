package config

import (
	"fmt"
	"time"

	"github.com/bincshop/shoprec/filter"
	"github.com/bincshop/shoprec/pipeline"
	"github.com/bincshop/shoprec/pkg/conv"
	"github.com/bincshop/shoprec/recall"
	"github.com/bincshop/shoprec/rerank"
)

// 内置 Node 的 init 注册。依赖引擎的召回源（collaborative / content /
// provider 版 popular）以空 Provider 构建，装配完成后由调用方注入。
func init() {
	Register("recall.fanout", buildFanoutNode)
	Register("recall.popular", buildPopularNode)
	Register("filter", buildFilterNode)
	Register("rerank.topn", buildTopNNode)
}

func buildFanoutNode(config map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := config["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		switch sourceType := conv.ConfigGet[string](sourceMap, "type", ""); sourceType {
		case "collaborative":
			sources = append(sources, &recall.Collaborative{
				N: int(conv.ConfigGetInt64(sourceMap, "n", 0)),
			})
		case "content":
			sources = append(sources, &recall.Content{
				SeedLimit: int(conv.ConfigGetInt64(sourceMap, "seed_limit", 0)),
				PerSeed:   int(conv.ConfigGetInt64(sourceMap, "per_seed", 0)),
			})
		case "popular":
			ids := conv.SliceAnyToString(sourceMap["ids"])
			sources = append(sources, &recall.Popular{
				Key:   conv.ConfigGet[string](sourceMap, "key", ""),
				IDs:   ids,
				Limit: int(conv.ConfigGetInt64(sourceMap, "limit", 0)),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet[bool](config, "dedup", true),
		MergeStrategy: conv.ConfigGet[string](config, "merge_strategy", recall.MergeFirst),
	}
	if sec := conv.ConfigGetInt64(config, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(config, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildPopularNode(config map[string]any) (pipeline.Node, error) {
	return &recall.Popular{
		Key:   conv.ConfigGet[string](config, "key", ""),
		IDs:   conv.SliceAnyToString(config["ids"]),
		Limit: int(conv.ConfigGetInt64(config, "limit", 0)),
	}, nil
}

func buildFilterNode(config map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet[string](filterMap, "type", ""); filterType {
		case "interacted":
			filters = append(filters, filter.NewInteracted(nil))
		case "expr":
			filters = append(filters, filter.NewExpr(conv.ConfigGet[string](filterMap, "expression", "")))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.Node{Filters: filters}, nil
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{N: int(conv.ConfigGetInt64(config, "n", 0))}, nil
}

// Providers 汇总配置文件无法表达的运行时依赖（通常全部来自 service.Engine）。
type Providers struct {
	Collaborative recall.CollaborativeProvider
	Content       recall.ContentProvider
	Popular       recall.PopularProvider
	Interacted    filter.InteractedChecker
}

// Bind 把运行时依赖注入配置装配出的 Pipeline：
// 遍历所有 Node，给空 Provider 的召回源与过滤器补上实现。
func Bind(p *pipeline.Pipeline, providers Providers) {
	if p == nil {
		return
	}
	for _, node := range p.Nodes {
		bindNode(node, providers)
	}
}

func bindNode(node pipeline.Node, providers Providers) {
	switch n := node.(type) {
	case *recall.Fanout:
		for _, src := range n.Sources {
			bindSource(src, providers)
		}
	case *recall.Collaborative, *recall.Content, *recall.Popular:
		bindSource(n.(recall.Source), providers)
	case *filter.Node:
		for _, f := range n.Filters {
			if fi, ok := f.(*filter.Interacted); ok && fi.Checker == nil {
				fi.Checker = providers.Interacted
			}
		}
	}
}

func bindSource(src recall.Source, providers Providers) {
	switch s := src.(type) {
	case *recall.Collaborative:
		if s.Provider == nil {
			s.Provider = providers.Collaborative
		}
	case *recall.Content:
		if s.Provider == nil {
			s.Provider = providers.Content
		}
	case *recall.Popular:
		if s.Provider == nil {
			s.Provider = providers.Popular
		}
	}
}
