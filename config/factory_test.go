package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pipeline"
)

const feedPipelineYAML = `
pipeline:
  name: popular-fallback
  nodes:
    - type: recall.fanout
      config:
        dedup: true
        merge_strategy: first
        sources:
          - type: collaborative
            n: 10
          - type: popular
            ids: [p1, p2, p3]
            limit: 10
    - type: filter
      config:
        filters:
          - type: interacted
          - type: expr
            expression: 'item.score < 0.0'
    - type: rerank.topn
      config:
        n: 2
`

type stubCF struct{}

func (stubCF) RecommendCollaborative(userID string, n int) []string {
	if userID == "alice" {
		return []string{"c1"}
	}
	return nil
}

type stubChecker struct{}

func (stubChecker) Interacted(userID, productID string) bool {
	return productID == "c1"
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestBuildPipelineFromYAML(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeYAML(t, feedPipelineYAML))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(p.Nodes))
	}

	// 注入运行时依赖后执行：c1 被已交互过滤，热门兜底经 TopN 截断
	Bind(p, Providers{Collaborative: stubCF{}, Interacted: stubChecker{}})

	items, err := p.Run(context.Background(), &core.RecommendContext{UserID: "alice"}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := core.ItemIDs(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items after topn, got %v", got)
	}
	for _, id := range got {
		if id == "c1" {
			t.Error("interacted product c1 must be filtered")
		}
	}
}

func TestValidateRejectsUnknownNodeType(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeYAML(t, `
pipeline:
  name: bad
  nodes:
    - type: rank.xgboost
`))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if err := ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("expected error for unregistered node type")
	}
}

func TestSupportedTypesIncludesBuiltins(t *testing.T) {
	got := SupportedTypes()
	want := map[string]bool{"recall.fanout": false, "recall.popular": false, "filter": false, "rerank.topn": false}
	for _, typ := range got {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Errorf("builtin node type %q not registered", typ)
		}
	}
}
