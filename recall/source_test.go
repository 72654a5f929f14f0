package recall

import (
	"context"
	"testing"

	"github.com/bincshop/shoprec/core"
)

type stubCF map[string][]string

func (s stubCF) RecommendCollaborative(userID string, n int) []string {
	ids := s[userID]
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

type stubContent map[string][]string

func (s stubContent) RecommendContent(productID string, n int) []string {
	ids := s[productID]
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

type stubPopular []string

func (s stubPopular) Popular(_ context.Context, limit int) ([]string, error) {
	if len(s) > limit {
		return s[:limit], nil
	}
	return s, nil
}

func TestCollaborative_Recall(t *testing.T) {
	src := &Collaborative{Provider: stubCF{"alice": {"p1", "p2"}}, N: 10}

	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: "alice"})
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	got := core.ItemIDs(items)
	if len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
		t.Fatalf("got %v, want [p1 p2]", got)
	}
	// 名次折算分：位置越靠前分越高
	if items[0].Score <= items[1].Score {
		t.Errorf("scores not rank-ordered: %v vs %v", items[0].Score, items[1].Score)
	}
	if items[0].Labels["strategy"].Value != "collaborative" {
		t.Errorf("missing strategy label: %+v", items[0].Labels)
	}
}

func TestCollaborative_EmptyForUnknownUser(t *testing.T) {
	src := &Collaborative{Provider: stubCF{}}
	items, err := src.Recall(context.Background(), &core.RecommendContext{UserID: "ghost"})
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty, got %v", core.ItemIDs(items))
	}
}

func TestContent_ExpandsSeedsInOrder(t *testing.T) {
	src := &Content{
		Provider: stubContent{
			"v1": {"a1", "a2"},
			"v2": {"a2", "b1"}, // a2 与 v1 的近邻重叠
		},
		SeedLimit: 5,
		PerSeed:   2,
	}

	items, err := src.Recall(context.Background(), &core.RecommendContext{
		UserID:         "alice",
		RecentlyViewed: []string{"v1", "v2"},
	})
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	got := core.ItemIDs(items)
	want := []string{"a1", "a2", "b1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
	// 记录扩展来源的种子
	if items[0].Labels["content_seed"].Value != "v1" {
		t.Errorf("missing content_seed label: %+v", items[0].Labels)
	}
}

func TestContent_SeedLimitCapsLookback(t *testing.T) {
	src := &Content{
		Provider:  stubContent{"v1": {"a1"}, "v2": {"a2"}, "v3": {"a3"}},
		SeedLimit: 2,
		PerSeed:   1,
	}
	items, _ := src.Recall(context.Background(), &core.RecommendContext{
		UserID:         "alice",
		RecentlyViewed: []string{"v1", "v2", "v3"},
	})
	got := core.ItemIDs(items)
	if len(got) != 2 || got[0] != "a1" || got[1] != "a2" {
		t.Fatalf("got %v, want [a1 a2]", got)
	}
}

func TestPopular_ProviderFirst(t *testing.T) {
	src := &Popular{
		Provider: stubPopular{"p1", "p2"},
		IDs:      []string{"fallback"},
		Limit:    10,
	}
	items, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	got := core.ItemIDs(items)
	if len(got) != 2 || got[0] != "p1" {
		t.Fatalf("got %v, want provider results", got)
	}
}

func TestPopular_FallsBackToStaticIDs(t *testing.T) {
	src := &Popular{IDs: []string{"p9", "p8"}, Limit: 1}
	items, err := src.Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	got := core.ItemIDs(items)
	if len(got) != 1 || got[0] != "p9" {
		t.Fatalf("got %v, want [p9]", got)
	}
}
