package filter

import (
	"context"
	"testing"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/pkg/utils"
)

type stubChecker map[string]map[string]bool

func (s stubChecker) Interacted(userID, productID string) bool {
	return s[userID][productID]
}

func itemsOf(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func TestInteracted_DropsSeenProducts(t *testing.T) {
	checker := stubChecker{"alice": {"p1": true, "p3": true}}
	node := &Node{Filters: []Filter{NewInteracted(checker)}}

	out, err := node.Process(context.Background(),
		&core.RecommendContext{UserID: "alice"},
		itemsOf("p1", "p2", "p3", "p4"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got := core.ItemIDs(out)
	if len(got) != 2 || got[0] != "p2" || got[1] != "p4" {
		t.Fatalf("got %v, want [p2 p4]", got)
	}
}

func TestInteracted_NoUserPassesThrough(t *testing.T) {
	checker := stubChecker{"alice": {"p1": true}}
	f := NewInteracted(checker)

	hit, err := f.ShouldFilter(context.Background(), &core.RecommendContext{}, core.NewItem("p1"))
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if hit {
		t.Fatal("anonymous context must not filter anything")
	}
}

func TestExpr_FiltersByLabel(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		item       func() *core.Item
		wantHit    bool
	}{
		{
			name:       "label match filters",
			expression: `label.strategy == "popular"`,
			item: func() *core.Item {
				it := core.NewItem("p1")
				it.PutLabel("strategy", utils.Label{Value: "popular", Source: "test"})
				return it
			},
			wantHit: true,
		},
		{
			name:       "label mismatch keeps",
			expression: `label.strategy == "popular"`,
			item: func() *core.Item {
				it := core.NewItem("p1")
				it.PutLabel("strategy", utils.Label{Value: "content", Source: "test"})
				return it
			},
			wantHit: false,
		},
		{
			name:       "score threshold",
			expression: `item.score < 0.2`,
			item: func() *core.Item {
				it := core.NewItem("p1")
				it.Score = 0.1
				return it
			},
			wantHit: true,
		},
		{
			name:       "empty expression keeps everything",
			expression: "",
			item:       func() *core.Item { return core.NewItem("p1") },
			wantHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewExpr(tt.expression)
			hit, err := f.ShouldFilter(context.Background(), &core.RecommendContext{UserID: "u1"}, tt.item())
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			if hit != tt.wantHit {
				t.Errorf("hit = %v, want %v", hit, tt.wantHit)
			}
		})
	}
}

func TestExpr_SceneFromContext(t *testing.T) {
	f := NewExpr(`label.strategy == "content" && rctx.scene == "cart"`)
	it := core.NewItem("p1")
	it.PutLabel("strategy", utils.Label{Value: "content", Source: "test"})

	hit, err := f.ShouldFilter(context.Background(), &core.RecommendContext{UserID: "u1", Scene: "cart"}, it)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !hit {
		t.Fatal("expected cart-scene content item to be filtered")
	}

	hit, err = f.ShouldFilter(context.Background(), &core.RecommendContext{UserID: "u1", Scene: "home"}, it)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if hit {
		t.Fatal("home scene must keep the item")
	}
}

func TestNode_BrokenFilterDoesNotAbort(t *testing.T) {
	// 表达式编译失败的过滤器应被跳过，不吞掉整条链路
	node := &Node{Filters: []Filter{
		NewExpr(`label.strategy ==`), // 语法错误
		NewInteracted(stubChecker{"alice": {"p1": true}}),
	}}
	out, err := node.Process(context.Background(),
		&core.RecommendContext{UserID: "alice"},
		itemsOf("p1", "p2"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got := core.ItemIDs(out)
	if len(got) != 1 || got[0] != "p2" {
		t.Fatalf("got %v, want [p2]", got)
	}
}

func TestNode_RecordsFilterReason(t *testing.T) {
	checker := stubChecker{"alice": {"p1": true}}
	node := &Node{Filters: []Filter{NewInteracted(checker)}}

	items := itemsOf("p1", "p2")
	if _, err := node.Process(context.Background(), &core.RecommendContext{UserID: "alice"}, items); err != nil {
		t.Fatalf("process: %v", err)
	}
	lbl, ok := items[0].Labels["filtered"]
	if !ok || lbl.Source != "filter.interacted" {
		t.Fatalf("expected filtered label with reason, got %+v", items[0].Labels)
	}
}
