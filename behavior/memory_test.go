package behavior

import (
	"context"
	"testing"

	"github.com/bincshop/shoprec/core"
)

func logEvents(t *testing.T, s Store, events ...core.InteractionEvent) {
	t.Helper()
	for _, ev := range events {
		if err := s.Log(context.Background(), ev); err != nil {
			t.Fatalf("log %+v: %v", ev, err)
		}
	}
}

func TestMemoryStore_LogRejectsInvalidAction(t *testing.T) {
	s := NewMemoryStore()
	err := s.Log(context.Background(), core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: "click"})
	if err == nil {
		t.Fatal("expected error for invalid action")
	}
	if !core.IsDomainError(err) {
		t.Fatalf("expected domain error, got %v", err)
	}
}

func TestMemoryStore_RecentMostRecentFirstDeduped(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p2", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView}, // 重复浏览
		core.InteractionEvent{UserID: "u1", ProductID: "p3", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p9", Action: core.ActionLike}, // 不同行为不串台
	)

	got, err := s.Recent(context.Background(), "u1", core.ActionView, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []string{"p3", "p1", "p2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_RecentHonorsLimit(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p2", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p3", Action: core.ActionView},
	)
	got, err := s.Recent(context.Background(), "u1", core.ActionView, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0] != "p3" || got[1] != "p2" {
		t.Fatalf("got %v, want [p3 p2]", got)
	}
}

func TestMemoryStore_AggregateWeightsAndOrder(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u2", ProductID: "p1", Action: core.ActionView},     // 1
		core.InteractionEvent{UserID: "u1", ProductID: "p2", Action: core.ActionLike},     // 3
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView},     // 1
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionPurchase}, // +5 = 6
	)

	got, err := s.Aggregate(context.Background())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := []core.Interaction{
		{UserID: "u1", ProductID: "p1", Score: 6},
		{UserID: "u1", ProductID: "p2", Score: 3},
		{UserID: "u2", ProductID: "p1", Score: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_PopularCountsViewsOnly(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView},
		core.InteractionEvent{UserID: "u2", ProductID: "p1", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p2", Action: core.ActionView},
		// 购买/点赞不计入热门
		core.InteractionEvent{UserID: "u1", ProductID: "p3", Action: core.ActionPurchase},
		core.InteractionEvent{UserID: "u2", ProductID: "p3", Action: core.ActionLike},
	)

	got, err := s.Popular(context.Background(), 10)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	want := []string{"p1", "p2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryStore_PopularTieBreaksByID(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u1", ProductID: "pb", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "pa", Action: core.ActionView},
	)
	got, _ := s.Popular(context.Background(), 10)
	if len(got) != 2 || got[0] != "pa" || got[1] != "pb" {
		t.Fatalf("equal view counts must order by id: got %v", got)
	}
}

func TestMemoryStore_Count(t *testing.T) {
	s := NewMemoryStore()
	logEvents(t, s,
		core.InteractionEvent{UserID: "u1", ProductID: "p1", Action: core.ActionView},
		core.InteractionEvent{UserID: "u1", ProductID: "p2", Action: core.ActionLike},
	)
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
