package store

import (
	"context"
	"testing"

	"github.com/bincshop/shoprec/core"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Fatalf("get = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMemoryStore_ZSetOrdering(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	// 浏览计数式写入
	for _, m := range []struct {
		member string
		delta  float64
	}{
		{"p1", 1}, {"p2", 1}, {"p1", 1}, {"p3", 1}, {"p1", 1}, {"p3", 1},
	} {
		if err := s.ZIncrBy(ctx, "popular", m.delta, m.member); err != nil {
			t.Fatalf("zincrby: %v", err)
		}
	}

	got, err := s.ZRange(ctx, "popular", 0, 10)
	if err != nil {
		t.Fatalf("zrange: %v", err)
	}
	want := []string{"p1", "p3", "p2"} // 3 > 2 > 1
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}

	score, err := s.ZScore(ctx, "popular", "p1")
	if err != nil || score != 3 {
		t.Fatalf("zscore = %v, %v, want 3", score, err)
	}
}

func TestMemoryStore_ZRangeTieBreaksByMember(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for _, member := range []string{"pb", "pa", "pc"} {
		if err := s.ZIncrBy(ctx, "z", 1, member); err != nil {
			t.Fatalf("zincrby: %v", err)
		}
	}
	got, err := s.ZRange(ctx, "z", 0, 10)
	if err != nil {
		t.Fatalf("zrange: %v", err)
	}
	if got[0] != "pa" || got[1] != "pb" || got[2] != "pc" {
		t.Fatalf("equal scores must order by member: %v", got)
	}
}

func TestMemoryStore_ListPushRange(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for _, v := range []string{"e1", "e2", "e3"} {
		if err := s.LPush(ctx, "events", v); err != nil {
			t.Fatalf("lpush: %v", err)
		}
	}
	got, err := s.LRange(ctx, "events", 0, 1)
	if err != nil {
		t.Fatalf("lrange: %v", err)
	}
	if len(got) != 2 || got[0] != "e3" || got[1] != "e2" {
		t.Fatalf("got %v, want [e3 e2]", got)
	}
}
