package rerank

import (
	"context"
	"testing"

	"github.com/bincshop/shoprec/core"
)

func scoredItem(id string, score float64) *core.Item {
	it := core.NewItem(id)
	it.Score = score
	return it
}

func TestTopN_SortsAndTruncates(t *testing.T) {
	node := &TopN{N: 2}
	items := []*core.Item{
		scoredItem("p1", 0.2),
		scoredItem("p2", 0.9),
		scoredItem("p3", 0.5),
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got := core.ItemIDs(out)
	if len(got) != 2 || got[0] != "p2" || got[1] != "p3" {
		t.Fatalf("got %v, want [p2 p3]", got)
	}
}

func TestTopN_TieBreaksByID(t *testing.T) {
	node := &TopN{N: 3}
	items := []*core.Item{
		scoredItem("pb", 0.5),
		scoredItem("pa", 0.5),
		scoredItem("pc", 0.5),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	got := core.ItemIDs(out)
	if got[0] != "pa" || got[1] != "pb" || got[2] != "pc" {
		t.Fatalf("equal scores must order by id: %v", got)
	}
}

func TestTopN_NoTruncationWhenNNotPositive(t *testing.T) {
	node := &TopN{}
	items := []*core.Item{scoredItem("p1", 0.1), scoredItem("p2", 0.9)}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(out) != 2 || out[0].ID != "p2" {
		t.Fatalf("expected sorted full list, got %v", core.ItemIDs(out))
	}
}
