package service

import (
	"testing"

	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/model"
)

// cfState 构造单用户的协同过滤状态：ranked 即期望的推荐顺序。
func cfState(user string, ranked []string) *model.ALSState {
	itemFactors := make([]float64, len(ranked))
	for i := range ranked {
		itemFactors[i] = 1.0 - float64(i)*0.05 // 严格递减，排序无并列
	}
	return &model.ALSState{
		Config:      core.ALSConfig{Factors: 1, Regularization: 0.01, Iterations: 1, Alpha: 40},
		UserIDs:     []string{user},
		ProductIDs:  ranked,
		UserFactors: []float64{1.0},
		ItemFactors: itemFactors,
	}
}

// contentState 构造内容模型状态：sims[seed] 是 seed 的近邻及相似度。
// 每个 (seed, 近邻) 对占一个独立列，商品间相似度严格等于给定值。
func contentState(products []string, sims map[string]map[string]float64) *model.TFIDFState {
	rowIndex := make(map[string]int, len(products))
	rows := make([]map[int]float64, len(products))
	for i, p := range products {
		rowIndex[p] = i
		rows[i] = make(map[int]float64)
	}

	col := 0
	for seed, neighbours := range sims {
		for other, sim := range neighbours {
			rows[rowIndex[seed]][col] = 1.0
			rows[rowIndex[other]][col] = sim
			col++
		}
	}

	vocabulary := make(map[string]int, col)
	idf := make([]float64, col)
	state := &model.TFIDFState{
		Config:     core.TFIDFConfig{MaxFeatures: col, NGramMax: 1},
		Vocabulary: vocabulary,
		IDF:        idf,
		ProductIDs: products,
		Rows:       make([]model.SparseRow, len(products)),
	}
	for i, row := range rows {
		sr := model.SparseRow{}
		for c := 0; c < col; c++ {
			if w, ok := row[c]; ok {
				sr.Cols = append(sr.Cols, c)
				sr.Weights = append(sr.Weights, w)
			}
		}
		state.Rows[i] = sr
	}
	return state
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecommendHybrid_QuotaWithStrongCollaborativeSignal(t *testing.T) {
	e := New()
	installCollaborative(t, e, cfState("alice", []string{"c1", "c2", "c3", "c4", "c5", "c6"}))
	installContent(t, e, contentState(
		[]string{"v1", "b1", "b2", "c1"},
		map[string]map[string]float64{
			"v1": {"b1": 0.9, "b2": 0.8, "c1": 0.7},
		},
	))

	// 协同候选充足：前 n/2 个协同打底，再补内容候选（c1 已在底座中被去重）
	got := e.RecommendHybrid("alice", []string{"v1"}, 6)
	assertIDs(t, got, []string{"c1", "c2", "c3", "b1", "b2"})
}

func TestRecommendHybrid_UnionWhenCollaborativeSparse(t *testing.T) {
	e := New()
	installCollaborative(t, e, cfState("alice", []string{"c1"}))
	installContent(t, e, contentState(
		[]string{"v1", "b1", "b2", "c1"},
		map[string]map[string]float64{
			"v1": {"b1": 0.9, "b2": 0.8, "c1": 0.7},
		},
	))

	// 协同候选 1 < n/2=3：两路候选按首次出现去重合并
	got := e.RecommendHybrid("alice", []string{"v1"}, 6)
	assertIDs(t, got, []string{"c1", "b1", "b2"})
}

func TestRecommendHybrid_SingleSlotFilledFromContent(t *testing.T) {
	e := New()
	installCollaborative(t, e, cfState("alice", []string{"c1"}))
	installContent(t, e, contentState(
		[]string{"v1", "b1"},
		map[string]map[string]float64{
			"v1": {"b1": 0.9},
		},
	))

	// n=1 时 n/2=0：协同底座为空，唯一名额给内容候选
	got := e.RecommendHybrid("alice", []string{"v1"}, 1)
	assertIDs(t, got, []string{"b1"})
}

func TestRecommendHybrid_TruncatesToN(t *testing.T) {
	e := New()
	installCollaborative(t, e, cfState("alice", []string{"c1", "c2", "c3", "c4", "c5", "c6"}))

	got := e.RecommendHybrid("alice", nil, 4)
	assertIDs(t, got, []string{"c1", "c2"})
	// n/2=2 的配额：内容侧为空时只有协同底座
}

func TestRecommendHybrid_NeverErrorsOnColdStart(t *testing.T) {
	e := New()
	// 两个模型都未训练
	got := e.RecommendHybrid("stranger", []string{"v1"}, 10)
	if got == nil {
		t.Fatal("hybrid must return empty list, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestRecommendHybrid_ContentSeedOrder(t *testing.T) {
	e := New()
	installContent(t, e, contentState(
		[]string{"v1", "v2", "a1", "a2"},
		map[string]map[string]float64{
			"v1": {"a1": 0.9},
			"v2": {"a2": 0.9},
		},
	))

	// 种子顺序即优先级：v1 的近邻整体排在 v2 的近邻之前
	got := e.contentCandidates([]string{"v1", "v2"}, 5, 1)
	assertIDs(t, got, []string{"a1", "a2"})

	got = e.contentCandidates([]string{"v2", "v1"}, 5, 1)
	assertIDs(t, got, []string{"a2", "a1"})
}

func TestPersonalized_Buckets(t *testing.T) {
	e := New()
	ranked := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10", "c11", "c12"}
	installCollaborative(t, e, cfState("alice", ranked))
	installContent(t, e, contentState(
		[]string{"l1", "n1", "n2", "n3"},
		map[string]map[string]float64{
			"l1": {"n1": 0.9, "n2": 0.8, "n3": 0.7},
		},
	))

	got := e.Personalized("alice", nil, []string{"l1"}, 20)

	// preferred 是混合结果的前 10
	if len(got.Preferred) != 10 {
		t.Fatalf("preferred bucket size = %d, want 10", len(got.Preferred))
	}
	assertIDs(t, got.Preferred, ranked[:10])

	// liked 是点赞商品的内容近邻
	assertIDs(t, got.Liked, []string{"n1", "n2", "n3"})
}

func TestPersonalized_LikedBucketIgnoresHybridQuota(t *testing.T) {
	// 调小混合推荐的 SimilarPerProduct 不应影响 liked 桶的每种子 3 近邻
	e := New(WithHybridConfig(core.HybridConfig{RecentViewLimit: 5, SimilarPerProduct: 1}))
	installContent(t, e, contentState(
		[]string{"l1", "n1", "n2", "n3"},
		map[string]map[string]float64{
			"l1": {"n1": 0.9, "n2": 0.8, "n3": 0.7},
		},
	))

	got := e.Personalized("alice", nil, []string{"l1"}, 20)
	assertIDs(t, got.Liked, []string{"n1", "n2", "n3"})
}

func TestPersonalized_EmptyBucketsForUnknownUser(t *testing.T) {
	e := New()
	got := e.Personalized("stranger", nil, nil, 20)
	if len(got.Preferred) != 0 || len(got.Liked) != 0 {
		t.Fatalf("expected empty buckets, got %+v", got)
	}
}
