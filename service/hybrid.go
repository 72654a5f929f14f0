package service

// 个性化结果两个桶的容量上限
const (
	preferredBucketCap = 10
	likedBucketCap     = 10
)

// liked 桶固定每个点赞商品扩展 3 个近邻，不跟随混合推荐的 SimilarPerProduct 配置
const likedNeighboursPerSeed = 3

// PersonalizedResult 是个性化推荐的两个命名桶。
// 两个桶都可能为空，最终兜底（热门/上新补位）由 Feed 层负责。
type PersonalizedResult struct {
	// Preferred 混合推荐的头部商品
	Preferred []string `json:"preferred"`
	// Liked 用户点赞商品的内容近邻
	Liked []string `json:"liked"`
}

// RecommendHybrid 融合协同与内容两路信号，输出单个有序商品列表。
//
// 算法流程：
//  1. 协同过滤召回至多 n 个候选；
//  2. 取最近浏览的前 RecentViewLimit 个商品（最近的在前），每个扩展
//     SimilarPerProduct 个内容相似商品，保持"先按浏览新近度、再按相似度名次"的全局顺序；
//  3. 协同候选 ≥ n/2 时：前 n/2 个协同候选打底，再依次补入未出现过的内容候选直到 n；
//  4. 否则（协同信号不足）：两路候选按首次出现顺序去重合并，截断到 n；
//  5. 任何内部失败都表现为空列表，不向调用方抛错。
func (e *Engine) RecommendHybrid(userID string, recentlyViewed []string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	cf := e.RecommendCollaborative(userID, n)
	cb := e.contentCandidates(recentlyViewed, e.hybridCfg.RecentViewLimit, e.hybridCfg.SimilarPerProduct)

	half := n / 2
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	appendUnseen := func(ids []string) {
		for _, id := range ids {
			if len(out) >= n {
				return
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	// n=1 时 half=0：底座为空，候选全部来自内容侧
	if len(cf) >= half {
		appendUnseen(cf[:half])
		appendUnseen(cb)
	} else {
		appendUnseen(cf)
		appendUnseen(cb)
	}
	return out
}

// Personalized 返回个性化推荐的两个命名桶：
// preferred 取混合推荐的前 10，liked 取点赞商品的内容近邻（每个 3 个，去重后截断到 10）。
func (e *Engine) Personalized(userID string, viewed, liked []string, n int) PersonalizedResult {
	if n <= 0 {
		n = 20
	}

	hybrid := e.RecommendHybrid(userID, viewed, n)
	preferred := hybrid
	if len(preferred) > preferredBucketCap {
		preferred = preferred[:preferredBucketCap]
	}

	neighbours := e.contentCandidates(liked, len(liked), likedNeighboursPerSeed)
	if len(neighbours) > likedBucketCap {
		neighbours = neighbours[:likedBucketCap]
	}

	return PersonalizedResult{Preferred: preferred, Liked: neighbours}
}

// contentCandidates 对种子商品序列逐个做内容扩展并按首次出现顺序去重。
// 种子顺序即优先级：前面种子的近邻整体排在后面种子的近邻之前。
func (e *Engine) contentCandidates(seeds []string, seedLimit, perSeed int) []string {
	if seedLimit <= 0 || perSeed <= 0 {
		return nil
	}
	if len(seeds) > seedLimit {
		seeds = seeds[:seedLimit]
	}

	out := make([]string, 0, len(seeds)*perSeed)
	seen := make(map[string]struct{}, len(seeds)*perSeed)
	for _, seed := range seeds {
		for _, id := range e.RecommendContent(seed, perSeed) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
