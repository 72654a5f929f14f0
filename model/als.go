package model

import (
	"math/rand"
	"sort"

	"github.com/bincshop/shoprec/core"
)

// alsSeed 固定随机种子：同样的训练输入必须产出同样的隐向量，
// 从而保证重复训练后查询结果一致（模型状态是训练输入的纯函数）。
const alsSeed = 42

// ALSModel 是基于矩阵分解的协同过滤模型。
//
// 核心思想：将用户-商品隐式反馈矩阵分解为用户隐向量和商品隐向量
// 预测分数 = 用户隐向量 · 商品隐向量
//
// 算法：隐式反馈 ALS（Alternating Least Squares）
//   - 偏好 p(u,i) = 1（有交互）/ 0（无交互）
//   - 置信度 c(u,i) = 1 + alpha * score
//   - 交替固定一侧隐向量，对另一侧解正规方程
//
// 工程特征：
//   - 实时性：好（离线训练，在线点积查表）
//   - 计算复杂度：训练 O(迭代 × (非零元 × d² + n × d³))，查询 O(商品数 × d)
//   - 冷启动：未知用户 / 未训练直接返回空（属正常态，不报错）
//
// 容量边界：交互矩阵全量驻留内存，规模受宿主内存约束，属明确接受的限制。
type ALSModel struct {
	cfg core.ALSConfig

	userIndex    map[string]int // 用户 ID -> 稠密下标
	productIndex map[string]int // 商品 ID -> 稠密下标
	userIDs      []string       // 下标 -> 用户 ID
	productIDs   []string       // 下标 -> 商品 ID

	userFactors [][]float64 // n_users × d
	itemFactors [][]float64 // n_products × d

	// seen 是训练时的交互矩阵（用户下标 -> 商品下标集合），推荐时排除已交互商品。
	// 下标映射属于模型状态的一部分，持久化时与隐向量一起落盘。
	seen []map[int]float64
}

// FitALS 用聚合后的隐式反馈训练一个新的 ALSModel。
// 输入为空时返回 ErrInsufficientData，调用方应保留旧模型。
//
// 确定性约定：用户/商品按 ID 排序建立下标映射，隐向量用固定种子初始化，
// 因此同样的输入两次训练产出逐位一致的模型。
func FitALS(interactions []core.Interaction, cfg core.ALSConfig) (*ALSModel, error) {
	if len(interactions) == 0 {
		return nil, core.ErrInsufficientData
	}
	if cfg.Factors <= 0 {
		cfg = core.DefaultALSConfig()
	}

	// 1. 建立稠密下标映射（按 ID 排序，保证映射稳定）
	userSet := make(map[string]struct{})
	productSet := make(map[string]struct{})
	for _, in := range interactions {
		userSet[in.UserID] = struct{}{}
		productSet[in.ProductID] = struct{}{}
	}
	userIDs := sortedKeys(userSet)
	productIDs := sortedKeys(productSet)

	userIndex := make(map[string]int, len(userIDs))
	for i, id := range userIDs {
		userIndex[id] = i
	}
	productIndex := make(map[string]int, len(productIDs))
	for i, id := range productIDs {
		productIndex[id] = i
	}

	// 2. 构建稀疏交互矩阵（行：用户 -> (商品下标, 打分)）
	rows := make([]map[int]float64, len(userIDs))
	cols := make([]map[int]float64, len(productIDs))
	for i := range rows {
		rows[i] = make(map[int]float64)
	}
	for i := range cols {
		cols[i] = make(map[int]float64)
	}
	for _, in := range interactions {
		u := userIndex[in.UserID]
		p := productIndex[in.ProductID]
		rows[u][p] += in.Score
		cols[p][u] += in.Score
	}

	d := cfg.Factors

	// 3. 固定种子初始化隐向量
	rng := rand.New(rand.NewSource(alsSeed))
	userFactors := randomFactors(rng, len(userIDs), d)
	itemFactors := randomFactors(rng, len(productIDs), d)

	// 4. 交替最小二乘迭代
	for iter := 0; iter < cfg.Iterations; iter++ {
		solveSide(userFactors, itemFactors, rows, cfg)
		solveSide(itemFactors, userFactors, cols, cfg)
	}

	return &ALSModel{
		cfg:          cfg,
		userIndex:    userIndex,
		productIndex: productIndex,
		userIDs:      userIDs,
		productIDs:   productIDs,
		userFactors:  userFactors,
		itemFactors:  itemFactors,
		seen:         rows,
	}, nil
}

// Recommend 返回用户未交互过的 TopN 商品（分数降序，同分按 ID 升序）。
// 未知用户返回空（冷启动属正常态，不报错）。
func (m *ALSModel) Recommend(userID string, n int) []Scored {
	if m == nil || n <= 0 {
		return nil
	}
	u, ok := m.userIndex[userID]
	if !ok {
		return nil
	}

	uv := m.userFactors[u]
	interacted := m.seen[u]

	scores := make([]Scored, 0, len(m.productIDs))
	for p, pid := range m.productIDs {
		// 排除已交互的商品
		if _, ok := interacted[p]; ok {
			continue
		}
		scores = append(scores, Scored{
			ProductID: pid,
			Score:     dotProduct(uv, m.itemFactors[p]),
		})
	}

	sortScoredDesc(scores)
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// HasUser 检查用户是否出现在训练集中。
func (m *ALSModel) HasUser(userID string) bool {
	if m == nil {
		return false
	}
	_, ok := m.userIndex[userID]
	return ok
}

// Seen 检查用户训练时是否已与该商品交互。
func (m *ALSModel) Seen(userID, productID string) bool {
	if m == nil {
		return false
	}
	u, ok := m.userIndex[userID]
	if !ok {
		return false
	}
	p, ok := m.productIndex[productID]
	if !ok {
		return false
	}
	_, ok = m.seen[u][p]
	return ok
}

// ProductIDs 返回训练集中的全部商品 ID（下标序）。
func (m *ALSModel) ProductIDs() []string {
	if m == nil {
		return nil
	}
	return m.productIDs
}

// solveSide 固定 other 一侧的隐向量，对 target 一侧逐行解正规方程：
//
//	(YᵀY + (Cᵘ-I) 的增量 + λI) x = Yᵀ Cᵘ p(u)
//
// 利用隐式反馈的稀疏性：只对非零交互累加置信度增量。
func solveSide(target, other [][]float64, interactions []map[int]float64, cfg core.ALSConfig) {
	d := cfg.Factors

	// 预计算 YᵀY + λI（所有行共享）
	base := make([][]float64, d)
	for i := range base {
		base[i] = make([]float64, d)
	}
	for _, y := range other {
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				base[i][j] += y[i] * y[j]
			}
		}
	}
	for i := 0; i < d; i++ {
		base[i][i] += cfg.Regularization
	}

	a := make([][]float64, d)
	for i := range a {
		a[i] = make([]float64, d)
	}
	b := make([]float64, d)

	for row := range target {
		// A = YᵀY + λI 的拷贝
		for i := 0; i < d; i++ {
			copy(a[i], base[i])
			b[i] = 0
		}

		// 非零交互的置信度增量（列按升序遍历，保证浮点累加顺序固定）
		for _, col := range sortedCols(interactions[row]) {
			score := interactions[row][col]
			y := other[col]
			c := 1 + cfg.Alpha*score
			for i := 0; i < d; i++ {
				for j := 0; j < d; j++ {
					a[i][j] += (c - 1) * y[i] * y[j]
				}
				b[i] += c * y[i]
			}
		}

		solveLinear(a, b, target[row])
	}
}

// solveLinear 用列主元高斯消元解 Ax=b，结果写入 x。
// A 和 b 会被就地修改（调用方每行重建）。
func solveLinear(a [][]float64, b []float64, x []float64) {
	n := len(b)

	for col := 0; col < n; col++ {
		// 选主元
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(a[r][col]) > abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			// 退化行，跳过该列
			continue
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		// 消元
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	// 回代
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		if a[r][r] == 0 {
			x[r] = 0
			continue
		}
		x[r] = sum / a[r][r]
	}
}

func randomFactors(rng *rand.Rand, rows, d int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		v := make([]float64, d)
		for j := range v {
			v[j] = rng.NormFloat64() * 0.01
		}
		out[i] = v
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
