package model

import (
	"sort"

	"github.com/bincshop/shoprec/core"
)

// ALSState 是 ALSModel 的持久化形态：隐向量展平为一维数组，
// 下标映射以有序 ID 列表表示，交互矩阵以三元组列表表示。
// 纯数值 + 字符串的 JSON 结构，跨语言可读。
type ALSState struct {
	Config       core.ALSConfig     `json:"config"`
	UserIDs      []string           `json:"user_ids"`
	ProductIDs   []string           `json:"product_ids"`
	UserFactors  []float64          `json:"user_factors"`  // len = len(UserIDs) * Config.Factors
	ItemFactors  []float64          `json:"item_factors"`  // len = len(ProductIDs) * Config.Factors
	Interactions []core.Interaction `json:"interactions"`
}

// State 导出模型的持久化形态。
func (m *ALSModel) State() *ALSState {
	if m == nil {
		return nil
	}

	st := &ALSState{
		Config:      m.cfg,
		UserIDs:     m.userIDs,
		ProductIDs:  m.productIDs,
		UserFactors: flatten(m.userFactors, m.cfg.Factors),
		ItemFactors: flatten(m.itemFactors, m.cfg.Factors),
	}

	// 按下标序导出交互三元组，保证 save/load 往返后 seen 一致
	for u, row := range m.seen {
		cols := make([]int, 0, len(row))
		for p := range row {
			cols = append(cols, p)
		}
		sort.Ints(cols)
		for _, p := range cols {
			st.Interactions = append(st.Interactions, core.Interaction{
				UserID:    m.userIDs[u],
				ProductID: m.productIDs[p],
				Score:     row[p],
			})
		}
	}
	return st
}

// LoadALS 从持久化形态重建模型。
// 结构不完整（长度不匹配）时返回 PERSISTENCE 错误，调用方按未训练处理。
func LoadALS(st *ALSState) (*ALSModel, error) {
	if st == nil || st.Config.Factors <= 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: als state missing or corrupt")
	}
	d := st.Config.Factors
	if len(st.UserFactors) != len(st.UserIDs)*d || len(st.ItemFactors) != len(st.ProductIDs)*d {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: als factor shape mismatch")
	}

	userIndex := make(map[string]int, len(st.UserIDs))
	for i, id := range st.UserIDs {
		userIndex[id] = i
	}
	productIndex := make(map[string]int, len(st.ProductIDs))
	for i, id := range st.ProductIDs {
		productIndex[id] = i
	}

	seen := make([]map[int]float64, len(st.UserIDs))
	for i := range seen {
		seen[i] = make(map[int]float64)
	}
	for _, in := range st.Interactions {
		u, uok := userIndex[in.UserID]
		p, pok := productIndex[in.ProductID]
		if !uok || !pok {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: als interaction references unknown id")
		}
		seen[u][p] = in.Score
	}

	return &ALSModel{
		cfg:          st.Config,
		userIndex:    userIndex,
		productIndex: productIndex,
		userIDs:      st.UserIDs,
		productIDs:   st.ProductIDs,
		userFactors:  unflatten(st.UserFactors, d),
		itemFactors:  unflatten(st.ItemFactors, d),
		seen:         seen,
	}, nil
}

func flatten(m [][]float64, d int) []float64 {
	out := make([]float64, 0, len(m)*d)
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

func unflatten(flat []float64, d int) [][]float64 {
	n := len(flat) / d
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = flat[i*d : (i+1)*d]
	}
	return out
}
