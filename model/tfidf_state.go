package model

import (
	"sort"

	"github.com/bincshop/shoprec/core"
)

// TFIDFState 是 TFIDFModel 的持久化形态：词表、idf 向量、
// 稀疏行向量与并行的商品 ID 数组。纯数值 + 字符串的 JSON 结构，跨语言可读。
type TFIDFState struct {
	Config     core.TFIDFConfig `json:"config"`
	Vocabulary map[string]int   `json:"vocabulary"`
	IDF        []float64        `json:"idf"`
	ProductIDs []string         `json:"product_ids"`
	Rows       []SparseRow      `json:"rows"` // 与 ProductIDs 并行
}

// SparseRow 是一行稀疏向量：并行的列下标与权重数组。
type SparseRow struct {
	Cols    []int     `json:"cols"`
	Weights []float64 `json:"weights"`
}

// State 导出模型的持久化形态。
func (m *TFIDFModel) State() *TFIDFState {
	if m == nil {
		return nil
	}

	rows := make([]SparseRow, len(m.rows))
	for i, row := range m.rows {
		cols := make([]int, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Ints(cols)

		sr := SparseRow{
			Cols:    cols,
			Weights: make([]float64, len(cols)),
		}
		for j, col := range cols {
			sr.Weights[j] = row[col]
		}
		rows[i] = sr
	}

	return &TFIDFState{
		Config:     m.cfg,
		Vocabulary: m.vocabulary,
		IDF:        m.idf,
		ProductIDs: m.productIDs,
		Rows:       rows,
	}
}

// LoadTFIDF 从持久化形态重建模型。
// 结构不完整（行数与 ID 数不匹配）时返回 PERSISTENCE 错误。
func LoadTFIDF(st *TFIDFState) (*TFIDFModel, error) {
	if st == nil || len(st.ProductIDs) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: tfidf state missing or corrupt")
	}
	if len(st.Rows) != len(st.ProductIDs) {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: tfidf row count mismatch")
	}

	rows := make([]map[int]float64, len(st.Rows))
	for i, sr := range st.Rows {
		if len(sr.Cols) != len(sr.Weights) {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodePersistence, "model: tfidf sparse row shape mismatch")
		}
		row := make(map[int]float64, len(sr.Cols))
		for j, col := range sr.Cols {
			row[col] = sr.Weights[j]
		}
		rows[i] = row
	}

	rowIndex := make(map[string]int, len(st.ProductIDs))
	for i, id := range st.ProductIDs {
		rowIndex[id] = i
	}

	return &TFIDFModel{
		cfg:        st.Config,
		vocabulary: st.Vocabulary,
		idf:        st.IDF,
		productIDs: st.ProductIDs,
		rowIndex:   rowIndex,
		rows:       rows,
	}, nil
}
