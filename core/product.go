package core

import (
	"sort"
	"strings"
	"time"
)

// Product 是商品目录快照中的一条记录，内容模型的训练输入。
// 只携带文本字段与少量元信息；库存/价格等交易属性由外部系统负责。
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Specs       map[string]string `json:"specs,omitempty"`
	CreatedAt   time.Time         `json:"created_at,omitempty"`
}

// Document 将商品的文本字段拼接为一篇文档，用于 TF-IDF 向量化。
// 规格值按 key 排序后拼接，保证同一商品产出的文档字节一致。
func (p *Product) Document() string {
	parts := make([]string, 0, 5+len(p.Specs))
	parts = append(parts, p.Name, p.Description, p.Category, p.Brand)

	if len(p.Specs) > 0 {
		keys := make([]string, 0, len(p.Specs))
		for k := range p.Specs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, p.Specs[k])
		}
	}

	return strings.Join(parts, " ")
}

// Review 是一条商品评论，情感分析的输入（只读）。
type Review struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"` // 1~5
}
