package service

import (
	"sort"
	"sync"
	"time"

	"github.com/bincshop/shoprec/core"
)

// newProductWindow 上新商品的时间窗口
const newProductWindow = 30 * 24 * time.Hour

// catalogSnapshot 是商品目录在引擎内的只读快照。
// 写入（上架/更新/下架）整体加写锁；读取侧拿到的切片按商品 ID 排序，
// 保证内容模型训练与"上新"召回的输入顺序确定。
type catalogSnapshot struct {
	mu       sync.RWMutex
	products map[string]core.Product
}

func newCatalogSnapshot() *catalogSnapshot {
	return &catalogSnapshot{products: make(map[string]core.Product)}
}

// Upsert 批量写入商品（已存在则覆盖）。
func (c *catalogSnapshot) Upsert(products ...core.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		c.products[p.ID] = p
	}
}

// Remove 下架商品。
func (c *catalogSnapshot) Remove(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.products, id)
	}
}

// Get 按 ID 取商品。
func (c *catalogSnapshot) Get(id string) (core.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// All 返回按 ID 排序的全量商品。
func (c *catalogSnapshot) All() []core.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len 返回商品数。
func (c *catalogSnapshot) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Newest 返回时间窗口内上架的商品 ID，按上架时间降序（同刻按 ID 升序）。
func (c *catalogSnapshot) Newest(now time.Time, limit int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cutoff := now.Add(-newProductWindow)
	fresh := make([]core.Product, 0)
	for _, p := range c.products {
		if p.CreatedAt.After(cutoff) {
			fresh = append(fresh, p)
		}
	}
	sort.Slice(fresh, func(i, j int) bool {
		if !fresh[i].CreatedAt.Equal(fresh[j].CreatedAt) {
			return fresh[i].CreatedAt.After(fresh[j].CreatedAt)
		}
		return fresh[i].ID < fresh[j].ID
	})
	if limit > 0 && len(fresh) > limit {
		fresh = fresh[:limit]
	}
	ids := make([]string, 0, len(fresh))
	for _, p := range fresh {
		ids = append(ids, p.ID)
	}
	return ids
}
