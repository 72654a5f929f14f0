package behavior

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bincshop/shoprec/core"
)

// MemoryStore 是内存实现的行为日志，用于测试/开发/原型。
// 事件全量保留在内存中；聚合打分与浏览计数在写入时增量维护。
type MemoryStore struct {
	mu      sync.RWMutex
	events  []core.InteractionEvent
	recents map[string][]string           // user:action -> 商品 ID（最近的在前）
	scores  map[string]map[string]float64 // user -> product -> 累计打分
	views   map[string]float64            // product -> 浏览次数
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recents: make(map[string][]string),
		scores:  make(map[string]map[string]float64),
		views:   make(map[string]float64),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Log(ctx context.Context, event core.InteractionEvent) error {
	if !event.Action.Valid() {
		return ErrInvalidAction
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	// 最近行为序列：头部插入
	rk := recentKey(event.UserID, event.Action)
	m.recents[rk] = append([]string{event.ProductID}, m.recents[rk]...)

	// 聚合打分
	if m.scores[event.UserID] == nil {
		m.scores[event.UserID] = make(map[string]float64)
	}
	m.scores[event.UserID][event.ProductID] += event.Action.Weight()

	// 浏览计数
	if event.Action == core.ActionView {
		m.views[event.ProductID]++
	}

	return nil
}

func (m *MemoryStore) Recent(ctx context.Context, userID string, action core.Action, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.recents[recentKey(userID, action)]
	if len(list) == 0 {
		return nil, nil
	}

	// 去重保序后截断
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, limit)
	for _, id := range list {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Aggregate(ctx context.Context) ([]core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]string, 0, len(m.scores))
	for u := range m.scores {
		users = append(users, u)
	}
	sort.Strings(users)

	out := make([]core.Interaction, 0, len(m.events))
	for _, u := range users {
		products := make([]string, 0, len(m.scores[u]))
		for p := range m.scores[u] {
			products = append(products, p)
		}
		sort.Strings(products)
		for _, p := range products {
			out = append(out, core.Interaction{UserID: u, ProductID: p, Score: m.scores[u][p]})
		}
	}
	return out, nil
}

func (m *MemoryStore) Popular(ctx context.Context, limit int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type pair struct {
		id    string
		count float64
	}
	pairs := make([]pair, 0, len(m.views))
	for id, c := range m.views {
		pairs = append(pairs, pair{id: id, count: c})
	}
	// 浏览量降序；同量按 ID 升序，保证结果确定
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].id < pairs[j].id
	})

	if limit <= 0 || limit > len(pairs) {
		limit = len(pairs)
	}
	out := make([]string, 0, limit)
	for _, p := range pairs[:limit] {
		out = append(out, p.id)
	}
	return out, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.events)), nil
}

func recentKey(userID string, action core.Action) string {
	return userID + ":" + string(action)
}
