package behavior

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bincshop/shoprec/core"
)

// RedisStore 是 Redis 实现的行为日志，生产环境常用。
//
// 数据布局（{prefix} 默认 "behavior"）：
//   - {prefix}:events              List，事件 JSON（头部为最近，仅审计用途）
//   - {prefix}:recent:{user}:{act} List，商品 ID（头部为最近），LTRIM 控制长度
//   - {prefix}:score:{user}        Hash，product -> 累计隐式打分（HINCRBYFLOAT）
//   - {prefix}:users               Set，出现过的用户 ID（避免 Aggregate 全库 SCAN）
//   - {prefix}:popular             ZSet，product -> 浏览次数（ZINCRBY，view 事件）
//   - {prefix}:count               计数器
type RedisStore struct {
	client *redis.Client
	prefix string

	// RecentCap 每个 recent 列表保留的最大长度
	RecentCap int64
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "behavior"
	}
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		RecentCap: 200,
	}
}

var _ Store = (*RedisStore)(nil)

func (r *RedisStore) key(parts ...string) string {
	k := r.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (r *RedisStore) Log(ctx context.Context, event core.InteractionEvent) error {
	if !event.Action.Valid() {
		return ErrInvalidAction
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}

	recentKey := r.key("recent", event.UserID, string(event.Action))

	// 单条事件的所有写入打包进一次 pipeline，减少网络往返
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key("events"), raw)
	pipe.LPush(ctx, recentKey, event.ProductID)
	if r.RecentCap > 0 {
		pipe.LTrim(ctx, recentKey, 0, r.RecentCap-1)
	}
	pipe.HIncrByFloat(ctx, r.key("score", event.UserID), event.ProductID, event.Action.Weight())
	pipe.SAdd(ctx, r.key("users"), event.UserID)
	if event.Action == core.ActionView {
		pipe.ZIncrBy(ctx, r.key("popular"), 1, event.ProductID)
	}
	pipe.Incr(ctx, r.key("count"))

	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) Recent(ctx context.Context, userID string, action core.Action, limit int) ([]string, error) {
	list, err := r.client.LRange(ctx, r.key("recent", userID, string(action)), 0, -1).Result()
	if err != nil {
		return nil, err
	}

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

func (r *RedisStore) Aggregate(ctx context.Context) ([]core.Interaction, error) {
	users, err := r.client.SMembers(ctx, r.key("users")).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(users)

	out := make([]core.Interaction, 0, len(users))
	for _, u := range users {
		scores, err := r.client.HGetAll(ctx, r.key("score", u)).Result()
		if err != nil {
			return nil, err
		}

		products := make([]string, 0, len(scores))
		for p := range scores {
			products = append(products, p)
		}
		sort.Strings(products)

		for _, p := range products {
			score, err := strconv.ParseFloat(scores[p], 64)
			if err != nil {
				continue
			}
			out = append(out, core.Interaction{UserID: u, ProductID: p, Score: score})
		}
	}
	return out, nil
}

func (r *RedisStore) Popular(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.client.ZRevRange(ctx, r.key("popular"), 0, int64(limit-1)).Result()
}

func (r *RedisStore) Count(ctx context.Context) (int64, error) {
	n, err := r.client.Get(ctx, r.key("count")).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
