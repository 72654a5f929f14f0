// Package service 对外提供推荐引擎门面（Engine）：
// 行为写入、模型训练与生命周期、协同/内容/混合推荐、个性化 Feed。
//
// 架构分层：
//
//	behavior（行为日志） ──► model（ALS / TF-IDF 训练与查询）
//	       │                        │
//	       └──────► service.Engine ◄┘ ──► recall / filter / rerank（Feed 组装）
//
// Engine 持有两个模型的生命周期（lifecycle.go）与产物读写（artifact.go），
// 查询侧永远读原子快照，训练失败不影响在线服务。
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bincshop/shoprec/behavior"
	"github.com/bincshop/shoprec/core"
	"github.com/bincshop/shoprec/model"
	"github.com/bincshop/shoprec/sentiment"
)

// Engine 是推荐引擎的统一入口。
// 并发安全：所有方法可被多 goroutine 同时调用。
type Engine struct {
	log      *zap.Logger
	behavior behavior.Store
	analyzer sentiment.Analyzer

	artifacts *artifactStore

	alsCfg    core.ALSConfig
	tfidfCfg  core.TFIDFConfig
	hybridCfg core.HybridConfig

	als   *holder[model.ALSModel]
	tfidf *holder[model.TFIDFModel]

	catalog *catalogSnapshot
}

// Option 配置 Engine 的可选项。
type Option func(*Engine)

// WithLogger 设置结构化日志器（默认 zap.NewNop）。
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithBehaviorStore 设置行为日志后端（默认进程内存储）。
func WithBehaviorStore(s behavior.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.behavior = s
		}
	}
}

// WithAnalyzer 设置评论情感分析器（默认词典分析器 + 评分兜底）。
func WithAnalyzer(a sentiment.Analyzer) Option {
	return func(e *Engine) {
		if a != nil {
			e.analyzer = a
		}
	}
}

// WithModelDir 设置模型产物目录；为空时模型只存在于内存。
func WithModelDir(dir string) Option {
	return func(e *Engine) { e.artifacts = newArtifactStore(dir) }
}

// WithALSConfig 覆盖协同过滤超参数。
func WithALSConfig(cfg core.ALSConfig) Option {
	return func(e *Engine) { e.alsCfg = cfg }
}

// WithTFIDFConfig 覆盖内容模型超参数。
func WithTFIDFConfig(cfg core.TFIDFConfig) Option {
	return func(e *Engine) { e.tfidfCfg = cfg }
}

// WithHybridConfig 覆盖混合推荐配额。
func WithHybridConfig(cfg core.HybridConfig) Option {
	return func(e *Engine) { e.hybridCfg = cfg }
}

// WithConfig 按配置文件整体装配（等价于逐项 Option）。
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.alsCfg = cfg.ALS
		e.tfidfCfg = cfg.TFIDF
		e.hybridCfg = cfg.Hybrid
		if cfg.ModelDir != "" {
			e.artifacts = newArtifactStore(cfg.ModelDir)
		}
	}
}

// New 创建推荐引擎并尝试从产物目录恢复模型。
// 产物缺失或损坏只降级为"等待训练"，不阻止引擎启动。
func New(opts ...Option) *Engine {
	e := &Engine{
		log:       zap.NewNop(),
		alsCfg:    core.DefaultALSConfig(),
		tfidfCfg:  core.DefaultTFIDFConfig(),
		hybridCfg: core.DefaultHybridConfig(),
		artifacts: newArtifactStore(""),
		als:       newHolder[model.ALSModel]("als"),
		tfidf:     newHolder[model.TFIDFModel]("tfidf"),
		catalog:   newCatalogSnapshot(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.behavior == nil {
		e.behavior = behavior.NewMemoryStore()
	}
	if e.analyzer == nil {
		e.analyzer = sentiment.New(e.log)
	}

	e.restore()
	return e
}

// restore 启动时恢复两个模型的持久化产物。
func (e *Engine) restore() {
	if m, err := e.artifacts.LoadALS(); err != nil {
		e.log.Warn("load collaborative model failed, waiting for retrain",
			zap.Error(err))
		e.als.MarkUntrained()
	} else if m == nil {
		e.als.MarkUntrained()
	} else {
		e.als.Install(m, StateLoaded)
		e.log.Info("collaborative model loaded",
			zap.Int("products", len(m.ProductIDs())))
	}

	if m, err := e.artifacts.LoadTFIDF(); err != nil {
		e.log.Warn("load content model failed, waiting for retrain",
			zap.Error(err))
		e.tfidf.MarkUntrained()
	} else if m == nil {
		e.tfidf.MarkUntrained()
	} else {
		e.tfidf.Install(m, StateLoaded)
		e.log.Info("content model loaded",
			zap.Int("products", len(m.ProductIDs())))
	}
}

// UpsertProducts 批量上架或更新商品。
// 目录变更不会自动触发重训，新商品进入内容模型需等下一次 TrainContent。
func (e *Engine) UpsertProducts(products ...core.Product) {
	e.catalog.Upsert(products...)
}

// RemoveProducts 批量下架商品。
func (e *Engine) RemoveProducts(ids ...string) {
	e.catalog.Remove(ids...)
}

// Product 按 ID 查询商品。
func (e *Engine) Product(id string) (core.Product, bool) {
	return e.catalog.Get(id)
}

// BehaviorStore 返回底层行为日志（供召回节点等下游组件复用）。
func (e *Engine) BehaviorStore() behavior.Store {
	return e.behavior
}

// CollaborativeState 返回协同过滤模型的生命周期状态。
func (e *Engine) CollaborativeState() State { return e.als.State() }

// ContentState 返回内容模型的生命周期状态。
func (e *Engine) ContentState() State { return e.tfidf.State() }

// LastSaveErr 返回最近一次模型持久化的错误（nil 表示成功或未持久化）。
func (e *Engine) LastSaveErr() error {
	if err := e.als.LastSaveErr(); err != nil {
		return err
	}
	return e.tfidf.LastSaveErr()
}

// TrainCollaborative 用行为日志的聚合打分训练协同过滤模型。
// 等价于 Aggregate + TrainCollaborativeWith。
func (e *Engine) TrainCollaborative(ctx context.Context) (bool, error) {
	interactions, err := e.behavior.Aggregate(ctx)
	if err != nil {
		return false, err
	}
	return e.TrainCollaborativeWith(ctx, interactions)
}

// TrainCollaborativeWith 用给定的隐式反馈打分训练协同过滤模型。
//
// 返回 (trained, err)：
//   - 已有训练在跑时直接跳过，返回 (false, nil)；
//   - 无交互数据时返回 INSUFFICIENT_DATA，原有模型保留；
//   - 训练成功即上线新快照；落盘失败只记录、不回滚。
func (e *Engine) TrainCollaborativeWith(ctx context.Context, interactions []core.Interaction) (bool, error) {
	if !e.als.TryBeginTrain() {
		e.log.Info("collaborative training already in progress, skip")
		return false, nil
	}
	defer e.als.EndTrain()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	m, err := model.FitALS(interactions, e.alsCfg)
	if err != nil {
		return false, err
	}
	e.als.Install(m, StateTrained)
	e.log.Info("collaborative model trained",
		zap.Int("interactions", len(interactions)),
		zap.Int("products", len(m.ProductIDs())))

	if err := e.artifacts.SaveALS(m); err != nil {
		// 内存中的新模型照常服务，下次训练重试落盘
		e.log.Warn("persist collaborative model failed", zap.Error(err))
		e.als.SetSaveErr(err)
	} else {
		e.als.SetSaveErr(nil)
	}
	return true, nil
}

// TrainContent 用当前商品目录的文本语料训练内容模型。
func (e *Engine) TrainContent(ctx context.Context) (bool, error) {
	return e.TrainContentWith(ctx, e.catalog.All())
}

// TrainContentWith 用给定的商品语料训练内容模型。
// 语义与 TrainCollaborativeWith 一致：跳过并发训练、语料为空时报 INSUFFICIENT_DATA。
func (e *Engine) TrainContentWith(ctx context.Context, products []core.Product) (bool, error) {
	if !e.tfidf.TryBeginTrain() {
		e.log.Info("content training already in progress, skip")
		return false, nil
	}
	defer e.tfidf.EndTrain()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	m, err := model.FitTFIDF(products, e.tfidfCfg)
	if err != nil {
		return false, err
	}
	e.tfidf.Install(m, StateTrained)
	e.log.Info("content model trained",
		zap.Int("products", len(products)),
		zap.Int("vocabulary", m.VocabularySize()))

	if err := e.artifacts.SaveTFIDF(m); err != nil {
		e.log.Warn("persist content model failed", zap.Error(err))
		e.tfidf.SetSaveErr(err)
	} else {
		e.tfidf.SetSaveErr(nil)
	}
	return true, nil
}

// RecommendCollaborative 基于协同过滤为用户推荐商品 ID。
// 模型未就绪或用户未出现在训练数据中（冷启动）时返回空列表，不报错。
func (e *Engine) RecommendCollaborative(userID string, n int) []string {
	m := e.als.Model()
	if m == nil || n <= 0 {
		return nil
	}
	scored := m.Recommend(userID, n)
	return scoredIDs(scored)
}

// RecommendContent 返回与指定商品内容最相似的商品 ID（不含自身）。
// 模型未就绪或商品不在语料中时返回空列表。
func (e *Engine) RecommendContent(productID string, n int) []string {
	m := e.tfidf.Model()
	if m == nil || n <= 0 {
		return nil
	}
	return scoredIDs(m.SimilarTo(productID, n))
}

// Interacted 判断用户是否与商品产生过训练期交互（用于 Feed 的已交互过滤）。
func (e *Engine) Interacted(userID, productID string) bool {
	m := e.als.Model()
	return m != nil && m.Seen(userID, productID)
}

// ScoreSentiment 对评论文本做情感打分（文本不可用时退回评分推断）。
func (e *Engine) ScoreSentiment(comment string, rating int) sentiment.Result {
	return e.analyzer.Score(comment, rating)
}

// AnalyzeReview 对一条评论记录做情感分析。
func (e *Engine) AnalyzeReview(review core.Review) sentiment.Result {
	return e.ScoreSentiment(review.Comment, review.Rating)
}

func scoredIDs(scored []model.Scored) []string {
	if len(scored) == 0 {
		return nil
	}
	ids := make([]string, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.ProductID)
	}
	return ids
}
