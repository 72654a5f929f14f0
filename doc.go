// Package shoprec 是电商场景的混合推荐引擎。
//
// 设计要点：
// - 双模型混合: 隐式反馈 ALS 协同过滤 + TF-IDF 内容相似，按配额融合
// - Pipeline-first: 召回 → 过滤 → 重排通过 Node 串联，可配置可插拔
// - Labels-first: rec_type / recall_source 等标签全链路透传，支持 explain 与策略驱动
// - 生命周期显式: 模型 未加载/未训练/已加载/已训练 四态，训练原子换入、产物落盘可恢复
package shoprec

import "github.com/bincshop/shoprec/pipeline"

// 轻量 facade：便于直接 import "shoprec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
