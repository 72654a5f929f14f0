package service

import (
	"sync"
	"sync/atomic"
)

// State 是模型生命周期的显式状态（取代"属性存在性"式的隐式判断）。
//
// 状态机：
//
//	Unloaded ──加载成功──► Loaded ──┐
//	    │                           ├──训练成功──► Trained
//	    └──无持久化产物──► Untrained ┘
//
// 训练失败不改变状态；重训只能由调用方显式触发（检测到模型缺失时），
// 没有后台定时重训。
type State int32

const (
	StateUnloaded  State = iota // 进程启动、尚未尝试加载
	StateUntrained              // 无持久化产物，等待首次训练
	StateLoaded                 // 从持久化产物加载
	StateTrained                // 本进程内训练完成
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateUntrained:
		return "untrained"
	case StateLoaded:
		return "loaded"
	case StateTrained:
		return "trained"
	}
	return "unknown"
}

// holder 持有单个模型的共享状态，承担两条并发约束：
//
//  1. 训练互斥：同一模型同时只允许一个训练在跑，第二个请求直接跳过
//     （TryLock 失败即返回，不排队阻塞调用方）。
//  2. 读一致：查询方通过原子指针读取完整模型快照，训练完成后
//     一次指针替换上线新模型，不存在"半新半旧"的中间态。
type holder[M any] struct {
	name string

	trainMu sync.Mutex
	state   atomic.Int32
	model   atomic.Pointer[M]

	saveMu      sync.Mutex
	lastSaveErr error
}

func newHolder[M any](name string) *holder[M] {
	return &holder[M]{name: name}
}

// Model 返回当前模型快照；未训练/未加载时为 nil。
func (h *holder[M]) Model() *M {
	return h.model.Load()
}

// State 返回当前生命周期状态。
func (h *holder[M]) State() State {
	return State(h.state.Load())
}

// MarkUntrained 标记为等待首次训练（加载失败或无产物时）。
func (h *holder[M]) MarkUntrained() {
	h.state.Store(int32(StateUntrained))
}

// Install 原子上线一个完整模型并迁移状态。
func (h *holder[M]) Install(m *M, s State) {
	h.model.Store(m)
	h.state.Store(int32(s))
}

// TryBeginTrain 尝试获取训练权。已有训练在跑时返回 false（跳过，不排队）。
func (h *holder[M]) TryBeginTrain() bool {
	return h.trainMu.TryLock()
}

// EndTrain 释放训练权。
func (h *holder[M]) EndTrain() {
	h.trainMu.Unlock()
}

// SetSaveErr 记录最近一次持久化结果。
// 落盘失败不影响内存中的训练结果，但要让调用方可见。
func (h *holder[M]) SetSaveErr(err error) {
	h.saveMu.Lock()
	h.lastSaveErr = err
	h.saveMu.Unlock()
}

// LastSaveErr 返回最近一次持久化的错误（nil 表示成功或尚未持久化）。
func (h *holder[M]) LastSaveErr() error {
	h.saveMu.Lock()
	defer h.saveMu.Unlock()
	return h.lastSaveErr
}
