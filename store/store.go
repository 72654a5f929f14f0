package store

import "github.com/bincshop/shoprec/core"

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 和 core.KeyValueStore 接口。
//
// 示例：
//   var store core.Store = NewMemoryStore()
//   var kvStore core.KeyValueStore = NewMemoryStore()

// Store 与 KeyValueStore 是 core 接口的别名，便于本包内实现引用。
type Store = core.Store
type KeyValueStore = core.KeyValueStore

// ErrNotFound 表示 key 不存在。
var ErrNotFound = core.ErrStoreNotFound
