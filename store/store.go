// Package store 提供 core.Store 的实现，目前用作地理编码结果的缓存后端。
//
// 接口定义在 core 包：
//
//	var cache core.Store = store.NewMemoryStore()
package store
