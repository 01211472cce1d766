// Package listener 实现按事件名组织的监听器注册表与快照
//
// # Table
//
// Table 是套接字的监听器表：每个事件名对应一个有序的 *types.Listener 列表。
// Emit 对列表的副本同步分发，回调中增删监听器不会影响本次分发。
//
// # Snapshot
//
// Capture 为一组事件复制当前监听器列表并全部摘下，使调用方获得
// 这些事件的独占控制权；Restore 按处置策略把它们挂回：
//
//   - DiscardExisting: 先移除当前挂着的全部监听器，再挂回快照
//   - KeepExisting:    保留当前监听器，快照追加在其后
//
// Restore 处理的事件集合 = 快照事件 ∪ 捕获后新出现监听器的事件。
// 指定了事件名的捕获只处理这些事件；未指定（捕获全部）时处理所有事件。
// Restore 只生效一次，重复调用是空操作。
//
// # RemoveListeners
//
// RemoveListeners(target, eventNames) 是独立可用的工具函数，
// eventNames 只接受 nil、string、[]string，其他类型立即返回
// ErrInvalidEventNames。
package listener
