package interfaces

import "github.com/dep2p/go-srvconn/pkg/types"

// ════════════════════════════════════════════════════════════════════════════
// Emitter 接口
// ════════════════════════════════════════════════════════════════════════════

// Emitter 按事件名组织的监听器注册表
//
// 实现位置：internal/core/listener.Table
//
// 同一事件的监听器按注册顺序调用。Emit 在调用方所在的调度轮次内
// 同步分发。
type Emitter interface {
	// On 注册回调并返回其句柄
	On(event string, fn types.HandlerFunc) *types.Listener

	// AddListener 把已有句柄追加到事件末尾
	AddListener(event string, l *types.Listener)

	// RemoveListener 移除句柄（不存在时忽略）
	RemoveListener(event string, l *types.Listener)

	// RemoveAllListeners 移除事件的全部监听器
	RemoveAllListeners(event string)

	// Listeners 返回事件当前监听器的副本
	Listeners(event string) []*types.Listener

	// EventNames 返回当前至少有一个监听器的事件名
	EventNames() []string

	// Emit 同步触发事件
	Emit(event string, payload any)
}
