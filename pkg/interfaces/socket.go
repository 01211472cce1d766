package interfaces

import "time"

// ════════════════════════════════════════════════════════════════════════════
// Socket 接口
// ════════════════════════════════════════════════════════════════════════════

// Socket 可重复指向不同远端的流式套接字
//
// 实现位置：internal/core/socket.TCPSocket
//
// 事件（均在 Scheduler 上分发）：
//   - "connect": 连接建立
//   - "error":   连接失败，负载为 error
//   - "timeout": 空闲超时，无负载
//
// 同一时刻只能指向一个远端；重新 Connect 会放弃上一次尝试。
type Socket interface {
	Emitter
	Scheduler

	// Connect 异步发起到 host:port 的连接
	Connect(port uint16, host string)

	// SetTimeout 设置空闲超时，0 表示关闭
	SetTimeout(d time.Duration)

	// Destroy 强制关闭当前连接或连接尝试
	Destroy()
}
