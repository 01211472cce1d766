package types

// ============================================================================
//                              套接字事件
// ============================================================================

// EventName 套接字上的事件名
type EventName = string

const (
	// EventConnect 底层连接建立（无负载）
	EventConnect EventName = "connect"

	// EventError 底层连接错误（负载为 error）
	EventError EventName = "error"

	// EventTimeout 空闲超时（无负载）
	EventTimeout EventName = "timeout"

	// EventConnected 终态通知：某个候选连接成功（无负载）
	EventConnected EventName = "connected"

	// EventConnectionFailed 终态通知：所有路径均失败（负载为 error）
	EventConnectionFailed EventName = "connection failed"
)

// AttemptEvents 连接尝试期间 Sequencer 独占的事件集合
var AttemptEvents = []EventName{EventConnect, EventError, EventTimeout}
