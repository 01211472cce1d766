package types

// ============================================================================
//                              Listener
// ============================================================================

// HandlerFunc 事件回调，payload 可能为 nil
type HandlerFunc func(payload any)

// Listener 已注册的事件回调
//
// 以指针作为身份：同一个 *Listener 可以被摘下再挂回，
// 比较两个 *Listener 是否相等即可判断是否为同一回调。
type Listener struct {
	fn HandlerFunc
}

// NewListener 包装回调
func NewListener(fn HandlerFunc) *Listener {
	return &Listener{fn: fn}
}

// Call 调用回调
func (l *Listener) Call(payload any) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(payload)
}
