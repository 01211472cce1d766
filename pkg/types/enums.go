package types

// ============================================================================
//                              Outcome - 终态结果
// ============================================================================

// Outcome 一次 Connect 的终态
type Outcome int

const (
	// OutcomePending 尚未结束
	OutcomePending Outcome = iota
	// OutcomeConnected 已连接
	OutcomeConnected
	// OutcomeFailed 全部失败
	OutcomeFailed
)

// String 返回结果的字符串表示
func (o Outcome) String() string {
	switch o {
	case OutcomeConnected:
		return "connected"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}
