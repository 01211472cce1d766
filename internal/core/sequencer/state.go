package sequencer

import (
	"fmt"

	"github.com/dep2p/go-srvconn/internal/core/listener"
)

// State Sequencer 状态
type State int

const (
	// StateIdle 尚未开始
	StateIdle State = iota
	// StateAttempting 正在尝试某个候选
	StateAttempting
	// StateConnected 已连接（终态）
	StateConnected
	// StateExhausted 候选耗尽或被中止（终态）
	StateExhausted
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttempting:
		return "attempting"
	case StateConnected:
		return "connected"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal 是否为终态
func (s State) Terminal() bool {
	return s == StateConnected || s == StateExhausted
}

// 恢复监听器的策略
const (
	// SuccessRestore 连接成功时丢弃尝试期间新挂上的监听器
	SuccessRestore = listener.DiscardExisting

	// FailureRestore 全部失败时保留尝试期间新挂上的监听器
	FailureRestore = listener.KeepExisting
)
