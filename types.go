package srvconn

import (
	"github.com/dep2p/go-srvconn/internal/core/listener"
	"github.com/dep2p/go-srvconn/internal/core/srv"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Socket Connect 驱动的套接字
type Socket = pkgif.Socket

// Emitter 按事件名组织的监听器注册表
type Emitter = pkgif.Emitter

// Listener 已注册的事件回调，以指针作为身份
type Listener = types.Listener

// Candidate 一个可尝试连接的 (地址, 端口) 对
type Candidate = types.Candidate

// SrvRecord 一条 SRV 记录
type SrvRecord = types.SrvRecord

// Outcome 一次 Connect 的终态
type Outcome = types.Outcome

// Rand SRV 加权排序使用的随机源，*rand.Rand 满足此接口
type Rand = srv.Rand

// Disposition 恢复监听器时如何处理当前挂着的监听器
type Disposition = listener.Disposition

// RestoreFunc 恢复被摘下的监听器
type RestoreFunc = listener.RestoreFunc

const (
	// DiscardExisting 移除当前监听器后挂回
	DiscardExisting = listener.DiscardExisting

	// KeepExisting 保留当前监听器，原有监听器追加在其后
	KeepExisting = listener.KeepExisting
)

const (
	OutcomePending   = types.OutcomePending
	OutcomeConnected = types.OutcomeConnected
	OutcomeFailed    = types.OutcomeFailed
)

// 套接字事件
const (
	EventConnect          = types.EventConnect
	EventError            = types.EventError
	EventTimeout          = types.EventTimeout
	EventConnected        = types.EventConnected
	EventConnectionFailed = types.EventConnectionFailed
)

// RemoveListeners 摘下 target 上的监听器并返回恢复函数
//
// eventNames 可以是 nil（全部事件）、string 或 []string，
// 其他类型立即返回 ErrInvalidEventNames。
func RemoveListeners(target Emitter, eventNames any) (RestoreFunc, error) {
	return listener.RemoveListeners(target, eventNames)
}

// OrderSRV 按 RFC 2782 的优先级与权重排序 SRV 记录
func OrderSRV(records []SrvRecord, rng Rand) []SrvRecord {
	if rng == nil {
		rng = srv.DefaultRand
	}
	return srv.Order(records, rng)
}
