package srvconn

import (
	"errors"

	"github.com/dep2p/go-srvconn/internal/core/listener"
	"github.com/dep2p/go-srvconn/internal/core/resolver"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// Connector 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrConnectorClosed Connector 已关闭
	ErrConnectorClosed = errors.New("connector closed")

	// ────────────────────────────────────────────────────────────────────────
	// 解析与连接错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNoAddressesResolved 所有 SRV 前缀和直接解析都没有得到地址
	ErrNoAddressesResolved = resolver.ErrNoAddressesResolved

	// ErrConnectTimeout 单个候选超时
	ErrConnectTimeout = types.ErrConnectTimeout

	// ErrNoCandidates 没有任何候选可尝试
	ErrNoCandidates = types.ErrNoCandidates

	// ErrInvalidEventNames RemoveListeners 的事件名参数类型无效
	ErrInvalidEventNames = listener.ErrInvalidEventNames
)

// HostError 主机解析失败
type HostError = resolver.HostError
