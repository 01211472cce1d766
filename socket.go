package srvconn

import (
	"github.com/dep2p/go-srvconn/internal/core/loop"
	"github.com/dep2p/go-srvconn/internal/core/socket"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// ════════════════════════════════════════════════════════════════════════════
//                              调度器与套接字
// ════════════════════════════════════════════════════════════════════════════

// Scheduler 协作式调度器
type Scheduler = pkgif.Scheduler

// Loop 单 goroutine 调度器，实现 Scheduler
type Loop = loop.Loop

// TCPSocket 基于 net.Dialer 的事件驱动套接字，实现 Socket
type TCPSocket = socket.TCPSocket

// NewLoop 创建并启动调度器，用完需 Close
func NewLoop() *Loop {
	return loop.New()
}

// NewSocket 在 sched 上创建 TCPSocket，KeepAlive 与 NoDelay 取自 Connector 配置
func (c *Connector) NewSocket(sched Scheduler) *TCPSocket {
	return socket.New(sched,
		socket.WithKeepAlive(c.cfg.Connect.KeepAlive.Duration()),
		socket.WithNoDelay(c.cfg.Connect.NoDelay),
	)
}
