package socket

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-srvconn/internal/core/listener"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
	"github.com/dep2p/go-srvconn/pkg/types"
)

var logger = log.Logger("core/socket")

// 确保实现接口
var _ pkgif.Socket = (*TCPSocket)(nil)

// TCPSocket 事件驱动的 TCP 套接字
type TCPSocket struct {
	*listener.Table

	sched   pkgif.Scheduler
	clock   clock.Clock
	dialer  net.Dialer
	noDelay bool

	mu         sync.Mutex
	gen        uint64 // 拨号代数
	cancelDial context.CancelFunc
	conn       net.Conn
	remote     string

	timerGen uint64
	timer    *clock.Timer
	timeout  time.Duration
}

// New 创建套接字，所有事件在 sched 上分发
func New(sched pkgif.Scheduler, opts ...Option) *TCPSocket {
	s := &TCPSocket{
		Table:   listener.NewTable(),
		sched:   sched,
		clock:   clock.New(),
		noDelay: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post 在套接字所属调度器上提交任务
func (s *TCPSocket) Post(fn func()) {
	s.sched.Post(fn)
}

// Connect 异步发起到 host:port 的连接
//
// 会放弃上一次尚未完成的拨号并关闭已有连接。
func (s *TCPSocket) Connect(port uint16, host string) {
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	s.mu.Lock()
	s.abandonLocked()
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelDial = cancel
	s.remote = addr
	s.resetTimerLocked()
	s.mu.Unlock()

	logger.Debug("发起连接", "addr", addr)

	go func() {
		conn, err := s.dialer.DialContext(ctx, "tcp", addr)
		s.sched.Post(func() { s.finishDial(gen, addr, conn, err) })
	}()
}

// finishDial 在调度器上处理拨号结果
func (s *TCPSocket) finishDial(gen uint64, addr string, conn net.Conn, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		logger.Debug("丢弃过期的拨号结果", "addr", addr)
		return
	}
	s.cancelDial = nil
	if err == nil {
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(s.noDelay)
		}
		s.conn = conn
	}
	s.mu.Unlock()

	if err != nil {
		s.Emit(types.EventError, err)
		return
	}
	s.Emit(types.EventConnect, nil)
}

// SetTimeout 设置空闲超时，0 表示关闭
//
// 超时从调用时刻以及之后每次 Connect 开始计时。
func (s *TCPSocket) SetTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = d
	s.resetTimerLocked()
}

// resetTimerLocked 重新计时，旧定时器的触发将被忽略
func (s *TCPSocket) resetTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
	if s.timeout <= 0 {
		return
	}

	gen := s.timerGen
	s.timer = s.clock.AfterFunc(s.timeout, func() {
		s.sched.Post(func() { s.fireTimeout(gen) })
	})
}

func (s *TCPSocket) fireTimeout(gen uint64) {
	s.mu.Lock()
	current := gen == s.timerGen
	if current {
		s.timer = nil
	}
	s.mu.Unlock()

	if current {
		s.Emit(types.EventTimeout, nil)
	}
}

// Destroy 强制关闭当前连接或连接尝试
func (s *TCPSocket) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abandonLocked()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

// abandonLocked 取消进行中的拨号并关闭已有连接
func (s *TCPSocket) abandonLocked() {
	if s.cancelDial != nil {
		s.cancelDial()
		s.cancelDial = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// Conn 返回已建立的连接
func (s *TCPSocket) Conn() (net.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, ErrNotConnected
	}
	return s.conn, nil
}

// RemoteAddr 返回最近一次 Connect 的目标
func (s *TCPSocket) RemoteAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}
