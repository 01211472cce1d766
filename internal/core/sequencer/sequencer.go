package sequencer

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/dep2p/go-srvconn/internal/core/listener"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
	"github.com/dep2p/go-srvconn/pkg/types"
)

var logger = log.Logger("core/sequencer")

// errUnknownSocketError 套接字以非 error 负载报告错误
var errUnknownSocketError = errors.New("socket error")

// Sequencer 连接尝试状态机
type Sequencer struct {
	sock     pkgif.Socket
	queue    *types.CandidateQueue
	timeout  time.Duration
	observer pkgif.ConnectObserver
	clock    clock.Clock
	onDone   func(err error)
	id       string

	state    State
	snap     *listener.Snapshot
	handlers map[string]*types.Listener

	current  types.Candidate
	started  time.Time
	attempts int
	lastErr  error
	history  error
}

// New 创建 Sequencer，timeout 为单个候选的超时，0 表示不限时
func New(sock pkgif.Socket, queue *types.CandidateQueue, timeout time.Duration, opts ...Option) *Sequencer {
	s := &Sequencer{
		sock:    sock,
		queue:   queue,
		timeout: timeout,
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start 接管套接字并尝试第一个候选，重复调用无效
func (s *Sequencer) Start() {
	if s.state != StateIdle {
		return
	}

	s.snap = listener.Capture(s.sock, types.AttemptEvents...)
	s.handlers = map[string]*types.Listener{
		types.EventConnect: s.sock.On(types.EventConnect, s.onConnect),
		types.EventError:   s.sock.On(types.EventError, s.onError),
		types.EventTimeout: s.sock.On(types.EventTimeout, s.onTimeout),
	}
	s.state = StateAttempting

	logger.Debug("开始连接尝试",
		"id", log.TruncateID(s.id, 8),
		"candidates", s.queue.Len())
	s.next()
}

// Abort 中止尝试，以 err 进入失败终态
func (s *Sequencer) Abort(err error) {
	if s.state != StateAttempting {
		return
	}
	s.sock.Destroy()
	s.lastErr = err
	s.finish(err)
}

// State 返回当前状态
func (s *Sequencer) State() State {
	return s.state
}

// Attempts 返回已发起的尝试次数
func (s *Sequencer) Attempts() int {
	return s.attempts
}

// Current 返回最近一次尝试的候选
func (s *Sequencer) Current() types.Candidate {
	return s.current
}

// Err 返回最后一次失败
func (s *Sequencer) Err() error {
	return s.lastErr
}

// History 返回所有失败的聚合，元素为 *AttemptError
func (s *Sequencer) History() error {
	return s.history
}

// next 弹出下一个候选并发起连接
func (s *Sequencer) next() {
	c, ok := s.queue.Pop()
	if !ok {
		err := s.lastErr
		if err == nil {
			err = types.ErrNoCandidates
		}
		s.finish(err)
		return
	}

	s.current = c
	s.attempts++
	s.started = s.clock.Now()

	logger.Debug("尝试候选地址",
		"id", log.TruncateID(s.id, 8),
		"addr", c.HostPort(),
		"attempt", s.attempts)

	s.sock.SetTimeout(s.timeout)
	s.sock.Connect(c.Port, c.Address)
}

func (s *Sequencer) onConnect(any) {
	if s.state != StateAttempting {
		return
	}
	if s.observer != nil {
		s.observer.ObserveAttempt(s.current.HostPort(), s.clock.Since(s.started), nil)
	}
	s.finish(nil)
}

func (s *Sequencer) onError(payload any) {
	if s.state != StateAttempting {
		return
	}
	err, ok := payload.(error)
	if !ok || err == nil {
		err = errUnknownSocketError
	}
	s.fail(err)
}

func (s *Sequencer) onTimeout(any) {
	if s.state != StateAttempting {
		return
	}
	s.sock.Destroy()
	s.fail(types.ErrConnectTimeout)
}

// fail 记录当前候选的失败并继续下一个
func (s *Sequencer) fail(err error) {
	addr := s.current.HostPort()
	if s.observer != nil {
		s.observer.ObserveAttempt(addr, s.clock.Since(s.started), err)
	}
	s.lastErr = err
	s.history = multierr.Append(s.history, &AttemptError{Candidate: s.current, Err: err})

	logger.Debug("候选地址连接失败",
		"id", log.TruncateID(s.id, 8),
		"addr", addr,
		"err", err)
	s.next()
}

// finish 唯一的终态出口：撤销超时、恢复监听器后发出通知
func (s *Sequencer) finish(err error) {
	if s.state.Terminal() {
		return
	}

	// 任何终态都不能留下已武装的超时，否则恢复后的监听器会收到过期的 timeout
	s.sock.SetTimeout(0)

	for event, l := range s.handlers {
		s.sock.RemoveListener(event, l)
	}

	if err == nil {
		s.state = StateConnected
		s.snap.Restore(SuccessRestore)
	} else {
		s.state = StateExhausted
		s.snap.Restore(FailureRestore)
	}

	if s.observer != nil {
		s.observer.ObserveOutcome(err == nil, s.attempts)
	}

	if err == nil {
		logger.Debug("连接成功",
			"id", log.TruncateID(s.id, 8),
			"addr", s.current.HostPort(),
			"attempts", s.attempts)
		s.sock.Emit(types.EventConnected, nil)
	} else {
		logger.Debug("所有候选均失败",
			"id", log.TruncateID(s.id, 8),
			"attempts", s.attempts,
			"err", err)
		s.sock.Emit(types.EventConnectionFailed, err)
	}

	if s.onDone != nil {
		s.onDone(err)
	}
}
