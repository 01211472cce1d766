// Package loop 提供单协程协作式调度器
//
// 所有通过 Post 提交的任务在同一个协程中按提交顺序依次执行，
// 任务之间没有并行。套接字事件、连接状态机的每一步都在这里运行，
// 因此它们观察到的通知严格按因果顺序到达。
package loop

import (
	"errors"
	"fmt"
	"sync"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
)

var logger = log.Logger("core/loop")

// ErrClosed 调度器已关闭
var ErrClosed = errors.New("loop: closed")

// 确保实现接口
var _ pkgif.Scheduler = (*Loop)(nil)

// Loop 协作式调度器
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	done chan struct{}
}

// New 创建并启动调度器
func New() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Post 提交任务，在当前执行轮次结束之后运行
//
// 关闭后提交的任务被丢弃。
func (l *Loop) Post(fn func()) {
	if err := l.post(fn); err != nil {
		logger.Debug("调度器已关闭，丢弃任务")
	}
}

func (l *Loop) post(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do 提交任务并等待其执行完毕
//
// 不能在调度器协程内调用，否则会死锁。
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if err := l.post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Close 停止调度器，已排队但未执行的任务被丢弃
func (l *Loop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	dropped := len(l.queue)
	l.queue = nil
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done

	if dropped > 0 {
		logger.Debug("调度器关闭", "dropped", dropped)
	}
	return nil
}

func (l *Loop) run() {
	defer close(l.done)
	for range l.wake {
		for {
			fn, ok, closed := l.next()
			if closed {
				return
			}
			if !ok {
				break
			}
			l.exec(fn)
		}
	}
}

func (l *Loop) next() (fn func(), ok bool, closed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, false, true
	}
	if len(l.queue) == 0 {
		return nil, false, false
	}
	fn = l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true, false
}

// exec 执行单个任务，任务 panic 不会终止调度器
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("任务 panic", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
