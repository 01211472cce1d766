package sequencer

import (
	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// Option Sequencer 选项
type Option func(*Sequencer)

// WithObserver 设置指标观察者
func WithObserver(o pkgif.ConnectObserver) Option {
	return func(s *Sequencer) {
		s.observer = o
	}
}

// WithClock 设置用于统计尝试耗时的时钟
func WithClock(c clock.Clock) Option {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// WithDone 设置终态回调，在终态通知发出之后调用，err 为 nil 表示已连接
func WithDone(fn func(err error)) Option {
	return func(s *Sequencer) {
		s.onDone = fn
	}
}

// WithID 设置日志中使用的关联 ID
func WithID(id string) Option {
	return func(s *Sequencer) {
		s.id = id
	}
}
