package socket

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Option TCPSocket 选项
type Option func(*TCPSocket)

// WithClock 替换定时器使用的时钟（测试用）
func WithClock(c clock.Clock) Option {
	return func(s *TCPSocket) {
		s.clock = c
	}
}

// WithKeepAlive 设置 TCP keep-alive 周期
func WithKeepAlive(d time.Duration) Option {
	return func(s *TCPSocket) {
		s.dialer.KeepAlive = d
	}
}

// WithNoDelay 设置 TCP_NODELAY
func WithNoDelay(on bool) Option {
	return func(s *TCPSocket) {
		s.noDelay = on
	}
}
