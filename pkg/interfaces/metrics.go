package interfaces

import "time"

// ConnectObserver 连接过程观察者
//
// 实现位置：internal/core/metrics。所有方法必须是非阻塞的。
type ConnectObserver interface {
	// ObserveSRVLookup 记录一次 SRV 查询结果
	ObserveSRVLookup(name string, records int, err error)

	// ObserveAttempt 记录一次候选连接尝试
	ObserveAttempt(addr string, d time.Duration, err error)

	// ObserveOutcome 记录一次 Connect 的终态
	ObserveOutcome(connected bool, attempts int)
}
