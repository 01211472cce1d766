package mocks

import (
	"sync"
	"time"

	"github.com/dep2p/go-srvconn/pkg/interfaces"
)

var _ interfaces.ConnectObserver = (*MockObserver)(nil)

// AttemptCall 记录 ObserveAttempt 调用
type AttemptCall struct {
	Addr     string
	Duration time.Duration
	Err      error
}

// OutcomeCall 记录 ObserveOutcome 调用
type OutcomeCall struct {
	Connected bool
	Attempts  int
}

// MockObserver 模拟 ConnectObserver 接口实现
type MockObserver struct {
	mu sync.Mutex

	SRVLookups []string
	Attempts   []AttemptCall
	Outcomes   []OutcomeCall
}

// ObserveSRVLookup 记录 SRV 查询
func (m *MockObserver) ObserveSRVLookup(name string, _ int, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SRVLookups = append(m.SRVLookups, name)
}

// ObserveAttempt 记录连接尝试
func (m *MockObserver) ObserveAttempt(addr string, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts = append(m.Attempts, AttemptCall{Addr: addr, Duration: d, Err: err})
}

// ObserveOutcome 记录终态
func (m *MockObserver) ObserveOutcome(connected bool, attempts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes = append(m.Outcomes, OutcomeCall{Connected: connected, Attempts: attempts})
}

// SRVLookupCalls 返回 SRV 查询记录的副本
func (m *MockObserver) SRVLookupCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SRVLookups...)
}

// AttemptCalls 返回连接尝试记录的副本
func (m *MockObserver) AttemptCalls() []AttemptCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AttemptCall(nil), m.Attempts...)
}

// OutcomeCalls 返回终态记录的副本
func (m *MockObserver) OutcomeCalls() []OutcomeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]OutcomeCall(nil), m.Outcomes...)
}
