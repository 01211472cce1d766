package mocks

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

var _ interfaces.DNSBackend = (*MockDNSBackend)(nil)

// ErrNotFound 未配置的名称
var ErrNotFound = errors.New("mock: name not found")

// MockDNSBackend 模拟 DNSBackend 接口实现
type MockDNSBackend struct {
	mu sync.Mutex

	// SRV 名称到记录
	SRV map[string][]types.SrvRecord

	// IPs "network|host" 到地址
	IPs map[string][]net.IP

	// 预设错误，优先于记录
	SRVErrors map[string]error
	IPErrors  map[string]error

	// Delay 每次 LookupIP 的延迟，ctx 结束时提前返回
	Delay time.Duration

	// 可覆盖的方法
	LookupSRVFunc func(ctx context.Context, name string) ([]types.SrvRecord, error)
	LookupIPFunc  func(ctx context.Context, network, host string) ([]net.IP, error)

	// 调用记录
	SRVCalls []string
	IPCalls  []string

	inflight    map[string]int
	maxInflight map[string]int
}

// NewMockDNSBackend 创建空的 MockDNSBackend
func NewMockDNSBackend() *MockDNSBackend {
	return &MockDNSBackend{
		SRV:       make(map[string][]types.SrvRecord),
		IPs:       make(map[string][]net.IP),
		SRVErrors: make(map[string]error),
		IPErrors:  make(map[string]error),
	}
}

// AddSRV 添加 SRV 记录
func (m *MockDNSBackend) AddSRV(name string, records ...types.SrvRecord) *MockDNSBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SRV[name] = append(m.SRV[name], records...)
	return m
}

// AddIP 添加地址，network 为 ip4 或 ip6
func (m *MockDNSBackend) AddIP(network, host string, ips ...string) *MockDNSBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := network + "|" + host
	for _, s := range ips {
		m.IPs[key] = append(m.IPs[key], net.ParseIP(s))
	}
	return m
}

// LookupSRV 查询 SRV 记录
func (m *MockDNSBackend) LookupSRV(ctx context.Context, name string) ([]types.SrvRecord, error) {
	m.mu.Lock()
	m.SRVCalls = append(m.SRVCalls, name)
	fn := m.LookupSRVFunc
	records, ok := m.SRV[name]
	err := m.SRVErrors[name]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return append([]types.SrvRecord(nil), records...), nil
}

// LookupIP 查询地址
func (m *MockDNSBackend) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	key := network + "|" + host
	m.mu.Lock()
	m.IPCalls = append(m.IPCalls, key)
	fn := m.LookupIPFunc
	ips, ok := m.IPs[key]
	err := m.IPErrors[key]
	delay := m.Delay
	m.enter(network)
	m.mu.Unlock()
	defer m.leave(network)

	if fn != nil {
		return fn(ctx, network, host)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return append([]net.IP(nil), ips...), nil
}

// Calls 返回全部调用记录的副本
func (m *MockDNSBackend) Calls() (srv, ip []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SRVCalls...), append([]string(nil), m.IPCalls...)
}

// CallCount 返回指定调用的次数，SRV 调用为名称，IP 调用为 "network|host"
func (m *MockDNSBackend) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.SRVCalls {
		if c == call {
			n++
		}
	}
	for _, c := range m.IPCalls {
		if c == call {
			n++
		}
	}
	return n
}

// MaxInFlight 返回某个地址族同时进行中的 LookupIP 峰值
func (m *MockDNSBackend) MaxInFlight(network string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInflight[network]
}

// enter 调用方持有 mu
func (m *MockDNSBackend) enter(network string) {
	if m.inflight == nil {
		m.inflight = make(map[string]int)
		m.maxInflight = make(map[string]int)
	}
	m.inflight[network]++
	if m.inflight[network] > m.maxInflight[network] {
		m.maxInflight[network] = m.inflight[network]
	}
}

func (m *MockDNSBackend) leave(network string) {
	m.mu.Lock()
	m.inflight[network]--
	m.mu.Unlock()
}
