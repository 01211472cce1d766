package resolver

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrNoRecordsFound 名称存在但没有所需类型的记录，或名称不存在
	ErrNoRecordsFound = errors.New("resolver: no DNS records found")

	// ErrNoAddresses 两个地址族都没有返回地址
	ErrNoAddresses = errors.New("resolver: no addresses")

	// ErrNoAddressesResolved 所有路径（SRV 前缀与直接解析）均未得到地址
	ErrNoAddressesResolved = errors.New("resolver: no addresses resolved")

	// ErrNoServers WireBackend 没有配置 DNS 服务器
	ErrNoServers = errors.New("resolver: no DNS servers configured")

	// ErrUnsupportedNetwork 不支持的地址族
	ErrUnsupportedNetwork = errors.New("resolver: network must be ip4 or ip6")
)

// HostError 主机解析失败
//
// Err 为最后一次观察到的失败，All 聚合了所有地址族的失败。
type HostError struct {
	Host string
	Err  error
	All  error
}

// Error 实现 error
func (e *HostError) Error() string {
	return fmt.Sprintf("resolve host %s: %v", e.Host, e.Err)
}

// Unwrap 返回最后一次失败
func (e *HostError) Unwrap() error {
	return e.Err
}
