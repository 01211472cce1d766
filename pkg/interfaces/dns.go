package interfaces

import (
	"context"
	"net"

	"github.com/dep2p/go-srvconn/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
// DNSBackend 接口
// ════════════════════════════════════════════════════════════════════════════

// DNSBackend 底层 DNS 查询能力
//
// 实现位置：internal/core/resolver（SystemBackend / WireBackend / CachedBackend）
//
// 查询本身被视为正确的外部协作者，本系统只负责编排。
type DNSBackend interface {
	// LookupSRV 查询 name 的 SRV 记录
	//
	// name 为完整查询名（例如 "_xmpp-client._tcp.example.com"），
	// 返回顺序不作保证。
	LookupSRV(ctx context.Context, name string) ([]types.SrvRecord, error)

	// LookupIP 查询单一地址族
	//
	// network 为 "ip4" 或 "ip6"。
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}
