package resolver

import (
	"context"
	"errors"
	"net"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 确保实现接口
var _ pkgif.DNSBackend = (*SystemBackend)(nil)

// SystemBackend 基于平台解析器的 DNSBackend
type SystemBackend struct {
	resolver *net.Resolver
}

// NewSystemBackend 创建系统解析器后端，r 为 nil 时使用 net.DefaultResolver
func NewSystemBackend(r *net.Resolver) *SystemBackend {
	if r == nil {
		r = net.DefaultResolver
	}
	return &SystemBackend{resolver: r}
}

// LookupSRV 查询 SRV 记录
func (b *SystemBackend) LookupSRV(ctx context.Context, name string) ([]types.SrvRecord, error) {
	_, srvs, err := b.resolver.LookupSRV(ctx, "", "", name)
	if err != nil {
		return nil, normalizeNotFound(err)
	}

	records := make([]types.SrvRecord, 0, len(srvs))
	for _, srv := range srvs {
		records = append(records, types.SrvRecordFromNet(srv))
	}
	return records, nil
}

// LookupIP 查询单一地址族
func (b *SystemBackend) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	if network != "ip4" && network != "ip6" {
		return nil, ErrUnsupportedNetwork
	}
	ips, err := b.resolver.LookupIP(ctx, network, host)
	if err != nil {
		return nil, normalizeNotFound(err)
	}
	return ips, nil
}

// normalizeNotFound 把 "no such host" 统一为 ErrNoRecordsFound
func normalizeNotFound(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return errors.Join(ErrNoRecordsFound, err)
	}
	return err
}
