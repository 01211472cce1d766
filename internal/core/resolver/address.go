package resolver

import (
	"context"
	"net"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
)

var logger = log.Logger("core/resolver")

// families 并发查询的地址族
var families = []string{"ip4", "ip6"}

// AddressResolver 把一个主机名解析为 IP 列表
type AddressResolver struct {
	backend pkgif.DNSBackend
	timeout time.Duration
}

// NewAddressResolver 创建地址解析器，timeout 为 0 时不额外限时
func NewAddressResolver(backend pkgif.DNSBackend, timeout time.Duration) *AddressResolver {
	return &AddressResolver{backend: backend, timeout: timeout}
}

// familyResult 单个地址族的查询结果
type familyResult struct {
	network string
	ips     []net.IP
	err     error
}

// ResolveHost 并发查询 ip4 与 ip6，等待两者都完成
//
// 只要有一个地址族返回了地址即成功；地址按到达顺序聚合。
// host 本身是 IP 字面量时直接返回。
func (r *AddressResolver) ResolveHost(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// 缓冲足够大，发送顺序即到达顺序
	arrivals := make(chan familyResult, len(families))
	// 单个地址族失败不影响另一个；只有外层 ctx 结束才让整组提前返回
	g, gctx := errgroup.WithContext(ctx)
	for _, network := range families {
		network := network
		g.Go(func() error {
			ips, err := r.backend.LookupIP(gctx, network, host)
			arrivals <- familyResult{network: network, ips: ips, err: err}
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	canceled := g.Wait()
	close(arrivals)

	var (
		ips     []net.IP
		lastErr error
		all     error
	)
	for res := range arrivals {
		if res.err != nil {
			lastErr = res.err
			all = multierr.Append(all, res.err)
			logger.Debug("地址族查询失败",
				"host", host,
				"network", res.network,
				"err", res.err)
			continue
		}
		ips = append(ips, res.ips...)
	}

	if len(ips) > 0 {
		return ips, nil
	}
	if canceled != nil {
		lastErr = canceled
	} else if lastErr == nil {
		lastErr = ErrNoAddresses
	}
	return nil, &HostError{Host: host, Err: lastErr, All: all}
}
