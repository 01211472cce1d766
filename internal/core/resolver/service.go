package resolver

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-srvconn/internal/core/srv"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// ServiceResolver 把服务前缀列表与域名解析为有序候选队列
type ServiceResolver struct {
	backend  pkgif.DNSBackend
	addrs    *AddressResolver
	rng      srv.Rand
	limit    int
	observer pkgif.ConnectObserver
}

// ServiceOption ServiceResolver 选项
type ServiceOption func(*ServiceResolver)

// WithRand 指定 SRV 加权排序使用的随机源
func WithRand(rng srv.Rand) ServiceOption {
	return func(r *ServiceResolver) {
		r.rng = rng
	}
}

// WithObserver 指定指标观察者
func WithObserver(o pkgif.ConnectObserver) ServiceOption {
	return func(r *ServiceResolver) {
		r.observer = o
	}
}

// NewServiceResolver 创建服务名解析器
func NewServiceResolver(backend pkgif.DNSBackend, cfg Config, opts ...ServiceOption) *ServiceResolver {
	r := &ServiceResolver{
		backend: backend,
		addrs:   NewAddressResolver(backend, cfg.Timeout),
		rng:     srv.DefaultRand,
		limit:   cfg.MaxConcurrentLookups,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Addresses 返回内部使用的地址解析器
func (r *ServiceResolver) Addresses() *AddressResolver {
	return r.addrs
}

// Resolve 依次尝试每个服务前缀，全部失败时直接解析 domain
//
// 第一个给出可用结果的前缀决定候选队列；直接解析的地址与 defaultPort 配对。
func (r *ServiceResolver) Resolve(ctx context.Context, services []string, domain string, defaultPort uint16) (*types.CandidateQueue, error) {
	for _, name := range types.ServiceName(services).Names(domain) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := r.resolveSRV(ctx, name)
		if err != nil {
			logger.Debug("SRV 前缀无可用结果，尝试下一个",
				"name", name,
				"err", err)
			continue
		}

		logger.Debug("SRV 解析成功",
			"name", name,
			"candidates", len(candidates))
		return types.NewCandidateQueue(candidates), nil
	}

	ips, err := r.addrs.ResolveHost(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrNoAddressesResolved, domain, err)
	}

	candidates := make([]types.Candidate, 0, len(ips))
	for _, ip := range ips {
		candidates = append(candidates, types.NewCandidate(ip, defaultPort))
	}
	logger.Debug("回退到直接解析域名",
		"domain", domain,
		"port", defaultPort,
		"candidates", len(candidates))
	return types.NewCandidateQueue(candidates), nil
}

// resolveSRV 查询一个 SRV 名称并展开为候选列表
//
// 所有目标并发解析；结果按 SRV 排序后的记录顺序拼接，
// 无法解析的目标被跳过。
func (r *ServiceResolver) resolveSRV(ctx context.Context, name string) ([]types.Candidate, error) {
	records, err := r.backend.LookupSRV(ctx, name)
	if r.observer != nil {
		r.observer.ObserveSRVLookup(name, len(records), err)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: SRV %s", ErrNoRecordsFound, name)
	}

	ordered := srv.Order(records, r.rng)
	expanded := make([][]net.IP, len(ordered))
	failures := make([]error, len(ordered))

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, rec := range ordered {
		i, rec := i, rec
		g.Go(func() error {
			expanded[i], failures[i] = r.addrs.ResolveHost(ctx, rec.Target)
			return nil
		})
	}
	_ = g.Wait()

	var (
		candidates []types.Candidate
		lastErr    error
	)
	for i, rec := range ordered {
		if failures[i] != nil {
			lastErr = failures[i]
			continue
		}
		for _, ip := range expanded[i] {
			candidates = append(candidates, types.NewCandidate(ip, rec.Port))
		}
	}

	if len(candidates) == 0 {
		if lastErr == nil {
			lastErr = ErrNoAddresses
		}
		return nil, fmt.Errorf("expand SRV %s: %w", name, lastErr)
	}
	return candidates, nil
}
