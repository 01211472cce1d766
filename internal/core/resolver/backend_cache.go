package resolver

import (
	"context"
	"net"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/types"
)

// 确保实现接口
var _ pkgif.DNSBackend = (*CachedBackend)(nil)

// cacheEntry 缓存条目，只缓存成功结果
type cacheEntry struct {
	records []types.SrvRecord
	ips     []net.IP
}

// CachedBackend 为任意 DNSBackend 增加 TTL 缓存
type CachedBackend struct {
	inner pkgif.DNSBackend
	cache *expirable.LRU[string, cacheEntry]
}

// NewCachedBackend 创建缓存装饰器
func NewCachedBackend(inner pkgif.DNSBackend, size int, ttl time.Duration) *CachedBackend {
	return &CachedBackend{
		inner: inner,
		cache: expirable.NewLRU[string, cacheEntry](size, nil, ttl),
	}
}

// LookupSRV 查询 SRV 记录（带缓存）
func (b *CachedBackend) LookupSRV(ctx context.Context, name string) ([]types.SrvRecord, error) {
	key := "srv|" + name
	if e, ok := b.cache.Get(key); ok {
		return slices.Clone(e.records), nil
	}

	records, err := b.inner.LookupSRV(ctx, name)
	if err != nil {
		return nil, err
	}
	b.cache.Add(key, cacheEntry{records: slices.Clone(records)})
	return records, nil
}

// LookupIP 查询地址（带缓存）
func (b *CachedBackend) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	key := network + "|" + host
	if e, ok := b.cache.Get(key); ok {
		return slices.Clone(e.ips), nil
	}

	ips, err := b.inner.LookupIP(ctx, network, host)
	if err != nil {
		return nil, err
	}
	b.cache.Add(key, cacheEntry{ips: slices.Clone(ips)})
	return ips, nil
}

// Len 返回缓存条目数
func (b *CachedBackend) Len() int {
	return b.cache.Len()
}

// Purge 清除缓存
func (b *CachedBackend) Purge() {
	b.cache.Purge()
}
