package resolver

import (
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// NewBackend 按配置组装 DNSBackend
//
//   - Servers 为空：SystemBackend
//   - Servers 非空：WireBackend
//   - CacheSize > 0：外层包装 CachedBackend
func NewBackend(cfg Config) (pkgif.DNSBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var backend pkgif.DNSBackend
	if len(cfg.Servers) > 0 {
		wire, err := NewWireBackend(cfg.Servers, cfg.Network, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		backend = wire
	} else {
		backend = NewSystemBackend(nil)
	}

	if cfg.CacheSize > 0 {
		backend = NewCachedBackend(backend, cfg.CacheSize, cfg.CacheTTL)
	}
	return backend, nil
}
