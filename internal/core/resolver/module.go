package resolver

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-srvconn/config"
	"github.com/dep2p/go-srvconn/internal/core/srv"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// Module 解析器模块
var Module = fx.Module("core_resolver",
	fx.Provide(
		NewBackendFromParams,
		NewFromParams,
	),
)

// BackendParams DNS 后端依赖参数
type BackendParams struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Params 解析器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Backend    pkgif.DNSBackend
	Observer   pkgif.ConnectObserver `optional:"true"`
	Rand       srv.Rand              `optional:"true"`
}

// ConfigFromUnified 从统一配置创建解析器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	rc := cfg.Resolver
	return Config{
		Timeout:              rc.Timeout.Duration(),
		Servers:              append([]string(nil), rc.Servers...),
		Network:              rc.Network,
		CacheSize:            rc.CacheSize,
		CacheTTL:             rc.CacheTTL.Duration(),
		MaxConcurrentLookups: rc.MaxConcurrentLookups,
	}
}

// NewBackendFromParams 从 Fx 参数创建 DNS 后端
func NewBackendFromParams(p BackendParams) (pkgif.DNSBackend, error) {
	return NewBackend(ConfigFromUnified(p.UnifiedCfg))
}

// NewFromParams 从 Fx 参数创建解析器
func NewFromParams(p Params) *ServiceResolver {
	cfg := ConfigFromUnified(p.UnifiedCfg)

	var opts []ServiceOption
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Rand != nil {
		opts = append(opts, WithRand(p.Rand))
	}

	return NewServiceResolver(p.Backend, cfg, opts...)
}
