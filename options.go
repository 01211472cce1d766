package srvconn

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-srvconn/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config     *config.Config
	registerer prometheus.Registerer
	rng        Rand

	// 用户扩展
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用完整配置，后续选项在其基础上覆盖
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.config = config.CloneConfig(cfg)
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithTimeout 设置单个候选的默认连接超时，0 表示使用内置默认值
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("timeout must be non-negative: %s", d)
		}
		o.config.Connect.Timeout = config.Duration(d)
		return nil
	}
}

// ============================================================================
//                              解析选项
// ============================================================================

// WithDNSServers 使用指定的 DNS 服务器代替系统解析器
func WithDNSServers(servers ...string) Option {
	return func(o *options) error {
		if len(servers) == 0 {
			return errors.New("at least one DNS server is required")
		}
		o.config.Resolver.Servers = append([]string(nil), servers...)
		return nil
	}
}

// WithResolverCache 设置解析缓存，size 为 0 关闭缓存
func WithResolverCache(size int, ttl time.Duration) Option {
	return func(o *options) error {
		o.config.Resolver.CacheSize = size
		o.config.Resolver.CacheTTL = config.Duration(ttl)
		return nil
	}
}

// WithRand 指定 SRV 加权排序使用的随机源
func WithRand(rng Rand) Option {
	return func(o *options) error {
		o.rng = rng
		return nil
	}
}

// ============================================================================
//                              指标选项
// ============================================================================

// WithMetrics 启用 Prometheus 指标，reg 为 nil 时使用独立 Registry
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.config.Metrics.Enabled = true
		o.registerer = reg
		return nil
	}
}

// ============================================================================
//                              扩展选项
// ============================================================================

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
