package config

import (
	"errors"
	"net"
	"time"
)

// ResolverConfig DNS 解析配置
type ResolverConfig struct {
	// Timeout 单次查询超时
	Timeout Duration `json:"timeout,omitempty"`

	// Servers 自定义 DNS 服务器（"ip" 或 "ip:port"），为空时使用系统解析器
	Servers []string `json:"servers,omitempty"`

	// Network 自定义服务器的传输协议（udp/tcp）
	Network string `json:"network,omitempty"`

	// CacheSize 缓存条目数，0 关闭缓存
	CacheSize int `json:"cache_size"`

	// CacheTTL 缓存有效期
	CacheTTL Duration `json:"cache_ttl,omitempty"`

	// MaxConcurrentLookups 并发解析 SRV 目标的上限
	MaxConcurrentLookups int `json:"max_concurrent_lookups,omitempty"`
}

// DefaultResolverConfig 返回默认解析配置
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Timeout:              Duration(5 * time.Second),
		Network:              "udp",
		CacheSize:            256,
		CacheTTL:             Duration(time.Minute),
		MaxConcurrentLookups: 16,
	}
}

// Validate 验证解析配置
func (c ResolverConfig) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("resolver timeout must be positive")
	}
	switch c.Network {
	case "", "udp", "tcp":
	default:
		return errors.New("resolver network must be udp or tcp")
	}
	for _, s := range c.Servers {
		host := s
		if h, _, err := net.SplitHostPort(s); err == nil {
			host = h
		}
		if net.ParseIP(host) == nil {
			return errors.New("resolver server must be an IP address: " + s)
		}
	}
	if c.CacheSize < 0 {
		return errors.New("resolver cache size must be non-negative")
	}
	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		return errors.New("resolver cache TTL must be positive when cache is enabled")
	}
	if c.MaxConcurrentLookups < 0 {
		return errors.New("max concurrent lookups must be non-negative")
	}
	return nil
}
