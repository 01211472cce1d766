package resolver

import (
	"errors"
	"time"
)

// ============================================================================
//                              配置定义
// ============================================================================

// Config 解析器配置
type Config struct {
	// Timeout 单次 DNS 查询超时
	Timeout time.Duration

	// Servers 自定义 DNS 服务器（格式: "ip:port"），为空时使用系统解析器
	Servers []string

	// Network 自定义服务器使用的传输（"udp" 或 "tcp"）
	Network string

	// CacheSize 缓存条目数，0 关闭缓存
	CacheSize int

	// CacheTTL 缓存 TTL
	CacheTTL time.Duration

	// MaxConcurrentLookups 并发解析 SRV 目标的上限，0 表示不限制
	MaxConcurrentLookups int
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Timeout:              5 * time.Second,
		Servers:              nil,
		Network:              "udp",
		CacheSize:            256,
		CacheTTL:             time.Minute,
		MaxConcurrentLookups: 16,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Network != "" && c.Network != "udp" && c.Network != "tcp" {
		return errors.New("network must be udp or tcp")
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must be non-negative")
	}
	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		return errors.New("cache TTL must be positive when cache is enabled")
	}
	if c.MaxConcurrentLookups < 0 {
		return errors.New("max concurrent lookups must be non-negative")
	}
	return nil
}
