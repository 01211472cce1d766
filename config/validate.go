package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置，允许 nil 检查
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并修复可自动修复的问题
//
//   - 负超时 -> 默认值
//   - 启用缓存但 TTL 为零 -> 默认 TTL
//   - 指标启用但缺少前缀 -> 默认前缀
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Connect.Timeout < 0 {
		c.Connect.Timeout = Duration(DefaultConnectTimeout)
	}
	if c.Resolver.Timeout <= 0 {
		c.Resolver.Timeout = DefaultResolverConfig().Timeout
	}
	if c.Resolver.CacheSize > 0 && c.Resolver.CacheTTL <= 0 {
		c.Resolver.CacheTTL = DefaultResolverConfig().CacheTTL
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsConfig().Namespace
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
}
