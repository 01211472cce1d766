package config

import (
	"errors"
	"time"
)

// DefaultConnectTimeout 单次连接尝试的默认超时
const DefaultConnectTimeout = 10 * time.Second

// ConnectConfig 连接尝试配置
type ConnectConfig struct {
	// Timeout 单次连接尝试超时，0 表示使用默认值
	Timeout Duration `json:"timeout,omitempty"`

	// KeepAlive TCP keep-alive 周期，0 使用系统默认，负数关闭
	KeepAlive Duration `json:"keep_alive,omitempty"`

	// NoDelay 是否关闭 Nagle 算法
	NoDelay bool `json:"no_delay"`
}

// DefaultConnectConfig 返回默认连接配置
func DefaultConnectConfig() ConnectConfig {
	return ConnectConfig{
		Timeout: Duration(DefaultConnectTimeout),
		NoDelay: true,
	}
}

// Validate 验证连接配置
func (c ConnectConfig) Validate() error {
	if c.Timeout < 0 {
		return errors.New("connect timeout must be non-negative")
	}
	return nil
}

// EffectiveTimeout 返回实际使用的超时
func (c ConnectConfig) EffectiveTimeout() time.Duration {
	return c.Timeout.OrDefault(DefaultConnectTimeout)
}
