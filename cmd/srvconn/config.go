package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dep2p/go-srvconn/config"
)

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

const (
	envPrefix     = "SRVCONN_"
	envDNSServers = "DNS_SERVERS"
	envTimeout    = "TIMEOUT"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
//   - SRVCONN_DNS_SERVERS: DNS 服务器（逗号分隔）
//   - SRVCONN_TIMEOUT: 单个候选的连接超时
func applyEnvOverrides(cfg *config.Config) error {
	if v := os.Getenv(envPrefix + envDNSServers); v != "" {
		cfg.Resolver.Servers = splitAndTrim(v, ",")
	}

	if v := os.Getenv(envPrefix + envTimeout); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envTimeout, err)
		}
		cfg.Connect.Timeout = config.Duration(d)
	}
	return nil
}

// ============================================================================
//                              辅助函数
// ============================================================================

// splitAndTrim 分割字符串并去除空白
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
