// Package config 提供 go-srvconn 的统一配置
//
// 主 Config 结构体嵌入各组件子配置，每个子配置在独立文件中定义，
// 由各组件的 ConfigFromUnified 转换为组件自身的配置。
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Connect.Timeout = config.Duration(5 * time.Second)
//
//	// 从 JSON 文件加载
//	cfg, err := config.LoadFile("srvconn.json")
package config

// Config 是 go-srvconn 的完整配置结构
//
//   - Connect: 连接尝试（超时、TCP 选项）
//   - Resolver: DNS 解析（服务器、缓存、并发）
//   - Metrics: Prometheus 指标
type Config struct {
	// Connect 连接尝试配置
	Connect ConnectConfig `json:"connect"`

	// Resolver DNS 解析配置
	Resolver ResolverConfig `json:"resolver"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Connect:  DefaultConnectConfig(),
		Resolver: DefaultResolverConfig(),
		Metrics:  DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Connect.Validate(); err != nil {
		return err
	}
	if err := c.Resolver.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}
