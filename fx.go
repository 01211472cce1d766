package srvconn

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-srvconn/internal/core/metrics"
	"github.com/dep2p/go-srvconn/internal/core/resolver"
	"github.com/dep2p/go-srvconn/internal/core/srv"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
	"github.com/dep2p/go-srvconn/pkg/lib/log"
)

var fxLogger = log.Logger("srvconn/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置注入
//  2. Metrics：提供 ConnectObserver（未启用时为 Nop）
//  3. Resolver：DNS 后端与服务名解析器
//  4. 用户扩展与 Connector 组件注入
func buildFxApp(o *options, c *Connector) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(o.config),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 可选依赖
	// ════════════════════════════════════════════════════════════════════════
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.rng != nil {
		rng := o.rng
		modules = append(modules, fx.Provide(func() srv.Rand { return rng }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		metrics.Module,
		resolver.Module,
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. Connector 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectConnectorComponents(c)))

	// 禁用 Fx 日志输出（避免干扰用户日志）
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	fxLogger.Debug("Fx 应用已构建",
		"metrics", o.config.Metrics.Enabled,
		"dns_servers", len(o.config.Resolver.Servers))
	return app, nil
}

// connectorInjectParams Connector 组件注入参数
type connectorInjectParams struct {
	fx.In

	Resolver *resolver.ServiceResolver
	Observer pkgif.ConnectObserver
	Backend  pkgif.DNSBackend
	LC       fx.Lifecycle
}

// injectConnectorComponents 创建 Connector 组件注入函数
func injectConnectorComponents(c *Connector) interface{} {
	return func(p connectorInjectParams) {
		c.resolver = p.Resolver
		c.observer = p.Observer
		c.backend = p.Backend

		p.LC.Append(fx.StopHook(c.markClosed))
	}
}
