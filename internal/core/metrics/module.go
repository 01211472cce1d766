package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-srvconn/config"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// Module 指标模块
var Module = fx.Module("core_metrics",
	fx.Provide(
		NewFromParams,
	),
)

// Params 指标依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Result 指标导出结果
type Result struct {
	fx.Out

	Observer pkgif.ConnectObserver
}

// NewFromParams 从 Fx 参数创建观察者，未启用指标时返回 Nop
func NewFromParams(p Params) Result {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		return Result{Observer: Nop{}}
	}
	return Result{Observer: NewCollector(cfg.Namespace, p.Registerer)}
}
