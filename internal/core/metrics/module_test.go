package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-srvconn/config"
	pkgif "github.com/dep2p/go-srvconn/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试模块加载（未提供配置时指标关闭）
func TestModule_Load(t *testing.T) {
	var obs pkgif.ConnectObserver

	app := fxtest.New(t,
		Module,
		fx.Populate(&obs),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, obs)
	assert.IsType(t, Nop{}, obs)
}

// TestModule_Disabled 测试配置显式关闭指标
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var obs pkgif.ConnectObserver
	app := fxtest.New(t,
		fx.Supply(cfg),
		Module,
		fx.Populate(&obs),
	)
	defer app.RequireStart().RequireStop()

	assert.IsType(t, Nop{}, obs)
}

// TestModule_Provides 测试启用指标时提供 Collector 并注册到外部 Registry
func TestModule_Provides(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "fxtest"
	reg := prometheus.NewRegistry()

	var obs pkgif.ConnectObserver
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Populate(&obs),
	)
	defer app.RequireStart().RequireStop()

	c, ok := obs.(*Collector)
	require.True(t, ok, "observer type %T", obs)

	c.ObserveOutcome(true, 2)

	n, err := testutil.GatherAndCount(reg, "fxtest_connects_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
