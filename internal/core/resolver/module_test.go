package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-srvconn/config"
)

// TestNewBackend 测试按配置选择后端
func TestNewBackend(t *testing.T) {
	t.Run("SystemCached", func(t *testing.T) {
		b, err := NewBackend(DefaultConfig())
		require.NoError(t, err)
		assert.IsType(t, &CachedBackend{}, b)
	})

	t.Run("SystemUncached", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CacheSize = 0
		b, err := NewBackend(cfg)
		require.NoError(t, err)
		assert.IsType(t, &SystemBackend{}, b)
	})

	t.Run("Wire", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CacheSize = 0
		cfg.Servers = []string{"127.0.0.1"}
		b, err := NewBackend(cfg)
		require.NoError(t, err)
		assert.IsType(t, &WireBackend{}, b)
	})

	t.Run("Invalid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Network = "sctp"
		_, err := NewBackend(cfg)
		assert.Error(t, err)
	})
}

// TestConfigFromUnified 测试统一配置转换
func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	unified := config.NewConfig()
	unified.Resolver.Timeout = config.Duration(2 * time.Second)
	unified.Resolver.Servers = []string{"10.0.0.53"}
	unified.Resolver.CacheSize = 0

	cfg := ConfigFromUnified(unified)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"10.0.0.53"}, cfg.Servers)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, 16, cfg.MaxConcurrentLookups)
}

// TestModule 测试 Fx 模块装配
func TestModule(t *testing.T) {
	unified := config.NewConfig()
	unified.Resolver.Servers = []string{"127.0.0.1:5353"}

	var res *ServiceResolver
	app := fxtest.New(t,
		fx.Supply(unified),
		Module,
		fx.Populate(&res),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, res)
	assert.IsType(t, &CachedBackend{}, res.backend)
	assert.Equal(t, 16, res.limit)
}
