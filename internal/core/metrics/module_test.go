package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-addrbook/config"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 未提供注册器时只提供实例
func TestModule_Load(t *testing.T) {
	var m *PeerMetrics

	app := fxtest.New(t,
		Module(),
		fx.Populate(&m),
	)
	defer app.RequireStart().RequireStop()

	require.NotNil(t, m)
	m.Connections.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Connections))
}

// TestModule_RegistersOnStart 启动时注册，停止时注销
func TestModule_RegistersOnStart(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := config.NewConfig()
	cfg.Metrics.Namespace = "test"

	app := fxtest.New(t,
		Module(),
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
	)

	app.RequireStart()
	n, err := testutil.GatherAndCount(reg, "test_peers_listeners")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	app.RequireStop()
	n, err = testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// TestModule_Disabled 禁用时不注册
func TestModule_Disabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	app := fxtest.New(t,
		Module(),
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
	)
	defer app.RequireStart().RequireStop()

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Metrics.Namespace = "ns"
	got := ConfigFromUnified(cfg)
	assert.True(t, got.Enabled)
	assert.Equal(t, "ns", got.Namespace)
}
