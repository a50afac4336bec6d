package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-addrbook/config"
	"github.com/dep2p/go-addrbook/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// Config 指标配置
type Config struct {
	// Enabled 是否向注册器注册指标
	Enabled bool

	// Namespace 指标命名空间，可以为空
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled: true,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// ============================================================================
// Fx 模块
// ============================================================================

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvidePeerMetrics),
		fx.Invoke(registerLifecycle),
	)
}

// ProvidePeerMetrics 从参数创建 PeerMetrics
//
// 即使禁用注册也会返回可用的实例，地址簿总是可以更新指标。
func ProvidePeerMetrics(p Params) *PeerMetrics {
	return NewPeerMetrics(ConfigFromUnified(p.UnifiedCfg))
}

type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	Metrics    *PeerMetrics
	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

func registerLifecycle(input lifecycleInput) {
	cfg := ConfigFromUnified(input.UnifiedCfg)
	if !cfg.Enabled || input.Registerer == nil {
		return
	}

	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := input.Metrics.Register(input.Registerer); err != nil {
				return err
			}
			logger.Debug("peer metrics registered", "namespace", cfg.Namespace)
			return nil
		},
		OnStop: func(_ context.Context) error {
			n := input.Metrics.Unregister(input.Registerer)
			logger.Debug("peer metrics unregistered", "count", n)
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "metrics"
	// Description 模块描述
	Description = "地址簿指标模块，提供 prometheus 计量"
)
