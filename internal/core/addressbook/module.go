package addressbook

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"go.uber.org/fx"

	"github.com/dep2p/go-addrbook/config"
	"github.com/dep2p/go-addrbook/internal/core/metrics"
	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// ConfigParams 配置依赖参数
type ConfigParams struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Params 地址簿依赖参数
type Params struct {
	fx.In

	PubKey   crypto.PubKey
	EventBus pkgif.EventBus       `optional:"true"`
	Metrics  *metrics.PeerMetrics `optional:"true"`
	Clock    clock.Clock          `optional:"true"`
}

// Output 地址簿模块输出
type Output struct {
	fx.Out

	Book        *AddressBook
	AddressBook pkgif.AddressBook
	Handler     pkgif.LifecycleHandler
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("addressbook",
		fx.Provide(
			ProvideConfig,
			ProvideAddressBook,
		),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConfig 从统一配置提供地址簿配置
func ProvideConfig(p ConfigParams) Config {
	return ConfigFromUnified(p.UnifiedCfg)
}

// ProvideAddressBook 提供地址簿实例
func ProvideAddressBook(cfg Config, p Params) (Output, error) {
	ab, err := New(cfg, p.PubKey, p.EventBus, p.Metrics, p.Clock)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Book:        ab,
		AddressBook: ab,
		Handler:     ab,
	}, nil
}

// lifecycleInput 生命周期注册输入
type lifecycleInput struct {
	fx.In

	LC   fx.Lifecycle
	Cfg  Config
	Book *AddressBook
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := input.Book.AddKnownPeers(input.Cfg.KnownPeers); err != nil {
				return err
			}
			logger.Info("address book started",
				"peer", shortID(input.Book.LocalPeer()),
				"known_peers", len(input.Cfg.KnownPeers))
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Book.Close()
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
	Name = "addressbook"
	// Description 模块描述
	Description = "地址簿模块，维护节点地址、连接与拨号策略"
)
