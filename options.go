package addrbook

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-addrbook/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	pubKey     crypto.PubKey
	registerer prometheus.Registerer
	clock      clock.Clock

	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用完整配置
//
// 配置会被复制，之后的选项在副本上覆盖。应放在其他选项之前。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return ErrNilConfig
		}
		o.config = config.CloneConfig(cfg)
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// ============================================================================
//                              身份选项
// ============================================================================

// WithPublicKey 设置本节点公钥
//
// 未设置时自动生成 Ed25519 密钥。
func WithPublicKey(key crypto.PubKey) Option {
	return func(o *options) error {
		if key == nil {
			return ErrNilPublicKey
		}
		o.pubKey = key
		return nil
	}
}

// WithNodeName 设置本节点名称
func WithNodeName(name string) Option {
	return func(o *options) error {
		o.config.AddressBook.NodeName = name
		return nil
	}
}

// ============================================================================
//                              地址簿行为
// ============================================================================

// WithLoopback 是否接受回环地址
func WithLoopback(enable bool) Option {
	return func(o *options) error {
		o.config.AddressBook.EnableLoopback = enable
		return nil
	}
}

// WithAddressPruning 是否裁剪不可达地址和节点
func WithAddressPruning(enable bool) Option {
	return func(o *options) error {
		o.config.AddressBook.PruneAddresses = enable
		return nil
	}
}

// WithKnownPeer 添加启动时登记的已知节点
//
// 示例:
//
//	addrbook.New(addrbook.WithKnownPeer(
//	    "12D3KooW...",
//	    "/ip4/1.2.3.4/tcp/4001",
//	))
func WithKnownPeer(peerID string, addrs ...string) Option {
	return func(o *options) error {
		if peerID == "" {
			return ErrEmptyPeerID
		}
		o.config.AddressBook.KnownPeers = append(o.config.AddressBook.KnownPeers, config.KnownPeer{
			PeerID: peerID,
			Addrs:  addrs,
		})
		return nil
	}
}

// ============================================================================
//                              指标与日志
// ============================================================================

// WithRegisterer 在启动时把地址簿指标注册到 reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithMetricsNamespace 设置指标命名空间
func WithMetricsNamespace(ns string) Option {
	return func(o *options) error {
		o.config.Metrics.Namespace = ns
		return nil
	}
}

// WithLogLevel 设置日志级别
func WithLogLevel(level string) Option {
	return func(o *options) error {
		o.config.Log.Level = level
		return nil
	}
}

// ============================================================================
//                              测试与扩展
// ============================================================================

// WithClock 设置时钟，用于测试
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		if clk == nil {
			return fmt.Errorf("nil clock")
		}
		o.clock = clk
		return nil
	}
}

// WithFxOption 添加自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
