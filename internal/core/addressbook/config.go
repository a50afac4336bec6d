package addressbook

import (
	"github.com/dep2p/go-addrbook/config"
)

// Config 地址簿配置
type Config struct {
	// NodeName 本节点名称
	NodeName string

	// EnableLoopback 是否接受回环地址
	EnableLoopback bool

	// PruneAddresses 是否裁剪不可达的地址和节点
	PruneAddresses bool

	// KnownPeers 启动时登记的已知节点
	KnownPeers []config.KnownPeer
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		EnableLoopback: false,
		PruneAddresses: true,
	}
}

// ConfigFromUnified 从统一配置创建地址簿配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		NodeName:       cfg.AddressBook.NodeName,
		EnableLoopback: cfg.AddressBook.EnableLoopback,
		PruneAddresses: cfg.AddressBook.PruneAddresses,
		KnownPeers:     cfg.AddressBook.KnownPeers,
	}
}

// WithNodeName 设置节点名称
func (c Config) WithNodeName(name string) Config {
	c.NodeName = name
	return c
}

// WithLoopback 设置是否接受回环地址
func (c Config) WithLoopback(enabled bool) Config {
	c.EnableLoopback = enabled
	return c
}

// WithPruning 设置是否裁剪地址
func (c Config) WithPruning(enabled bool) Config {
	c.PruneAddresses = enabled
	return c
}
