package config

import (
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-addrbook/internal/util/addrutil"
)

// KnownPeer 已知节点配置
//
// 地址簿启动时以 user 来源登记这些地址，不依赖任何发现机制。
type KnownPeer struct {
	// PeerID 目标节点的 Peer ID
	PeerID string `json:"peer_id"`

	// Addrs 目标节点的地址列表
	// 格式为 multiaddr，例如 "/ip4/1.2.3.4/tcp/4001"，
	// 可以带 /p2p/<PeerID> 后缀，但必须与 PeerID 一致
	Addrs []string `json:"addrs"`
}

// Resolve 解析节点标识和规范化后的地址
func (k KnownPeer) Resolve() (peer.ID, []ma.Multiaddr, error) {
	id, err := peer.Decode(k.PeerID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid known peer id %q: %w", k.PeerID, err)
	}

	addrs := make([]ma.Multiaddr, 0, len(k.Addrs))
	for _, s := range k.Addrs {
		addr, err := addrutil.ParseFullAddr(s, id)
		if err != nil {
			return "", nil, fmt.Errorf("invalid address %q for known peer %s: %w", s, k.PeerID, err)
		}
		addrs = append(addrs, addr)
	}
	return id, addrs, nil
}

// AddressBookConfig 地址簿配置
type AddressBookConfig struct {
	// NodeName 本节点名称，仅用于展示
	NodeName string `json:"node_name,omitempty"`

	// EnableLoopback 是否接受回环地址
	// 默认值: false
	EnableLoopback bool `json:"enable_loopback"`

	// PruneAddresses 是否裁剪不可达地址和节点
	// 默认值: true
	PruneAddresses bool `json:"prune_addresses"`

	// KnownPeers 已知节点列表
	KnownPeers []KnownPeer `json:"known_peers,omitempty"`
}

// DefaultAddressBookConfig 返回默认的地址簿配置
func DefaultAddressBookConfig() AddressBookConfig {
	return AddressBookConfig{
		EnableLoopback: false,
		PruneAddresses: true,
	}
}

// Validate 验证地址簿配置的有效性
func (c *AddressBookConfig) Validate() error {
	for i, kp := range c.KnownPeers {
		if kp.PeerID == "" {
			return fmt.Errorf("known_peers[%d]: %w", i, ErrEmptyPeerID)
		}
		if _, _, err := kp.Resolve(); err != nil {
			return fmt.Errorf("known_peers[%d]: %w", i, err)
		}
	}
	return nil
}

// WithNodeName 设置节点名称
func (c AddressBookConfig) WithNodeName(name string) AddressBookConfig {
	c.NodeName = name
	return c
}

// WithLoopback 设置是否接受回环地址
func (c AddressBookConfig) WithLoopback(enabled bool) AddressBookConfig {
	c.EnableLoopback = enabled
	return c
}

// WithPruning 设置是否裁剪地址
func (c AddressBookConfig) WithPruning(enabled bool) AddressBookConfig {
	c.PruneAddresses = enabled
	return c
}
