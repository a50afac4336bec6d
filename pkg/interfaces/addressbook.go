// Package interfaces 定义 go-addrbook 公共接口
//
// 本文件定义 AddressBook 与 LifecycleHandler 接口。
package interfaces

import (
	"time"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// AddressBook 定义面向应用层的地址簿接口
//
// 所有变更操作都是全函数：未知节点或地址一律安全忽略，不返回错误。
type AddressBook interface {
	// LocalPeer 本节点标识
	LocalPeer() peer.ID

	// LocalNodeName 本节点名称
	LocalNodeName() string

	// LocalPublicKey 本节点公钥
	LocalPublicKey() crypto.PubKey

	// AddAddress 为节点添加地址，首次添加时广播 EvtDiscovered
	AddAddress(p peer.ID, addr ma.Multiaddr, source types.AddressSource)

	// RemoveAddress 移除节点的某个地址，不会删除节点记录
	RemoveAddress(p peer.ID, addr ma.Multiaddr)

	// Dial 请求运行时拨号节点（未连接时）
	Dial(p peer.ID)

	// Peers 返回所有已知节点
	Peers() []peer.ID

	// Connections 返回所有活动连接
	Connections() []types.Connection

	// IsConnected 节点当前是否已连接，本节点总是返回 true
	IsConnected(p peer.ID) bool

	// Info 返回节点信息快照
	Info(p peer.ID) (types.PeerInfo, bool)

	// SetInfo 用 identify 结果覆盖节点元数据
	SetInfo(p peer.ID, info types.IdentifyInfo)

	// SetRTT 记录一次往返时延测量，err 非空表示测量失败
	SetRTT(p peer.ID, rtt time.Duration, err error)

	// Subscribe 订阅生命周期事件
	Subscribe() Subscription

	// Notify 通过地址簿的事件总线发布事件
	Notify(evt types.Event)

	// RegisterMetrics 将地址簿指标注册到外部收集器
	RegisterMetrics(reg prometheus.Registerer) error

	// Close 关闭地址簿和它拥有的事件总线
	Close() error
}

// LifecycleHandler 定义外部网络运行时驱动地址簿的回调接口
//
// 运行时在单个 goroutine 中同步调用这些方法，
// 并通过 Poll 拉取待执行的动作。
type LifecycleHandler interface {
	// AddrsOf 返回拨号时可尝试的地址
	AddrsOf(p peer.ID) []ma.Multiaddr

	// Poll 取出下一个待执行动作
	Poll() (types.Action, bool)

	OnNewListener(id types.ListenerID)
	OnNewListenAddr(id types.ListenerID, addr ma.Multiaddr)
	OnExpiredListenAddr(id types.ListenerID, addr ma.Multiaddr)
	OnListenerError(id types.ListenerID, err error)
	OnListenerClosed(id types.ListenerID, reason error)
	OnNewExternalAddr(addr ma.Multiaddr)
	OnExpiredExternalAddr(addr ma.Multiaddr)

	OnConnectionEstablished(p peer.ID, conn types.ConnectedPoint)
	OnAddressChange(p peer.ID, oldConn, newConn types.ConnectedPoint)
	OnConnectionClosed(p peer.ID, conn types.ConnectedPoint)
	OnConnected(p peer.ID)
	OnDisconnected(p peer.ID)

	// OnAddrReachFailure 单个地址拨号失败，p 为空表示未知节点
	OnAddrReachFailure(p peer.ID, addr ma.Multiaddr, err error)

	// OnDialFailure 所有地址均拨号失败
	OnDialFailure(p peer.ID)
}
