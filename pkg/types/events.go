package types

import (
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 地址簿广播的生命周期事件
//
// 事件集合是封闭的，只有本文件中定义的类型实现该接口。
// 所有事件都是不可变值，按值复制给每个订阅者。
type Event interface {
	// Type 返回事件类型
	Type() string

	event()
}

// ============================================================================
//                              监听器事件
// ============================================================================

// EvtNewListener 新建监听器
type EvtNewListener struct {
	Listener ListenerID
}

// EvtNewListenAddr 监听器开始监听某个地址
type EvtNewListenAddr struct {
	Listener ListenerID
	Addr     ma.Multiaddr
}

// EvtExpiredListenAddr 监听器停止监听某个地址
type EvtExpiredListenAddr struct {
	Listener ListenerID
	Addr     ma.Multiaddr
}

// EvtListenerError 监听器出现非致命错误
type EvtListenerError struct {
	Listener ListenerID
	Error    string
}

// EvtListenerClosed 监听器关闭
type EvtListenerClosed struct {
	Listener ListenerID
}

// EvtNewExternalAddr 对端观察到的本节点地址
type EvtNewExternalAddr struct {
	Addr ma.Multiaddr
}

// EvtExpiredExternalAddr 未刷新而过期的本节点外部地址
type EvtExpiredExternalAddr struct {
	Addr ma.Multiaddr
}

// ============================================================================
//                              节点事件
// ============================================================================

// EvtDiscovered 首次为节点添加了地址
type EvtDiscovered struct {
	Peer peer.ID
}

// EvtDialFailure 对节点某个地址的拨号失败
type EvtDialFailure struct {
	Peer  peer.ID
	Addr  ma.Multiaddr
	Error string
}

// EvtUnreachable 节点无法通过任何已知地址到达
//
// 启用地址裁剪时，该节点已从地址簿中移除。
type EvtUnreachable struct {
	Peer peer.ID
}

// EvtNewInfo 节点信息（identify 或 RTT）已更新
type EvtNewInfo struct {
	Peer peer.ID
}

// ============================================================================
//                              连接事件
// ============================================================================

// EvtConnectionEstablished 与节点建立了一条新连接
type EvtConnectionEstablished struct {
	Peer peer.ID
	Conn ConnectedPoint
}

// EvtConnectionClosed 与节点的一条连接已关闭
type EvtConnectionClosed struct {
	Peer peer.ID
	Conn ConnectedPoint
}

// EvtAddressChanged 对端在活动连接上报告了新地址
type EvtAddressChanged struct {
	Peer peer.ID
	Old  ConnectedPoint
	New  ConnectedPoint
}

// EvtConnected 已连接到节点
type EvtConnected struct {
	Peer peer.ID
}

// EvtDisconnected 与节点的最后一条连接已关闭
type EvtDisconnected struct {
	Peer peer.ID
}

// ============================================================================
//                              订阅事件
// ============================================================================

// EvtSubscribed 节点订阅了某个主题
type EvtSubscribed struct {
	Peer  peer.ID
	Topic string
}

// EvtUnsubscribed 节点取消订阅了某个主题
type EvtUnsubscribed struct {
	Peer  peer.ID
	Topic string
}

// EvtBootstrapped 引导完成
type EvtBootstrapped struct{}

// ============================================================================
//                              Type 实现
// ============================================================================

func (EvtNewListener) Type() string           { return "new_listener" }
func (EvtNewListenAddr) Type() string         { return "new_listen_addr" }
func (EvtExpiredListenAddr) Type() string     { return "expired_listen_addr" }
func (EvtListenerError) Type() string         { return "listener_error" }
func (EvtListenerClosed) Type() string        { return "listener_closed" }
func (EvtNewExternalAddr) Type() string       { return "new_external_addr" }
func (EvtExpiredExternalAddr) Type() string   { return "expired_external_addr" }
func (EvtDiscovered) Type() string            { return "discovered" }
func (EvtDialFailure) Type() string           { return "dial_failure" }
func (EvtUnreachable) Type() string           { return "unreachable" }
func (EvtNewInfo) Type() string               { return "new_info" }
func (EvtConnectionEstablished) Type() string { return "connection_established" }
func (EvtConnectionClosed) Type() string      { return "connection_closed" }
func (EvtAddressChanged) Type() string        { return "address_changed" }
func (EvtConnected) Type() string             { return "connected" }
func (EvtDisconnected) Type() string          { return "disconnected" }
func (EvtSubscribed) Type() string            { return "subscribed" }
func (EvtUnsubscribed) Type() string          { return "unsubscribed" }
func (EvtBootstrapped) Type() string          { return "bootstrapped" }

func (EvtNewListener) event()           {}
func (EvtNewListenAddr) event()         {}
func (EvtExpiredListenAddr) event()     {}
func (EvtListenerError) event()         {}
func (EvtListenerClosed) event()        {}
func (EvtNewExternalAddr) event()       {}
func (EvtExpiredExternalAddr) event()   {}
func (EvtDiscovered) event()            {}
func (EvtDialFailure) event()           {}
func (EvtUnreachable) event()           {}
func (EvtNewInfo) event()               {}
func (EvtConnectionEstablished) event() {}
func (EvtConnectionClosed) event()      {}
func (EvtAddressChanged) event()        {}
func (EvtConnected) event()             {}
func (EvtDisconnected) event()          {}
func (EvtSubscribed) event()            {}
func (EvtUnsubscribed) event()          {}
func (EvtBootstrapped) event()          {}
