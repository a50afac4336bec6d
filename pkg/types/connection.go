package types

import (
	"fmt"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              ListenerID - 监听器标识
// ============================================================================

// ListenerID 运行时分配的监听器标识
type ListenerID uint64

// String 返回监听器标识的字符串表示
func (id ListenerID) String() string {
	return fmt.Sprintf("listener-%d", uint64(id))
}

// ============================================================================
//                              ConnectedPoint - 连接端点
// ============================================================================

// Endpoint 本端在连接中的角色
type Endpoint int

const (
	// EndpointDialer 本端主动拨号
	EndpointDialer Endpoint = iota
	// EndpointListener 本端被动接受
	EndpointListener
)

// String 返回角色的字符串表示
func (e Endpoint) String() string {
	if e == EndpointListener {
		return "listener"
	}
	return "dialer"
}

// ConnectedPoint 描述一条连接的两端地址
type ConnectedPoint struct {
	// Endpoint 本端角色
	Endpoint Endpoint

	// Address 拨号时为拨出的远端地址
	Address ma.Multiaddr

	// LocalAddr 接受连接时的本地监听地址
	LocalAddr ma.Multiaddr

	// SendBackAddr 接受连接时对端的回连地址
	SendBackAddr ma.Multiaddr
}

// DialerPoint 创建拨号方端点
func DialerPoint(addr ma.Multiaddr) ConnectedPoint {
	return ConnectedPoint{Endpoint: EndpointDialer, Address: addr}
}

// ListenerPoint 创建监听方端点
func ListenerPoint(local, sendBack ma.Multiaddr) ConnectedPoint {
	return ConnectedPoint{Endpoint: EndpointListener, LocalAddr: local, SendBackAddr: sendBack}
}

// IsDialer 本端是否为拨号方
func (cp ConnectedPoint) IsDialer() bool {
	return cp.Endpoint == EndpointDialer
}

// RemoteAddress 返回远端地址
func (cp ConnectedPoint) RemoteAddress() ma.Multiaddr {
	if cp.IsDialer() {
		return cp.Address
	}
	return cp.SendBackAddr
}

// ============================================================================
//                              Connection - 活动连接
// ============================================================================

// Connection 连接跟踪器中的一条活动连接
type Connection struct {
	Peer  peer.ID
	Addr  ma.Multiaddr
	Since time.Time
}
