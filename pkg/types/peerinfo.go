package types

import (
	"time"

	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              PeerInfo - 节点信息快照
// ============================================================================

// PeerInfo 地址簿中某个节点的只读快照
//
// 快照与地址簿内部状态不共享任何可变数据。
type PeerInfo struct {
	// ProtocolVersion 对端协议版本，未完成 identify 时为空
	ProtocolVersion string

	// AgentVersion 对端代理版本，未完成 identify 时为空
	AgentVersion string

	// Identified 是否已收到 identify 信息
	Identified bool

	// Protocols 对端支持的协议（保持上报顺序）
	Protocols []string

	// Addresses 已知地址（按加入顺序）
	Addresses []AddressEntry

	// Rtt 往返时延统计，未测量时为 nil
	Rtt *Rtt
}

// RTT 返回最近一次测量的时延
func (pi PeerInfo) RTT() (time.Duration, bool) {
	if pi.Rtt == nil {
		return 0, false
	}
	return pi.Rtt.Current(), true
}

// Addrs 返回地址列表（不含来源）
func (pi PeerInfo) Addrs() []ma.Multiaddr {
	out := make([]ma.Multiaddr, len(pi.Addresses))
	for i, e := range pi.Addresses {
		out[i] = e.Addr
	}
	return out
}

// SourceOf 返回指定地址的来源
func (pi PeerInfo) SourceOf(addr ma.Multiaddr) (AddressSource, bool) {
	for _, e := range pi.Addresses {
		if e.Addr.Equal(addr) {
			return e.Source, true
		}
	}
	return 0, false
}

// IdentifyInfo identify 协议得到的节点元数据
type IdentifyInfo struct {
	ProtocolVersion string
	AgentVersion    string
	Protocols       []string
}
