package addressbook

import (
	"sort"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-addrbook/internal/util/addrutil"
	"github.com/dep2p/go-addrbook/pkg/types"
)

// peerRecord 单个节点的内部记录
type peerRecord struct {
	protocolVersion string
	agentVersion    string
	identified      bool
	protocols       []string
	addrs           *addrSet
	rtt             *types.Rtt
}

func newPeerRecord() *peerRecord {
	return &peerRecord{addrs: newAddrSet()}
}

// snapshot 导出与内部状态不共享可变数据的快照
func (r *peerRecord) snapshot() types.PeerInfo {
	info := types.PeerInfo{
		ProtocolVersion: r.protocolVersion,
		AgentVersion:    r.agentVersion,
		Identified:      r.identified,
		Protocols:       append([]string(nil), r.protocols...),
		Addresses:       r.addrs.list(),
	}
	if r.rtt != nil {
		rtt := *r.rtt
		info.Rtt = &rtt
	}
	return info
}

// ============================================================================
//                              地址管理
// ============================================================================

// AddAddress 为节点添加地址
//
// 本节点、nil 地址以及（未启用时）回环地址被忽略。
// 地址按节点规范化后插入，已存在的地址保留原来源。
// 节点首次出现时广播 EvtDiscovered。
func (ab *AddressBook) AddAddress(p peer.ID, addr ma.Multiaddr, source types.AddressSource) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.addAddressLocked(p, addr, source)
}

func (ab *AddressBook) addAddressLocked(p peer.ID, addr ma.Multiaddr, source types.AddressSource) {
	if p == ab.localPeer || addr == nil {
		return
	}
	if !ab.cfg.EnableLoopback && addrutil.IsLoopback(addr) {
		logger.Trace("ignoring loopback address", "peer", shortID(p), "addr", addr)
		return
	}

	rec, known := ab.peers[p]
	if !known {
		rec = newPeerRecord()
		ab.peers[p] = rec
		ab.metrics.Discovered.Inc()
	}

	full := addrutil.Normalize(addr, p)
	if rec.addrs.insert(full, source) {
		logger.Trace("adding address", "peer", shortID(p), "addr", full, "source", source)
	}

	if !known {
		ab.notifyLocked(types.EvtDiscovered{Peer: p})
	}
}

// RemoveAddress 移除节点的某个地址
//
// 即使移除后节点没有任何地址，节点记录也会保留。
func (ab *AddressBook) RemoveAddress(p peer.ID, addr ma.Multiaddr) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.removeAddressLocked(p, addr)
}

func (ab *AddressBook) removeAddressLocked(p peer.ID, addr ma.Multiaddr) {
	rec, ok := ab.peers[p]
	if !ok || addr == nil {
		return
	}
	full := addrutil.Normalize(addr, p)
	if rec.addrs.remove(full) {
		logger.Trace("removing address", "peer", shortID(p), "addr", full)
	}
}

// AddrsOf 返回拨号时可尝试的地址（按加入顺序），未知节点返回空
func (ab *AddressBook) AddrsOf(p peer.ID) []ma.Multiaddr {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	rec, ok := ab.peers[p]
	if !ok {
		return nil
	}
	return rec.addrs.addrs()
}

// ============================================================================
//                              节点查询
// ============================================================================

// Peers 返回所有已知节点，按节点标识排序
func (ab *AddressBook) Peers() []peer.ID {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	out := make([]peer.ID, 0, len(ab.peers))
	for p := range ab.peers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Info 返回节点信息快照
func (ab *AddressBook) Info(p peer.ID) (types.PeerInfo, bool) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	rec, ok := ab.peers[p]
	if !ok {
		return types.PeerInfo{}, false
	}
	return rec.snapshot(), true
}

// ============================================================================
//                              节点元数据
// ============================================================================

// SetInfo 用 identify 结果覆盖节点元数据，未知节点被忽略
//
// 不广播事件。
func (ab *AddressBook) SetInfo(p peer.ID, info types.IdentifyInfo) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	rec, ok := ab.peers[p]
	if !ok {
		return
	}
	rec.protocolVersion = info.ProtocolVersion
	rec.agentVersion = info.AgentVersion
	rec.protocols = append([]string(nil), info.Protocols...)
	rec.identified = true
	logger.Trace("peer identified", "peer", shortID(p), "agent", info.AgentVersion)
}

// SetRTT 记录一次往返时延测量
//
// err 为 nil 时登记样本（首个样本初始化统计）；
// 否则只在已有统计时累加失败次数。未知节点被忽略。
func (ab *AddressBook) SetRTT(p peer.ID, rtt time.Duration, err error) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	rec, ok := ab.peers[p]
	if !ok {
		return
	}

	switch {
	case err == nil && rec.rtt == nil:
		r := types.NewRtt(rtt)
		rec.rtt = &r
	case err == nil:
		rec.rtt.Register(rtt)
	case rec.rtt != nil:
		rec.rtt.RegisterFailure()
	default:
		logger.Trace("ping failed before first sample", "peer", shortID(p), "err", err)
	}

	ab.notifyLocked(types.EvtNewInfo{Peer: p})
}
