package addressbook

import (
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-addrbook/internal/util/addrutil"
	"github.com/dep2p/go-addrbook/pkg/types"
)

// ============================================================================
//                              监听器回调
// ============================================================================

// OnNewListener 新建监听器
func (ab *AddressBook) OnNewListener(id types.ListenerID) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	logger.Trace("listener created", "listener", id)
	ab.metrics.Listeners.Inc()
	ab.notifyLocked(types.EvtNewListener{Listener: id})
}

// OnNewListenAddr 监听器开始监听地址
func (ab *AddressBook) OnNewListenAddr(id types.ListenerID, addr ma.Multiaddr) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	logger.Trace("new listen addr", "listener", id, "addr", addr)
	ab.metrics.ListenAddrs.Inc()
	ab.notifyLocked(types.EvtNewListenAddr{Listener: id, Addr: addr})
}

// OnExpiredListenAddr 监听地址失效
func (ab *AddressBook) OnExpiredListenAddr(id types.ListenerID, addr ma.Multiaddr) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	logger.Trace("expired listen addr", "listener", id, "addr", addr)
	ab.metrics.ListenAddrs.Dec()
	ab.notifyLocked(types.EvtExpiredListenAddr{Listener: id, Addr: addr})
}

// OnListenerError 监听器非致命错误
func (ab *AddressBook) OnListenerError(id types.ListenerID, err error) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	msg := errString(err)
	logger.Trace("listener error", "listener", id, "err", msg)
	ab.metrics.ListenerErrors.Inc()
	ab.notifyLocked(types.EvtListenerError{Listener: id, Error: msg})
}

// OnListenerClosed 监听器关闭，reason 为 nil 表示正常关闭
func (ab *AddressBook) OnListenerClosed(id types.ListenerID, reason error) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	logger.Trace("listener closed", "listener", id, "reason", errString(reason))
	ab.metrics.Listeners.Dec()
	ab.notifyLocked(types.EvtListenerClosed{Listener: id})
}

// OnNewExternalAddr 对端观察到的本节点地址
func (ab *AddressBook) OnNewExternalAddr(addr ma.Multiaddr) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	full := addrutil.Normalize(addr, ab.localPeer)
	logger.Trace("new external addr", "addr", full)
	ab.metrics.ExternalAddrs.Inc()
	ab.notifyLocked(types.EvtNewExternalAddr{Addr: full})
}

// OnExpiredExternalAddr 本节点外部地址过期
func (ab *AddressBook) OnExpiredExternalAddr(addr ma.Multiaddr) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	full := addrutil.Normalize(addr, ab.localPeer)
	logger.Trace("expired external addr", "addr", full)
	ab.metrics.ExternalAddrs.Dec()
	ab.notifyLocked(types.EvtExpiredExternalAddr{Addr: full})
}

// ============================================================================
//                              连接回调
// ============================================================================

// OnConnectionEstablished 与节点建立了一条连接
//
// 远端地址以 peer 来源加入地址簿，然后才记录连接。
// 连接数指标跟随跟踪条目的增删。
func (ab *AddressBook) OnConnectionEstablished(p peer.ID, conn types.ConnectedPoint) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	addr := addrutil.Normalize(conn.RemoteAddress(), p)
	logger.Debug("connection established", "peer", shortID(p), "addr", addr, "out", conn.IsDialer())

	ab.addAddressLocked(p, addr, types.SourcePeer)
	if ab.conns.established(p, addr) {
		ab.metrics.Connections.Inc()
	}
	ab.notifyLocked(types.EvtConnectionEstablished{Peer: p, Conn: conn})
	ab.markConnectedLocked(p)
}

// OnAddressChange 对端在活动连接上报告了新地址
func (ab *AddressBook) OnAddressChange(p peer.ID, oldConn, newConn types.ConnectedPoint) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	addr := addrutil.Normalize(newConn.RemoteAddress(), p)
	logger.Debug("address changed",
		"peer", shortID(p),
		"old", oldConn.RemoteAddress(),
		"new", addr,
		"out", newConn.IsDialer())

	ab.addAddressLocked(p, addr, types.SourcePeer)
	if ab.conns.changed(p, addr) {
		ab.metrics.Connections.Inc()
	}
	ab.notifyLocked(types.EvtAddressChanged{Peer: p, Old: oldConn, New: newConn})
}

// OnConnectionClosed 与节点的一条连接已关闭
//
// 无论之前建立过几条连接，跟踪条目都会被移除，节点随即视为断开。
func (ab *AddressBook) OnConnectionClosed(p peer.ID, conn types.ConnectedPoint) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	addr := addrutil.Normalize(conn.RemoteAddress(), p)
	logger.Debug("connection closed", "peer", shortID(p), "addr", addr, "out", conn.IsDialer())

	if ab.conns.closed(p) {
		ab.metrics.Connections.Dec()
	}
	ab.notifyLocked(types.EvtConnectionClosed{Peer: p, Conn: conn})
	ab.markDisconnectedLocked(p)
}

// OnConnected 运行时报告节点已连接
func (ab *AddressBook) OnConnected(p peer.ID) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.markConnectedLocked(p)
}

// OnDisconnected 运行时报告节点已断开
func (ab *AddressBook) OnDisconnected(p peer.ID) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.markDisconnectedLocked(p)
}

// markConnectedLocked 每个连接区间只广播一次 EvtConnected
func (ab *AddressBook) markConnectedLocked(p peer.ID) {
	if _, ok := ab.online[p]; ok {
		return
	}
	ab.online[p] = struct{}{}
	logger.Trace("connected", "peer", shortID(p))
	ab.metrics.Connected.Inc()
	ab.notifyLocked(types.EvtConnected{Peer: p})
}

// markDisconnectedLocked 每个连接区间只广播一次 EvtDisconnected
func (ab *AddressBook) markDisconnectedLocked(p peer.ID) {
	if _, ok := ab.online[p]; !ok {
		return
	}
	delete(ab.online, p)
	logger.Trace("disconnected", "peer", shortID(p))
	ab.metrics.Connected.Dec()
	ab.notifyLocked(types.EvtDisconnected{Peer: p})
}

// ============================================================================
//                              拨号失败回调
// ============================================================================

// OnAddrReachFailure 对某个地址的拨号失败
//
// p 为空表示运行时不知道目标节点，只记录日志。
// 节点仍然连接时不做裁剪。
func (ab *AddressBook) OnAddrReachFailure(p peer.ID, addr ma.Multiaddr, err error) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	msg := errString(err)
	if p == "" {
		logger.Debug("dial failure", "addr", addr, "err", msg)
		return
	}

	stillConnected := ab.isConnectedLocked(p)
	logger.Debug("dial failure",
		"peer", shortID(p),
		"addr", addrutil.Normalize(addr, p),
		"err", msg,
		"still_connected", stillConnected)

	ab.notifyLocked(types.EvtDialFailure{Peer: p, Addr: addr, Error: msg})
	if stillConnected {
		return
	}

	ab.metrics.AddressReachFailures.Inc()
	if ab.cfg.PruneAddresses {
		ab.removeAddressLocked(p, addr)
	}
}

// OnDialFailure 对节点的所有地址拨号均失败
//
// 启用裁剪且节点仍有地址时（拨号期间新加入的地址）重新拨号；
// 否则广播 EvtUnreachable，启用裁剪时同时移除节点记录。
func (ab *AddressBook) OnDialFailure(p peer.ID) {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	rec, known := ab.peers[p]
	if ab.cfg.PruneAddresses && known && rec.addrs.len() > 0 {
		logger.Debug("redialing with new addresses", "peer", shortID(p))
		ab.dialLocked(p)
		return
	}

	logger.Trace("dial failure", "peer", shortID(p))
	ab.metrics.DialFailures.Inc()
	if !known {
		return
	}

	ab.notifyLocked(types.EvtUnreachable{Peer: p})
	if ab.cfg.PruneAddresses {
		delete(ab.peers, p)
		ab.metrics.Discovered.Dec()
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
