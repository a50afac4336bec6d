package addressbook

import (
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// connEntry 连接跟踪条目
//
// 每个节点最多一条，addr 为最近一次建立或变更的远端地址。
type connEntry struct {
	addr  ma.Multiaddr
	since time.Time
}

// connTracker 连接跟踪器
//
// 模型中每个节点只有一条活动连接：任何一次关闭都会移除条目。
type connTracker struct {
	clock   clock.Clock
	entries map[peer.ID]*connEntry
}

func newConnTracker(clk clock.Clock) *connTracker {
	return &connTracker{
		clock:   clk,
		entries: make(map[peer.ID]*connEntry),
	}
}

// established 记录一条新连接，覆盖已有条目，返回是否新建了条目
func (t *connTracker) established(p peer.ID, addr ma.Multiaddr) bool {
	_, existed := t.entries[p]
	t.entries[p] = &connEntry{addr: addr, since: t.clock.Now()}
	return !existed
}

// changed 更新远端地址并保留建立时间，返回是否新建了条目
func (t *connTracker) changed(p peer.ID, addr ma.Multiaddr) bool {
	if e, ok := t.entries[p]; ok {
		e.addr = addr
		return false
	}
	t.entries[p] = &connEntry{addr: addr, since: t.clock.Now()}
	return true
}

// closed 移除节点的条目，返回条目是否存在
func (t *connTracker) closed(p peer.ID) bool {
	if _, ok := t.entries[p]; !ok {
		return false
	}
	delete(t.entries, p)
	return true
}

func (t *connTracker) has(p peer.ID) bool {
	_, ok := t.entries[p]
	return ok
}

// list 返回所有连接，按节点标识排序
func (t *connTracker) list() []types.Connection {
	out := make([]types.Connection, 0, len(t.entries))
	for p, e := range t.entries {
		out = append(out, types.Connection{Peer: p, Addr: e.addr, Since: e.since})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Peer < out[j].Peer })
	return out
}
