package addressbook

import (
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// actionQueue 待运行时执行的动作队列（FIFO，无界）
//
// 同一节点同时只保留一个待执行的拨号。
type actionQueue struct {
	queue   []types.Action
	pending map[peer.ID]struct{}
}

func newActionQueue() *actionQueue {
	return &actionQueue{pending: make(map[peer.ID]struct{})}
}

// pushDial 入队拨号，已有待执行拨号时返回 false
func (q *actionQueue) pushDial(p peer.ID) bool {
	if _, ok := q.pending[p]; ok {
		return false
	}
	q.pending[p] = struct{}{}
	q.queue = append(q.queue, types.DialPeer{Peer: p, Condition: types.DialConditionDisconnected})
	return true
}

func (q *actionQueue) pop() (types.Action, bool) {
	if len(q.queue) == 0 {
		return nil, false
	}
	a := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	if d, ok := a.(types.DialPeer); ok {
		delete(q.pending, d.Peer)
	}
	return a, true
}

func (q *actionQueue) len() int {
	return len(q.queue)
}

// Dial 请求运行时在未连接时拨号节点
//
// 拨号本节点会记录错误并忽略；已有待执行拨号时忽略。
func (ab *AddressBook) Dial(p peer.ID) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.dialLocked(p)
}

func (ab *AddressBook) dialLocked(p peer.ID) {
	if p == ab.localPeer {
		logger.Error("attempting to dial self", "peer", shortID(p))
		return
	}
	if !ab.actions.pushDial(p) {
		logger.Debug("dial already queued", "peer", shortID(p))
		return
	}
	logger.Trace("dialing", "peer", shortID(p))
}

// Poll 取出下一个待执行动作
func (ab *AddressBook) Poll() (types.Action, bool) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.actions.pop()
}

// PendingActions 返回队列中待执行动作的数量
func (ab *AddressBook) PendingActions() int {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.actions.len()
}
