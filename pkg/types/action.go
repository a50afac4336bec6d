package types

import "github.com/libp2p/go-libp2p/core/peer"

// Action 交由外部运行时执行的动作
//
// 目前只有 DialPeer 一种。
type Action interface {
	action()
}

// DialCondition 拨号前提条件
type DialCondition int

const (
	// DialConditionDisconnected 仅在未连接时拨号
	DialConditionDisconnected DialCondition = iota
	// DialConditionNotDialing 仅在没有进行中的拨号时拨号
	DialConditionNotDialing
	// DialConditionAlways 总是拨号
	DialConditionAlways
)

// String 返回拨号条件的字符串表示
func (c DialCondition) String() string {
	switch c {
	case DialConditionDisconnected:
		return "disconnected"
	case DialConditionNotDialing:
		return "not-dialing"
	default:
		return "always"
	}
}

// DialPeer 拨号指定节点
type DialPeer struct {
	Peer      peer.ID
	Condition DialCondition
}

func (DialPeer) action() {}
