// Package interfaces 定义 go-addrbook 公共接口
//
// 本文件定义 EventBus 接口，提供生命周期事件的扇出广播。
package interfaces

import (
	"context"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// EventBus 定义事件总线接口
//
// 每个订阅者拥有独立的无界 FIFO 队列，发布永远不会因为慢消费者而阻塞。
type EventBus interface {
	// Subscribe 创建新的订阅，不回放历史事件
	Subscribe() Subscription

	// Notify 把事件投递给所有存活的订阅者
	Notify(evt types.Event)

	// Subscribers 返回当前存活的订阅者数量
	Subscribers() int

	// Close 关闭总线，所有订阅在排空后终止
	Close() error
}

// Subscription 定义事件订阅接口
type Subscription interface {
	// ID 订阅标识
	ID() string

	// Next 阻塞等待下一个事件
	//
	// 总线关闭且队列排空后返回 ErrClosed。
	Next(ctx context.Context) (types.Event, error)

	// TryNext 非阻塞地取出下一个事件
	TryNext() (types.Event, bool)

	// Pending 返回尚未取出的事件数量
	Pending() int

	// Done 在订阅终止时关闭
	Done() <-chan struct{}

	// Close 取消订阅，总线会在下一次投递时移除它
	Close() error
}
