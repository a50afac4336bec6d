// Package eventbus 实现事件总线
package eventbus

import (
	"errors"
	"sync"

	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/lib/log"
	"github.com/dep2p/go-addrbook/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 事件总线或订阅已关闭
	ErrClosed = errors.New("eventbus closed")
)

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	mu sync.Mutex

	// sinks 订阅者列表（按订阅顺序）
	sinks []*Subscription

	closed bool
}

var _ pkgif.EventBus = (*Bus)(nil)

// NewBus 创建新的事件总线
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe 订阅事件
//
// 总线已关闭时返回一个已终止的订阅。
func (b *Bus) Subscribe() pkgif.Subscription {
	sub := newSubscription()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub.terminate()
		return sub
	}
	b.sinks = append(b.sinks, sub)

	logger.Trace("subscriber added", "id", sub.id, "subscribers", len(b.sinks))
	return sub
}

// Notify 投递事件到所有存活的订阅者
//
// 接收端已关闭的订阅者在本次调用中被移除。
func (b *Bus) Notify(evt types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || evt == nil {
		return
	}

	live := b.sinks[:0]
	for _, sub := range b.sinks {
		if sub.push(evt) {
			live = append(live, sub)
			continue
		}
		logger.Debug("subscriber dropped", "id", sub.id)
	}
	// 清空尾部引用，避免已移除的订阅无法回收
	for i := len(live); i < len(b.sinks); i++ {
		b.sinks[i] = nil
	}
	b.sinks = live
}

// Subscribers 返回当前登记的订阅者数量
//
// 已关闭但尚未被惰性移除的订阅也会被计入。
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sinks)
}

// Close 关闭事件总线
//
// Close 可以多次调用。订阅者仍可取出已排队的事件，之后 Next 返回 ErrClosed。
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, sub := range b.sinks {
		sub.terminate()
	}
	b.sinks = nil
	return nil
}
