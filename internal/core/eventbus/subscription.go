// Package eventbus 实现事件总线
package eventbus

import (
	"context"
	"sync"

	"github.com/google/uuid"

	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅
//
// 队列无界；signal 容量为 1，只用于唤醒等待中的 Next。
type Subscription struct {
	id string

	mu      sync.Mutex
	queue   []types.Event
	dropped bool // 接收端已关闭
	ended   bool // 总线已关闭

	signal   chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

var _ pkgif.Subscription = (*Subscription)(nil)

func newSubscription() *Subscription {
	return &Subscription{
		id:     uuid.NewString(),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// ID 返回订阅标识
func (s *Subscription) ID() string {
	return s.id
}

// push 入队事件，接收端已关闭时返回 false
func (s *Subscription) push(evt types.Event) bool {
	s.mu.Lock()
	if s.dropped {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, evt)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
	return true
}

// terminate 由总线关闭时调用
func (s *Subscription) terminate() {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	s.doneOnce.Do(func() { close(s.done) })
}

// pop 取出队首事件
func (s *Subscription) pop() (types.Event, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) > 0 {
		evt := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		return evt, true, false
	}
	return nil, false, s.ended || s.dropped
}

// Next 阻塞等待下一个事件
func (s *Subscription) Next(ctx context.Context) (types.Event, error) {
	for {
		evt, ok, finished := s.pop()
		if ok {
			return evt, nil
		}
		if finished {
			return nil, ErrClosed
		}

		select {
		case <-s.signal:
		case <-s.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryNext 非阻塞地取出下一个事件
func (s *Subscription) TryNext() (types.Event, bool) {
	evt, ok, _ := s.pop()
	return evt, ok
}

// Pending 返回队列中的事件数量
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Done 在订阅终止（总线关闭或订阅取消）时关闭
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。未读取的事件被丢弃，
// 总线在下一次 Notify 时移除该订阅。
func (s *Subscription) Close() error {
	s.mu.Lock()
	s.dropped = true
	s.queue = nil
	s.mu.Unlock()
	s.doneOnce.Do(func() { close(s.done) })
	return nil
}
