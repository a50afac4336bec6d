package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// ============================================================================
// Subscription 测试
// ============================================================================

// TestSubscription_ID 每个订阅有唯一标识
func TestSubscription_ID(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

// TestSubscription_NextBlocksUntilNotify Next 等待后续投递
func TestSubscription_NextBlocksUntilNotify(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	got := make(chan types.Event, 1)
	go func() {
		evt, err := sub.Next(context.Background())
		if err == nil {
			got <- evt
		}
	}()

	time.Sleep(10 * time.Millisecond)
	bus.Notify(types.EvtBootstrapped{})

	select {
	case evt := <-got:
		assert.Equal(t, types.EvtBootstrapped{}, evt)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

// TestSubscription_NextContextCancel Next 尊重 context
func TestSubscription_NextContextCancel(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestSubscription_Close 关闭后丢弃未读事件并终止 Next
func TestSubscription_Close(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Notify(types.EvtBootstrapped{})
	require.Equal(t, 1, sub.Pending())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	assert.Zero(t, sub.Pending())
	_, err := sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	_, ok := sub.TryNext()
	assert.False(t, ok)
}
