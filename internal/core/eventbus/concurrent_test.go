package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_ConsumersKeepOrder 多个消费者并发读取，各自保持顺序
func TestConcurrent_ConsumersKeepOrder(t *testing.T) {
	bus := NewBus()

	const (
		numSubscribers = 8
		numEvents      = 500
	)

	results := make([][]types.ListenerID, numSubscribers)
	var wg sync.WaitGroup
	wg.Add(numSubscribers)

	for i := 0; i < numSubscribers; i++ {
		sub := bus.Subscribe()
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				evt, err := sub.Next(ctx)
				if err != nil {
					return
				}
				results[i] = append(results[i], evt.(types.EvtNewListener).Listener)
			}
		}(i)
	}

	for j := 0; j < numEvents; j++ {
		bus.Notify(types.EvtNewListener{Listener: types.ListenerID(j)})
	}
	require.NoError(t, bus.Close())
	wg.Wait()

	for i := 0; i < numSubscribers; i++ {
		require.Len(t, results[i], numEvents)
		for j, id := range results[i] {
			assert.Equal(t, types.ListenerID(j), id)
		}
	}
}

// TestConcurrent_SubscribeWhileNotify 订阅与投递并发执行
func TestConcurrent_SubscribeWhileNotify(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			bus.Notify(types.EvtBootstrapped{})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			sub := bus.Subscribe()
			if i%2 == 0 {
				sub.Close()
			}
		}
	}()

	wg.Wait()
	bus.Notify(types.EvtBootstrapped{})
	assert.Equal(t, 25, bus.Subscribers())
}
