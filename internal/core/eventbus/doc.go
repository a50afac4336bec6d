// Package eventbus 实现进程内事件总线
//
// 单生产者、多消费者的扇出广播：
//   - 每个订阅者拥有独立的无界 FIFO 队列
//   - 发布永不阻塞，也不丢弃事件
//   - 已关闭的订阅在下一次投递时被惰性移除
//   - 订阅不回放历史事件
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//	defer bus.Close()
//
//	sub := bus.Subscribe()
//	defer sub.Close()
//
//	go func() {
//	    for {
//	        evt, err := sub.Next(ctx)
//	        if err != nil {
//	            return
//	        }
//	        // 处理事件
//	    }
//	}()
//
//	bus.Notify(types.EvtDiscovered{Peer: p})
//
// # 顺序保证
//
// 同一订阅者按发布顺序接收事件。总线在调用方的变更操作内同步投递，
// 因此两个订阅者对共同收到的事件的相对顺序总是一致的。
//
// # 内存
//
// 队列无界：从不读取的订阅者会让队列持续增长。
// 不再消费时应调用 Subscription.Close。
package eventbus
