// Package addressbook 实现节点地址簿
//
// 地址簿是节点簿记的核心，维护：
//   - 已知节点及其可达地址（含地址来源，先写入者保留）
//   - 每个节点的活动连接与建立时间
//   - identify 元数据与往返时延统计
//
// 外部网络运行时通过 LifecycleHandler 的 On* 回调驱动地址簿，
// 地址簿据此决定拨号、重拨与裁剪，并把拨号请求放入动作队列，
// 由运行时通过 Poll 拉取。
//
// # 快速开始
//
//	ab, err := addressbook.New(addressbook.DefaultConfig(), pubKey, nil, nil, nil)
//	if err != nil {
//	    return err
//	}
//	defer ab.Close()
//
//	sub := ab.Subscribe()
//	ab.AddAddress(peerID, addr, types.SourceUser)
//	evt, _ := sub.Next(ctx) // EvtDiscovered
//
// # 拨号与裁剪
//
// 单个地址拨号失败时（OnAddrReachFailure），若节点未连接且启用裁剪，
// 该地址被移除。整个拨号失败时（OnDialFailure）：
//   - 仍有剩余地址：重新入队拨号
//   - 没有地址：广播 EvtUnreachable 并移除节点记录
//
// 显式调用 RemoveAddress 永远不会移除节点记录。
//
// # 并发安全
//
// 所有方法都持有同一把互斥锁，变更与事件投递在同一临界区内完成，
// 因此事件顺序与状态变更顺序一致。事件总线不会阻塞。
package addressbook
