// Package addrbook 是节点地址簿的入口包
//
// addrbook 维护一个 P2P 节点对其他节点的全部簿记：
//   - 已知节点与可达地址（带来源）
//   - 活动连接与连接建立时间
//   - identify 元数据与往返时延
//   - 拨号、重拨与裁剪决策
//
// 外部网络运行时通过 On* 回调驱动地址簿，通过 Poll 拉取拨号请求；
// 应用层通过 Subscribe 订阅生命周期事件。
//
// # 快速开始
//
//	book, err := addrbook.New(
//	    addrbook.WithNodeName("alice"),
//	    addrbook.WithKnownPeer("12D3KooW...", "/ip4/1.2.3.4/tcp/4001"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer book.Close(context.Background())
//
//	sub := book.Subscribe()
//	for {
//	    evt, err := sub.Next(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(evt.Type())
//	}
//
// # 驱动地址簿
//
//	book.OnConnectionEstablished(peerID, types.DialerPoint(addr))
//	book.OnDialFailure(peerID)
//
//	for {
//	    action, ok := book.Poll()
//	    if !ok {
//	        break
//	    }
//	    dial := action.(types.DialPeer)
//	    runtime.Dial(dial.Peer, book.AddrsOf(dial.Peer))
//	}
//
// # 配置
//
// 默认配置拒绝回环地址并启用地址裁剪。可以通过 WithConfig 或
// WithConfigFile 提供完整配置，其他选项在其基础上覆盖。
package addrbook
