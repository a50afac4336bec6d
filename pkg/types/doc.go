// Package types 定义 go-addrbook 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在地址簿、事件总线和外部运行时之间传递数据。
//
// # 文件组织
//
//   - address.go    - AddressSource 地址来源
//   - rtt.go        - Rtt 往返时延估计
//   - peerinfo.go   - PeerInfo 节点信息快照、IdentifyInfo
//   - connection.go - ListenerID、ConnectedPoint、Connection
//   - action.go     - 运行时待执行的动作（拨号）
//   - events.go     - 所有生命周期事件（封闭的事件集合）
//
// 节点标识使用 go-libp2p 的 peer.ID，地址使用 go-multiaddr 的 Multiaddr。
package types
