// Package metrics 提供地址簿的监控指标
//
// metrics 模块基于 prometheus client_golang 维护节点簿记相关的
// Gauge 与 Counter：
//   - 监听器数量、监听地址数量、外部地址数量
//   - 已发现节点数量、已连接节点数量、连接数量
//   - 监听器错误、地址不可达、拨号失败计数
//
// 指标实例由调用方持有并注入地址簿，不使用全局注册表。
//
// # 快速开始
//
//	m := metrics.NewPeerMetrics(metrics.DefaultConfig())
//	reg := prometheus.NewRegistry()
//	if err := m.Register(reg); err != nil {
//	    return err
//	}
//
//	m.Discovered.Inc()
//
// # 指标名称
//
// 所有指标使用子系统 "peers"，可选命名空间来自配置：
//
//	peers_listeners
//	peers_listen_addrs
//	peers_external_addrs
//	peers_discovered
//	peers_connected
//	peers_connections
//	peers_listener_error
//	peers_address_reach_failure
//	peers_dial_failure
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module(),
//	    fx.Supply(fx.Annotate(reg, fx.As(new(prometheus.Registerer)))),
//	)
//
// 提供了 prometheus.Registerer 且配置启用时，模块在启动时注册全部指标，
// 在停止时注销。
//
// # 并发安全
//
// prometheus 的 Gauge 与 Counter 本身是并发安全的。
package metrics
