package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Subsystem 所有指标共用的子系统名称
const Subsystem = "peers"

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilRegisterer 注册器为空
	ErrNilRegisterer = errors.New("metrics: nil registerer")
)

// ============================================================================
// PeerMetrics
// ============================================================================

// PeerMetrics 地址簿指标集合
type PeerMetrics struct {
	Listeners     prometheus.Gauge
	ListenAddrs   prometheus.Gauge
	ExternalAddrs prometheus.Gauge
	Discovered    prometheus.Gauge
	Connected     prometheus.Gauge
	Connections   prometheus.Gauge

	ListenerErrors       prometheus.Counter
	AddressReachFailures prometheus.Counter
	DialFailures         prometheus.Counter
}

// NewPeerMetrics 创建指标集合
//
// 创建的指标尚未注册，需要调用 Register。
func NewPeerMetrics(cfg Config) *PeerMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: Subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &PeerMetrics{
		Listeners:     gauge("listeners", "Number of listeners."),
		ListenAddrs:   gauge("listen_addrs", "Number of listen addrs."),
		ExternalAddrs: gauge("external_addrs", "Number of external addresses."),
		Discovered:    gauge("discovered", "Number of discovered peers."),
		Connected:     gauge("connected", "Number of connected peers."),
		Connections:   gauge("connections", "Number of connections."),

		ListenerErrors:       counter("listener_error", "Number of non fatal listener errors."),
		AddressReachFailures: counter("address_reach_failure", "Number of address reach failures."),
		DialFailures:         counter("dial_failure", "Number of dial failures."),
	}
}

// Collectors 返回全部指标，顺序固定
func (m *PeerMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Listeners,
		m.ListenAddrs,
		m.ExternalAddrs,
		m.Discovered,
		m.Connected,
		m.Connections,
		m.ListenerErrors,
		m.AddressReachFailures,
		m.DialFailures,
	}
}

// Register 将全部指标注册到 reg
//
// 每个指标都会尝试注册，失败合并后返回。
// 重复注册的错误包装了 prometheus.AlreadyRegisteredError，可用 errors.As 判断。
func (m *PeerMetrics) Register(reg prometheus.Registerer) error {
	if reg == nil {
		return ErrNilRegisterer
	}

	var errs error
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("register %s: %w", describe(c), err))
		}
	}
	return errs
}

// Unregister 从 reg 注销全部指标，返回成功注销的数量
func (m *PeerMetrics) Unregister(reg prometheus.Registerer) int {
	if reg == nil {
		return 0
	}

	n := 0
	for _, c := range m.Collectors() {
		if reg.Unregister(c) {
			n++
		}
	}
	return n
}

// describe 返回指标的描述字符串，用于错误信息
func describe(c prometheus.Collector) string {
	ch := make(chan *prometheus.Desc, 1)
	c.Describe(ch)
	close(ch)
	if d, ok := <-ch; ok {
		return d.String()
	}
	return "collector"
}
