package addressbook

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-addrbook/config"
	"github.com/dep2p/go-addrbook/internal/core/eventbus"
	"github.com/dep2p/go-addrbook/internal/core/metrics"
	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/lib/log"
	"github.com/dep2p/go-addrbook/pkg/types"
)

var logger = log.Logger("core/addressbook")

// 确保实现了接口
var (
	_ pkgif.AddressBook      = (*AddressBook)(nil)
	_ pkgif.LifecycleHandler = (*AddressBook)(nil)
)

// AddressBook 节点地址簿
type AddressBook struct {
	mu sync.Mutex

	cfg       Config
	localPeer peer.ID
	localKey  crypto.PubKey

	peers   map[peer.ID]*peerRecord
	conns   *connTracker
	online  map[peer.ID]struct{}
	actions *actionQueue

	bus     pkgif.EventBus
	metrics *metrics.PeerMetrics

	closed bool
}

// New 创建地址簿
//
// bus、m、clk 可以为 nil，此时分别使用新建的事件总线、
// 未注册的指标集合和系统时钟。
func New(cfg Config, pubKey crypto.PubKey, bus pkgif.EventBus, m *metrics.PeerMetrics, clk clock.Clock) (*AddressBook, error) {
	if pubKey == nil {
		return nil, ErrNilPublicKey
	}
	id, err := peer.IDFromPublicKey(pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	if bus == nil {
		bus = eventbus.NewBus()
	}
	if m == nil {
		m = metrics.NewPeerMetrics(metrics.DefaultConfig())
	}
	if clk == nil {
		clk = clock.New()
	}

	logger.Debug("address book created",
		"peer", shortID(id),
		"name", cfg.NodeName,
		"loopback", cfg.EnableLoopback,
		"prune", cfg.PruneAddresses)

	return &AddressBook{
		cfg:       cfg,
		localPeer: id,
		localKey:  pubKey,
		peers:     make(map[peer.ID]*peerRecord),
		conns:     newConnTracker(clk),
		online:    make(map[peer.ID]struct{}),
		actions:   newActionQueue(),
		bus:       bus,
		metrics:   m,
	}, nil
}

// ============================================================================
//                              本节点信息
// ============================================================================

// LocalPeer 本节点标识
func (ab *AddressBook) LocalPeer() peer.ID {
	return ab.localPeer
}

// LocalNodeName 本节点名称
func (ab *AddressBook) LocalNodeName() string {
	return ab.cfg.NodeName
}

// LocalPublicKey 本节点公钥
func (ab *AddressBook) LocalPublicKey() crypto.PubKey {
	return ab.localKey
}

// ============================================================================
//                              连接查询
// ============================================================================

// Connections 返回所有活动连接，按节点标识排序
func (ab *AddressBook) Connections() []types.Connection {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.conns.list()
}

// IsConnected 节点当前是否已连接，本节点总是返回 true
func (ab *AddressBook) IsConnected(p peer.ID) bool {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.isConnectedLocked(p)
}

func (ab *AddressBook) isConnectedLocked(p peer.ID) bool {
	return p == ab.localPeer || ab.conns.has(p)
}

// ============================================================================
//                              事件
// ============================================================================

// Subscribe 订阅生命周期事件，只接收订阅之后的事件
func (ab *AddressBook) Subscribe() pkgif.Subscription {
	return ab.bus.Subscribe()
}

// Notify 通过地址簿的事件总线发布事件
//
// 供同级子系统发布订阅与引导事件，与地址簿自身事件保持同一顺序。
func (ab *AddressBook) Notify(evt types.Event) {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	ab.notifyLocked(evt)
}

func (ab *AddressBook) notifyLocked(evt types.Event) {
	if evt == nil {
		return
	}
	logger.Trace("event", "type", evt.Type())
	ab.bus.Notify(evt)
}

// ============================================================================
//                              指标与生命周期
// ============================================================================

// RegisterMetrics 将地址簿指标注册到 reg
func (ab *AddressBook) RegisterMetrics(reg prometheus.Registerer) error {
	return ab.metrics.Register(reg)
}

// AddKnownPeers 以 user 来源登记已知节点的地址
//
// 某个节点解析失败时跳过它并继续，返回第一个错误。
func (ab *AddressBook) AddKnownPeers(known []config.KnownPeer) error {
	var firstErr error
	for _, kp := range known {
		id, addrs, err := kp.Resolve()
		if err != nil {
			logger.Warn("skipping known peer", "peer", kp.PeerID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, addr := range addrs {
			ab.AddAddress(id, addr, types.SourceUser)
		}
	}
	return firstErr
}

// Close 关闭地址簿和它的事件总线
//
// Close 可以多次调用。
func (ab *AddressBook) Close() error {
	ab.mu.Lock()
	defer ab.mu.Unlock()

	if ab.closed {
		return nil
	}
	ab.closed = true
	logger.Debug("address book closed", "peers", len(ab.peers), "connections", len(ab.conns.entries))
	return ab.bus.Close()
}

func shortID(p peer.ID) string {
	return log.TruncateID(p.String(), 16)
}
