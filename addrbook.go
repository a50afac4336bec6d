package addrbook

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/crypto"
	"go.uber.org/fx"

	"github.com/dep2p/go-addrbook/internal/core/metrics"
	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/lib/log"
)

var logger = log.Logger("addrbook")

// Version 当前版本
const Version = "v0.1.0"

const (
	// startTimeout Fx App 启动超时
	startTimeout = 15 * time.Second
)

// Book 运行中的地址簿
//
// 同时实现面向应用层的 AddressBook 和面向运行时的 LifecycleHandler。
// 使用完毕后需要调用 Close。
type Book struct {
	pkgif.AddressBook
	pkgif.LifecycleHandler

	app     *fx.App
	bus     pkgif.EventBus
	metrics *metrics.PeerMetrics

	mu     sync.Mutex
	closed bool
}

// New 创建并启动地址簿
//
// 示例：
//
//	book, err := addrbook.New(
//	    addrbook.WithNodeName("alice"),
//	    addrbook.WithLoopback(true),
//	)
func New(opts ...Option) (*Book, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	if err := o.config.Log.Apply(); err != nil {
		return nil, fmt.Errorf("configure log: %w", err)
	}

	if o.pubKey == nil {
		_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate identity: %w", err)
		}
		o.pubKey = pub
	}

	b := &Book{}
	app, err := buildFxApp(o, b)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	b.app = app

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	logger.Info("address book ready",
		"peer", b.LocalPeer().String(),
		"name", b.LocalNodeName())
	return b, nil
}

// EventBus 返回地址簿使用的事件总线
func (b *Book) EventBus() pkgif.EventBus {
	return b.bus
}

// Metrics 返回地址簿的指标集合
func (b *Book) Metrics() *metrics.PeerMetrics {
	return b.metrics
}

// Close 停止地址簿
//
// Close 可以多次调用，之后的调用返回 nil。
func (b *Book) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if err := b.app.Stop(ctx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	logger.Debug("address book stopped")
	return nil
}

// IsClosed 地址簿是否已关闭
func (b *Book) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
