package addrbook

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-addrbook/internal/core/addressbook"
	"github.com/dep2p/go-addrbook/internal/core/eventbus"
	"github.com/dep2p/go-addrbook/internal/core/metrics"
	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：EventBus → Metrics → AddressBook。
func buildFxApp(o *options, b *Book) (*fx.App, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		// 配置与身份注入
		fx.Supply(o.config),
		fx.Provide(func() crypto.PubKey { return o.pubKey }),

		eventbus.Module(),
		metrics.Module(),
		addressbook.Module(),
	}

	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	modules = append(modules,
		fx.Invoke(injectBookComponents(b)),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}

// bookInjectParams Book 组件注入参数
type bookInjectParams struct {
	fx.In

	AddressBook pkgif.AddressBook
	Handler     pkgif.LifecycleHandler
	EventBus    pkgif.EventBus
	Metrics     *metrics.PeerMetrics
}

// injectBookComponents 把 Fx 构建的组件注入 Book
func injectBookComponents(b *Book) func(bookInjectParams) {
	return func(p bookInjectParams) {
		b.AddressBook = p.AddressBook
		b.LifecycleHandler = p.Handler
		b.bus = p.EventBus
		b.metrics = p.Metrics
	}
}
