// Package main 提供 addrbook 命令行入口
//
// 启动一个独立运行的地址簿，把生命周期事件打印到标准输出，
// 并可选地通过 HTTP 暴露指标与节点快照。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	addrbook "github.com/dep2p/go-addrbook"
	"github.com/dep2p/go-addrbook/config"
	"github.com/dep2p/go-addrbook/pkg/lib/log"
)

var logger = log.Logger("addrbook/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」想怎么跑）
//   JSON 配置文件：持久化配置（已知节点、指标命名空间等）
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径")
	nodeName    = flag.String("name", "", "本节点名称")
	loopback    = flag.Bool("loopback", false, "接受回环地址")
	noPrune     = flag.Bool("no-prune", false, "禁用地址裁剪")
	httpAddr    = flag.String("http", "", "HTTP 监听地址，例如 127.0.0.1:9090（为空则不启动）")
	logLevel    = flag.String("log-level", "", "日志级别 (trace/debug/info/warn/error)")
	quiet       = flag.Bool("quiet", false, "不打印事件")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println("addrbook", addrbook.Version)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	reg := prometheus.NewRegistry()
	book, err := addrbook.New(
		addrbook.WithConfig(cfg),
		addrbook.WithRegisterer(reg),
	)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = book.Close(ctx)
	}()

	fmt.Printf("节点: %s\n", book.LocalPeer())
	if name := book.LocalNodeName(); name != "" {
		fmt.Printf("名称: %s\n", name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*quiet {
		go printEvents(ctx, book)
	}

	if *httpAddr != "" {
		srv := &http.Server{
			Addr:              *httpAddr,
			Handler:           newRouter(book.AddressBook, reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server stopped", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		fmt.Printf("HTTP: http://%s/metrics\n", *httpAddr)
	}

	fmt.Println("地址簿已启动，按 Ctrl+C 退出")
	waitForSignal()
	fmt.Println("\n正在关闭...")
	return nil
}

// loadConfig 加载配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（ADDRBOOK_* 前缀）
//  3. 配置文件
//  4. 默认值
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if isFlagSet("name") {
		cfg.AddressBook.NodeName = *nodeName
	}
	if isFlagSet("loopback") {
		cfg.AddressBook.EnableLoopback = *loopback
	}
	if isFlagSet("no-prune") {
		cfg.AddressBook.PruneAddresses = !*noPrune
	}
	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}

	return cfg, cfg.Validate()
}

// printEvents 打印生命周期事件直到上下文取消或总线关闭
func printEvents(ctx context.Context, book *addrbook.Book) {
	sub := book.Subscribe()
	defer sub.Close()

	for {
		evt, err := sub.Next(ctx)
		if err != nil {
			return
		}
		fmt.Println(describeEvent(evt))
	}
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// waitForSignal 等待退出信号
func waitForSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
}
