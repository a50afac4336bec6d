// Package log 提供 go-addrbook 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，按组件输出结构化日志。
// 在 slog 的四个级别之外额外提供 Trace 级别，用于逐事件的细粒度追踪。
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// 日志级别常量
const (
	// LevelTrace 比 Debug 更细的追踪级别
	LevelTrace = slog.LevelDebug - 4
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format 日志输出格式
type Format string

const (
	// FormatText 文本格式（默认）
	FormatText Format = "text"
	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
)

// ============================================================================
//                              全局配置
// ============================================================================

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Configure 按级别和格式安装默认 handler
//
// level 支持 trace/debug/info/warn/error，format 支持 text/json。
func Configure(level string, format Format) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	mu.RLock()
	w := output
	mu.RUnlock()

	slog.SetDefault(slog.New(newHandler(w, lvl, format)))
	return nil
}

// SetOutput 设置日志输出目标，保留 Info 级别文本格式
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
	slog.SetDefault(slog.New(newHandler(w, LevelInfo, FormatText)))
}

// SetLevel 使用指定级别重建默认 logger
func SetLevel(level slog.Level) {
	mu.RLock()
	w := output
	mu.RUnlock()
	slog.SetDefault(slog.New(newHandler(w, level, FormatText)))
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// newHandler 创建 handler，把 Trace 级别渲染为 "TRACE"
func newHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("core/addressbook")
//	logger.Debug("dial failure", "peer", p)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

func (l *LazyLogger) base() *slog.Logger {
	return slog.Default().With("component", l.component)
}

// Trace 输出 Trace 级别日志
func (l *LazyLogger) Trace(msg string, args ...any) {
	l.base().Log(context.Background(), LevelTrace, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.base().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.base().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.base().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.base().Error(msg, args...)
}

// Enabled 判断指定级别是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return slog.Default().Enabled(context.Background(), level)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.base().With(args...)
}

// ============================================================================
//                              工具函数
// ============================================================================

// TruncateID 安全截取 ID 用于日志显示
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}
