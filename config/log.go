package config

import (
	"fmt"

	"github.com/dep2p/go-addrbook/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别：trace/debug/info/warn/error
	// 默认值: info
	Level string `json:"level"`

	// Format 输出格式：text/json
	// 默认值: text
	Format string `json:"format"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: string(log.FormatText),
	}
}

// Validate 验证日志配置的有效性
func (c *LogConfig) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return err
	}
	switch log.Format(c.Format) {
	case "", log.FormatText, log.FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Format)
	}
}

// Apply 按配置安装默认日志 handler
func (c *LogConfig) Apply() error {
	format := log.Format(c.Format)
	if format == "" {
		format = log.FormatText
	}
	return log.Configure(c.Level, format)
}
