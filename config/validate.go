package config

import (
	"errors"
	"fmt"
)

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("config is nil")

	// ErrEmptyPeerID 已知节点缺少 peer_id
	ErrEmptyPeerID = errors.New("empty peer id")

	// ErrInvalidNamespace 指标命名空间不合法
	ErrInvalidNamespace = errors.New("invalid metrics namespace")

	// ErrInvalidLogFormat 日志格式不合法
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，额外处理 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return ErrNilConfig
	}
	return c.Validate()
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
