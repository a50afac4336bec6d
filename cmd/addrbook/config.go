package main

import (
	"strings"

	"github.com/dep2p/go-addrbook/config"
)

// ============================================================================
//                              环境变量覆盖（CLI 专用）
// ============================================================================

// 环境变量名（均使用 ADDRBOOK_ 前缀）
const (
	envPrefix           = "ADDRBOOK_"
	envNodeName         = "NODE_NAME"
	envEnableLoopback   = "ENABLE_LOOPBACK"
	envPruneAddresses   = "PRUNE_ADDRESSES"
	envMetricsNamespace = "METRICS_NAMESPACE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) {
	if v := getenv(envPrefix + envNodeName); v != "" {
		cfg.AddressBook.NodeName = v
	}
	if v := getenv(envPrefix + envEnableLoopback); v != "" {
		cfg.AddressBook.EnableLoopback = parseBool(v)
	}
	if v := getenv(envPrefix + envPruneAddresses); v != "" {
		cfg.AddressBook.PruneAddresses = parseBool(v)
	}
	if v := getenv(envPrefix + envMetricsNamespace); v != "" {
		cfg.Metrics.Namespace = v
	}
	if v := getenv(envPrefix + envLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(envPrefix + envLogFormat); v != "" {
		cfg.Log.Format = v
	}
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
