package config

import (
	"fmt"
	"regexp"
)

// metricNamespace 与 prometheus 指标名称规则一致
var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否向注册器注册指标
	// 默认值: true
	Enabled bool `json:"enabled"`

	// Namespace 指标名称前缀，可为空
	Namespace string `json:"namespace,omitempty"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: true,
	}
}

// Validate 验证指标配置的有效性
func (c *MetricsConfig) Validate() error {
	if c.Namespace != "" && !metricNamespace.MatchString(c.Namespace) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, c.Namespace)
	}
	return nil
}
