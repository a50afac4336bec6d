// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.AddressBook.EnableLoopback = true
//	cfg.Log.Level = "debug"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
//
//	// 从文件加载
//	cfg, err := config.LoadFile("addrbook.json")
package config

// Config 是 go-addrbook 的完整配置结构
//
// 配置按照功能模块组织：
//   - AddressBook: 地址簿行为（回环过滤、地址裁剪、已知节点）
//   - Metrics: prometheus 指标
//   - Log: 日志级别与格式
type Config struct {
	// AddressBook 地址簿配置
	AddressBook AddressBookConfig `json:"address_book"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		AddressBook: DefaultAddressBookConfig(),
		Metrics:     DefaultMetricsConfig(),
		Log:         DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.AddressBook.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
