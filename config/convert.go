package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "address_book": {"enable_loopback": true},
//	  "metrics": {"namespace": "node"},
//	  "log": {"level": "debug", "format": "json"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func ToJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// LoadFile 从文件加载并验证配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// CloneConfig 克隆配置
//
// 创建配置的深拷贝，用于安全地修改配置而不影响原始配置。
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}

	cloned := *cfg
	if cfg.AddressBook.KnownPeers != nil {
		cloned.AddressBook.KnownPeers = make([]KnownPeer, len(cfg.AddressBook.KnownPeers))
		for i, kp := range cfg.AddressBook.KnownPeers {
			kp.Addrs = append([]string(nil), kp.Addrs...)
			cloned.AddressBook.KnownPeers[i] = kp
		}
	}
	return &cloned
}
