package types

import (
	"fmt"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              AddressSource - 地址来源
// ============================================================================

// AddressSource 地址来源
//
// 同一地址被多次添加时保留第一次写入的来源。
type AddressSource int

const (
	// SourceLocalDiscovery 本地网络发现（mDNS）
	SourceLocalDiscovery AddressSource = iota
	// SourceRoutingTable 路由表发现（Kademlia）
	SourceRoutingTable
	// SourcePeer 对端上报或连接时观察到的地址
	SourcePeer
	// SourceUser 用户配置
	SourceUser
)

// String 返回地址来源的字符串表示
func (s AddressSource) String() string {
	switch s {
	case SourceLocalDiscovery:
		return "mdns"
	case SourceRoutingTable:
		return "kad"
	case SourcePeer:
		return "peer"
	case SourceUser:
		return "user"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (s AddressSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *AddressSource) UnmarshalText(text []byte) error {
	src, err := ParseAddressSource(string(text))
	if err != nil {
		return err
	}
	*s = src
	return nil
}

// ParseAddressSource 解析地址来源名称
func ParseAddressSource(name string) (AddressSource, error) {
	switch strings.ToLower(name) {
	case "mdns":
		return SourceLocalDiscovery, nil
	case "kad":
		return SourceRoutingTable, nil
	case "peer":
		return SourcePeer, nil
	case "user":
		return SourceUser, nil
	default:
		return 0, fmt.Errorf("unknown address source %q", name)
	}
}

// AddressEntry 地址及其来源
type AddressEntry struct {
	Addr   ma.Multiaddr
	Source AddressSource
}
