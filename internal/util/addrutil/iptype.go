package addrutil

import (
	"net"

	ma "github.com/multiformats/go-multiaddr"
)

// IsLoopback 判断地址在回环过滤中是否应视为回环地址
//
// 只有首个组件为非回环 IPv4 的地址才被视为可路由；
// IPv4 回环地址，以及首个组件不是 IPv4 的地址（IPv6、DNS 等）都返回 true。
func IsLoopback(addr ma.Multiaddr) bool {
	if addr == nil {
		return true
	}
	protos := addr.Protocols()
	if len(protos) == 0 || protos[0].Code != ma.P_IP4 {
		return true
	}
	value, err := addr.ValueForProtocol(ma.P_IP4)
	if err != nil {
		return true
	}
	ip := net.ParseIP(value)
	if ip == nil {
		return true
	}
	return ip.IsLoopback()
}
