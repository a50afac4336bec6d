// Package addrutil 提供地址规范化与解析工具
//
// 地址簿内部统一使用完整地址（以 /p2p/<PeerID> 结尾）作为键，
// 这样带与不带节点后缀的同一地址会归并为一条记录。
package addrutil

import (
	"errors"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrEmptyAddress 空地址
	ErrEmptyAddress = errors.New("empty address")

	// ErrPeerMismatch 地址中的 /p2p/<PeerID> 与期望的节点不一致
	ErrPeerMismatch = errors.New("address carries a different peer ID")
)

// ============================================================================
//                              完整地址
// ============================================================================

// HasPeerID 检查地址最后一个组件是否为 /p2p/<PeerID>
func HasPeerID(addr ma.Multiaddr) bool {
	if addr == nil {
		return false
	}
	protos := addr.Protocols()
	return len(protos) > 0 && protos[len(protos)-1].Code == ma.P_P2P
}

// Normalize 规范化地址
//
// 若地址不以 /p2p/<PeerID> 结尾，则追加 id 的后缀；否则原样返回。
// 已带后缀的地址不会被改写，即使后缀属于其他节点。
func Normalize(addr ma.Multiaddr, id peer.ID) ma.Multiaddr {
	if addr == nil || HasPeerID(addr) {
		return addr
	}
	suffix, err := ma.NewComponent("p2p", id.String())
	if err != nil {
		return addr
	}
	return addr.Encapsulate(suffix)
}

// BuildFullAddr 构建完整地址并校验已有后缀
//
// 与 Normalize 不同，若地址已经带有其他节点的后缀则返回 ErrPeerMismatch。
func BuildFullAddr(addr ma.Multiaddr, id peer.ID) (ma.Multiaddr, error) {
	if addr == nil || len(addr.Bytes()) == 0 {
		return nil, ErrEmptyAddress
	}
	if HasPeerID(addr) {
		got, _, err := SplitPeer(addr)
		if err != nil {
			return nil, err
		}
		if got != id {
			return nil, fmt.Errorf("%w: want %s, got %s", ErrPeerMismatch, id, got)
		}
		return addr, nil
	}
	return Normalize(addr, id), nil
}

// SplitPeer 拆分完整地址
//
// 返回末尾 /p2p/<PeerID> 中的节点标识和去掉后缀后的可拨号地址。
// 地址不带后缀时返回空 ID 和原地址。
func SplitPeer(addr ma.Multiaddr) (peer.ID, ma.Multiaddr, error) {
	if addr == nil {
		return "", nil, ErrEmptyAddress
	}
	if !HasPeerID(addr) {
		return "", addr, nil
	}
	transport, last := ma.SplitLast(addr)
	id, err := peer.Decode(last.Value())
	if err != nil {
		return "", nil, fmt.Errorf("invalid peer ID in %s: %w", addr, err)
	}
	return id, transport, nil
}

// ParseFullAddr 解析字符串形式的地址，并按 id 规范化
func ParseFullAddr(s string, id peer.ID) (ma.Multiaddr, error) {
	if s == "" {
		return nil, ErrEmptyAddress
	}
	addr, err := ma.NewMultiaddr(s)
	if err != nil {
		return nil, err
	}
	return BuildFullAddr(addr, id)
}
