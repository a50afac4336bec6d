package addressbook

import (
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-addrbook/pkg/types"
)

// addrSet 按插入顺序保存的地址集合
//
// 以地址的二进制编码为键，先写入的来源不会被覆盖。
type addrSet struct {
	order   []string
	entries map[string]types.AddressEntry
}

func newAddrSet() *addrSet {
	return &addrSet{entries: make(map[string]types.AddressEntry)}
}

func addrKey(addr ma.Multiaddr) string {
	return string(addr.Bytes())
}

// insert 添加地址，已存在时返回 false
func (s *addrSet) insert(addr ma.Multiaddr, src types.AddressSource) bool {
	k := addrKey(addr)
	if _, ok := s.entries[k]; ok {
		return false
	}
	s.entries[k] = types.AddressEntry{Addr: addr, Source: src}
	s.order = append(s.order, k)
	return true
}

// remove 删除地址，不存在时返回 false
func (s *addrSet) remove(addr ma.Multiaddr) bool {
	k := addrKey(addr)
	if _, ok := s.entries[k]; !ok {
		return false
	}
	delete(s.entries, k)
	for i, o := range s.order {
		if o == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *addrSet) contains(addr ma.Multiaddr) bool {
	_, ok := s.entries[addrKey(addr)]
	return ok
}

func (s *addrSet) len() int {
	return len(s.order)
}

func (s *addrSet) addrs() []ma.Multiaddr {
	out := make([]ma.Multiaddr, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k].Addr)
	}
	return out
}

func (s *addrSet) list() []types.AddressEntry {
	out := make([]types.AddressEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}
