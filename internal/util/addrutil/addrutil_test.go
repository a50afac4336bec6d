package addrutil

import (
	"crypto/rand"
	"testing"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randPeer(t *testing.T) peer.ID {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	id, err := peer.IDFromPublicKey(pub)
	require.NoError(t, err)
	return id
}

func TestNormalize(t *testing.T) {
	id := randPeer(t)
	addr := ma.StringCast("/ip4/1.1.1.1/tcp/3333")

	full := Normalize(addr, id)
	assert.Equal(t, "/ip4/1.1.1.1/tcp/3333/p2p/"+id.String(), full.String())
	assert.True(t, HasPeerID(full))

	// 幂等
	assert.True(t, Normalize(full, id).Equal(full))

	// 已带其他节点后缀时不改写
	other := randPeer(t)
	foreign := Normalize(addr, other)
	assert.True(t, Normalize(foreign, id).Equal(foreign))
}

func TestSplitPeer(t *testing.T) {
	id := randPeer(t)
	addr := ma.StringCast("/ip4/1.1.1.1/tcp/3333")

	got, transport, err := SplitPeer(Normalize(addr, id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.True(t, transport.Equal(addr))

	got, transport, err = SplitPeer(addr)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.True(t, transport.Equal(addr))

	_, _, err = SplitPeer(nil)
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestBuildFullAddr(t *testing.T) {
	id := randPeer(t)
	other := randPeer(t)
	addr := ma.StringCast("/ip4/1.1.1.1/tcp/3333")

	full, err := BuildFullAddr(addr, id)
	require.NoError(t, err)
	assert.True(t, full.Equal(Normalize(addr, id)))

	same, err := BuildFullAddr(full, id)
	require.NoError(t, err)
	assert.True(t, same.Equal(full))

	_, err = BuildFullAddr(full, other)
	assert.ErrorIs(t, err, ErrPeerMismatch)
}

func TestParseFullAddr(t *testing.T) {
	id := randPeer(t)

	full, err := ParseFullAddr("/ip4/2.2.2.2/udp/4001/quic-v1", id)
	require.NoError(t, err)
	assert.True(t, HasPeerID(full))

	_, err = ParseFullAddr("", id)
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = ParseFullAddr("not-a-multiaddr", id)
	assert.Error(t, err)
}

func TestIsLoopback(t *testing.T) {
	cases := map[string]bool{
		"/ip4/127.0.0.1/tcp/1":      true,
		"/ip4/127.8.8.8/tcp/1":      true,
		"/ip4/1.1.1.1/tcp/1":        false,
		"/ip4/192.168.1.10/tcp/1":   false,
		"/ip6/::1/tcp/1":            true,
		"/ip6/2001:db8::1/tcp/1":    true,
		"/dns4/example.com/tcp/443": true,
	}
	for s, want := range cases {
		assert.Equal(t, want, IsLoopback(ma.StringCast(s)), s)
	}
	assert.True(t, IsLoopback(nil))
}
