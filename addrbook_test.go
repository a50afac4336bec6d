package addrbook

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-addrbook/config"
	"github.com/dep2p/go-addrbook/pkg/types"
)

func randKey(t *testing.T) crypto.PubKey {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	return pub
}

func newBook(t *testing.T, opts ...Option) *Book {
	t.Helper()
	b, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close(context.Background()) })
	return b
}

// ============================================================================
//                              构造
// ============================================================================

func TestNew_Defaults(t *testing.T) {
	b := newBook(t)

	assert.NotEmpty(t, b.LocalPeer())
	assert.NotNil(t, b.LocalPublicKey())
	assert.True(t, b.LocalPeer().MatchesPublicKey(b.LocalPublicKey()))
	assert.True(t, b.IsConnected(b.LocalPeer()))
	assert.Empty(t, b.Peers())
	assert.NotNil(t, b.EventBus())
	assert.NotNil(t, b.Metrics())
}

func TestNew_WithIdentity(t *testing.T) {
	key := randKey(t)
	b := newBook(t, WithPublicKey(key), WithNodeName("alice"))

	want, err := peer.IDFromPublicKey(key)
	require.NoError(t, err)
	assert.Equal(t, want, b.LocalPeer())
	assert.Equal(t, "alice", b.LocalNodeName())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithPublicKey(nil))
	assert.ErrorIs(t, err, ErrNilPublicKey)

	_, err = New(WithConfig(nil))
	assert.ErrorIs(t, err, ErrNilConfig)

	_, err = New(WithKnownPeer(""))
	assert.ErrorIs(t, err, ErrEmptyPeerID)

	_, err = New(WithKnownPeer("not-a-peer", "/ip4/1.2.3.4/tcp/1"))
	assert.Error(t, err)

	_, err = New(WithLogLevel("loud"))
	assert.Error(t, err)

	_, err = New(WithClock(nil))
	assert.Error(t, err)
}

func TestNew_KnownPeers(t *testing.T) {
	id, err := peer.IDFromPublicKey(randKey(t))
	require.NoError(t, err)

	b := newBook(t, WithKnownPeer(id.String(), "/ip4/1.2.3.4/tcp/4001", "/ip4/5.6.7.8/tcp/4001"))

	assert.Equal(t, []peer.ID{id}, b.Peers())
	info, ok := b.Info(id)
	require.True(t, ok)
	require.Len(t, info.Addresses, 2)
	for _, e := range info.Addresses {
		assert.Equal(t, types.SourceUser, e.Source)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addrbook.json")
	data := `{"address_book": {"node_name": "from-file", "enable_loopback": true}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	b := newBook(t, WithConfigFile(path))
	assert.Equal(t, "from-file", b.LocalNodeName())

	// 回环地址被接受
	id, err := peer.IDFromPublicKey(randKey(t))
	require.NoError(t, err)
	b.AddAddress(id, ma.StringCast("/ip4/127.0.0.1/tcp/1"), types.SourceUser)
	assert.Len(t, b.AddrsOf(id), 1)
}

func TestNew_WithConfigCopied(t *testing.T) {
	cfg := config.NewConfig()
	b := newBook(t, WithConfig(cfg), WithNodeName("override"))

	assert.Equal(t, "override", b.LocalNodeName())
	assert.Empty(t, cfg.AddressBook.NodeName)
}

// ============================================================================
//                              端到端
// ============================================================================

func TestBook_DriveLifecycle(t *testing.T) {
	mock := clock.NewMock()
	b := newBook(t, WithClock(mock))
	sub := b.Subscribe()

	id, err := peer.IDFromPublicKey(randKey(t))
	require.NoError(t, err)
	addr := ma.StringCast("/ip4/1.1.1.1/tcp/4001")
	cp := types.DialerPoint(addr)

	b.AddAddress(id, addr, types.SourceRoutingTable)
	b.Dial(id)
	action, ok := b.Poll()
	require.True(t, ok)
	assert.Equal(t, types.DialPeer{Peer: id, Condition: types.DialConditionDisconnected}, action)

	b.OnConnectionEstablished(id, cp)
	conns := b.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, mock.Now(), conns[0].Since)

	b.SetRTT(id, 50*time.Millisecond, nil)
	b.Notify(types.EvtBootstrapped{})
	b.OnConnectionClosed(id, cp)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	want := []types.Event{
		types.EvtDiscovered{Peer: id},
		types.EvtConnectionEstablished{Peer: id, Conn: cp},
		types.EvtConnected{Peer: id},
		types.EvtNewInfo{Peer: id},
		types.EvtBootstrapped{},
		types.EvtConnectionClosed{Peer: id, Conn: cp},
		types.EvtDisconnected{Peer: id},
	}
	for _, w := range want {
		evt, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, w, evt)
	}
}

func TestBook_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := newBook(t, WithRegisterer(reg), WithMetricsNamespace("node"))

	b.OnNewListener(1)
	n, err := testutil.GatherAndCount(reg, "node_peers_listeners")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, float64(1), testutil.ToFloat64(b.Metrics().Listeners))

	// 已注册，再次注册返回 AlreadyRegisteredError
	var are prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(b.RegisterMetrics(reg), &are))
}

func TestBook_Close(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	sub := b.Subscribe()

	require.NoError(t, b.Close(context.Background()))
	require.NoError(t, b.Close(context.Background()))
	assert.True(t, b.IsClosed())

	_, err = sub.Next(context.Background())
	assert.Error(t, err)
}
