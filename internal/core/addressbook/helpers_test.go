package addressbook

import (
	"crypto/rand"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-addrbook/internal/core/metrics"
	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/types"
)

func randKey(t *testing.T) crypto.PubKey {
	t.Helper()
	_, pub, err := crypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	return pub
}

func randPeer(t *testing.T) peer.ID {
	t.Helper()
	id, err := peer.IDFromPublicKey(randKey(t))
	require.NoError(t, err)
	return id
}

type testBook struct {
	*AddressBook
	sub     pkgif.Subscription
	metrics *metrics.PeerMetrics
	clock   *clock.Mock
}

func newTestBook(t *testing.T, cfg Config) *testBook {
	t.Helper()
	m := metrics.NewPeerMetrics(metrics.DefaultConfig())
	clk := clock.NewMock()
	ab, err := New(cfg, randKey(t), nil, m, clk)
	require.NoError(t, err)
	t.Cleanup(func() { ab.Close() })
	return &testBook{AddressBook: ab, sub: ab.Subscribe(), metrics: m, clock: clk}
}

// drain 取出订阅中所有已排队的事件
func (tb *testBook) drain() []types.Event {
	var out []types.Event
	for {
		evt, ok := tb.sub.TryNext()
		if !ok {
			return out
		}
		out = append(out, evt)
	}
}
