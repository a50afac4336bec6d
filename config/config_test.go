package config

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
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

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.AddressBook.EnableLoopback)
	assert.True(t, cfg.AddressBook.PruneAddresses)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

// TestAddressBookConfig 测试地址簿配置
func TestAddressBookConfig(t *testing.T) {
	id := randPeer(t)

	t.Run("With", func(t *testing.T) {
		cfg := DefaultAddressBookConfig().
			WithNodeName("alice").
			WithLoopback(true).
			WithPruning(false)
		assert.Equal(t, "alice", cfg.NodeName)
		assert.True(t, cfg.EnableLoopback)
		assert.False(t, cfg.PruneAddresses)
	})

	t.Run("KnownPeer_Valid", func(t *testing.T) {
		cfg := DefaultAddressBookConfig()
		cfg.KnownPeers = []KnownPeer{{
			PeerID: id.String(),
			Addrs: []string{
				"/ip4/1.2.3.4/tcp/4001",
				"/ip4/1.2.3.4/tcp/4002/p2p/" + id.String(),
			},
		}}
		require.NoError(t, cfg.Validate())

		got, addrs, err := cfg.KnownPeers[0].Resolve()
		require.NoError(t, err)
		assert.Equal(t, id, got)
		require.Len(t, addrs, 2)
		assert.Equal(t, "/ip4/1.2.3.4/tcp/4001/p2p/"+id.String(), addrs[0].String())
	})

	t.Run("KnownPeer_EmptyID", func(t *testing.T) {
		cfg := DefaultAddressBookConfig()
		cfg.KnownPeers = []KnownPeer{{Addrs: []string{"/ip4/1.2.3.4/tcp/1"}}}
		assert.ErrorIs(t, cfg.Validate(), ErrEmptyPeerID)
	})

	t.Run("KnownPeer_BadID", func(t *testing.T) {
		cfg := DefaultAddressBookConfig()
		cfg.KnownPeers = []KnownPeer{{PeerID: "not-a-peer"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("KnownPeer_BadAddr", func(t *testing.T) {
		cfg := DefaultAddressBookConfig()
		cfg.KnownPeers = []KnownPeer{{PeerID: id.String(), Addrs: []string{"garbage"}}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("KnownPeer_ForeignSuffix", func(t *testing.T) {
		other := randPeer(t)
		cfg := DefaultAddressBookConfig()
		cfg.KnownPeers = []KnownPeer{{
			PeerID: id.String(),
			Addrs:  []string{"/ip4/1.2.3.4/tcp/4001/p2p/" + other.String()},
		}}
		assert.Error(t, cfg.Validate())
	})
}

// TestMetricsConfig 测试指标配置
func TestMetricsConfig(t *testing.T) {
	cfg := DefaultMetricsConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Namespace = "node_1"
	assert.NoError(t, cfg.Validate())

	cfg.Namespace = "1-bad"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidNamespace)
}

// TestLogConfig 测试日志配置
func TestLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogFormat)

	cfg = DefaultLogConfig()
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())
}

// TestFromJSON 测试从 JSON 加载
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{
		"address_book": {"enable_loopback": true},
		"log": {"level": "debug"}
	}`))
	require.NoError(t, err)

	assert.True(t, cfg.AddressBook.EnableLoopback)
	// 未出现的字段保留默认值
	assert.True(t, cfg.AddressBook.PruneAddresses)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	_, err = FromJSON([]byte(`{`))
	assert.Error(t, err)
}

// TestToJSON 测试序列化往返
func TestToJSON(t *testing.T) {
	cfg := NewConfig()
	cfg.AddressBook.NodeName = "bob"

	data, err := ToJSON(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"node_name": "bob"`)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	_, err = ToJSON(nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}

// TestLoadFile 测试从文件加载
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"metrics": {"namespace": "n"}}`), 0o600))
	cfg, err := LoadFile(good)
	require.NoError(t, err)
	assert.Equal(t, "n", cfg.Metrics.Namespace)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"log": {"format": "xml"}}`), 0o600))
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, ErrInvalidLogFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// TestCloneConfig 测试深拷贝
func TestCloneConfig(t *testing.T) {
	assert.Nil(t, CloneConfig(nil))

	cfg := NewConfig()
	cfg.AddressBook.KnownPeers = []KnownPeer{{PeerID: "a", Addrs: []string{"x"}}}

	cloned := CloneConfig(cfg)
	cloned.AddressBook.KnownPeers[0].Addrs[0] = "y"
	cloned.Log.Level = "error"

	assert.Equal(t, "x", cfg.AddressBook.KnownPeers[0].Addrs[0])
	assert.Equal(t, "info", cfg.Log.Level)
}

// TestValidateAll 测试 nil 处理
func TestValidateAll(t *testing.T) {
	assert.ErrorIs(t, ValidateAll(nil), ErrNilConfig)
	assert.NoError(t, ValidateAll(NewConfig()))
	assert.Panics(t, func() { MustValidate(nil) })
}
