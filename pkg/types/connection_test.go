package types

import (
	"testing"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
)

func TestConnectedPoint_RemoteAddress(t *testing.T) {
	remote := ma.StringCast("/ip4/1.2.3.4/tcp/4001")
	local := ma.StringCast("/ip4/0.0.0.0/tcp/4001")

	dialer := DialerPoint(remote)
	assert.True(t, dialer.IsDialer())
	assert.True(t, dialer.RemoteAddress().Equal(remote))

	listener := ListenerPoint(local, remote)
	assert.False(t, listener.IsDialer())
	assert.True(t, listener.RemoteAddress().Equal(remote))
	assert.Equal(t, "listener", listener.Endpoint.String())
}

func TestListenerID_String(t *testing.T) {
	assert.Equal(t, "listener-7", ListenerID(7).String())
}
