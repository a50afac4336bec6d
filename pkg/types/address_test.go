package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressSource_JSON(t *testing.T) {
	type wrapper struct {
		Source AddressSource `json:"source"`
	}

	data, err := json.Marshal(wrapper{Source: SourceRoutingTable})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"kad"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"source":"user"}`), &w))
	assert.Equal(t, SourceUser, w.Source)

	assert.Error(t, json.Unmarshal([]byte(`{"source":"carrier-pigeon"}`), &w))
}

func TestAddressSource_String(t *testing.T) {
	assert.Equal(t, "mdns", SourceLocalDiscovery.String())
	assert.Equal(t, "peer", SourcePeer.String())
	assert.Equal(t, "unknown(9)", AddressSource(9).String())
}
