package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/evmcore/common"
)

func TestCreateBloomContainsEmittedAddressAndTopic(t *testing.T) {
	addr := common.Address{0x01, 0x02}
	topic := common.Hash{0x03, 0x04}
	logs := []*Log{{Address: addr, Topics: []common.Hash{topic}}}

	filter, err := CreateBloom(logs)
	require.NoError(t, err)

	assert.True(t, BloomLookup(filter, addr.Bytes()))
	assert.True(t, BloomLookup(filter, topic.Bytes()))
}

func TestCreateBloomOnEmptyLogs(t *testing.T) {
	filter, err := CreateBloom(nil)
	require.NoError(t, err)
	assert.False(t, BloomLookup(filter, []byte("never added")))
}
