package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/evmcore/common"
)

func TestKeccak256Deterministic(t *testing.T) {
	a := Keccak256([]byte("hello"))
	b := Keccak256([]byte("hello"))
	assert.Equal(t, a, b)
	assert.Len(t, a, HashLength)
}

func TestKeccak256DiffersOnInput(t *testing.T) {
	a := Keccak256([]byte("hello"))
	b := Keccak256([]byte("world"))
	assert.NotEqual(t, a, b)
}

func TestKeccak256ConcatenatesArguments(t *testing.T) {
	whole := Keccak256([]byte("hello world"))
	split := Keccak256([]byte("hello "), []byte("world"))
	assert.Equal(t, whole, split)
}

func TestKeccak256HashMatchesKeccak256(t *testing.T) {
	data := []byte("matches")
	h := Keccak256Hash(data)
	raw := Keccak256(data)
	assert.Equal(t, common.BytesToHash(raw), h)
}

func TestHashDataMatchesKeccak256(t *testing.T) {
	data := []byte("same state machinery")
	state := NewKeccakState()
	h := HashData(state, data)
	assert.Equal(t, Keccak256(data), h[:])
}

func TestCreateAddressDeterministicAndNonceSensitive(t *testing.T) {
	sender := common.Address{0x01, 0x02, 0x03}

	a1 := CreateAddress(sender, 0)
	a2 := CreateAddress(sender, 0)
	require.Equal(t, a1, a2, "same sender/nonce must derive the same address")

	a3 := CreateAddress(sender, 1)
	assert.NotEqual(t, a1, a3, "different nonces must derive different addresses")

	other := common.Address{0x04, 0x05, 0x06}
	a4 := CreateAddress(other, 0)
	assert.NotEqual(t, a1, a4, "different senders must derive different addresses")
}
