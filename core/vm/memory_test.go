package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResizeRoundsToWord(t *testing.T) {
	m := NewMemory()
	m.Resize(1)
	assert.Equal(t, 32, m.Len())

	m.Resize(33)
	assert.Equal(t, 64, m.Len())

	// Never shrinks.
	m.Resize(40)
	assert.Equal(t, 64, m.Len())
}

func TestMemorySetAndGet(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	m.Set(0, 4, []byte{0xde, 0xad, 0xbe, 0xef})

	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, m.GetCopy(0, 4))
}

func TestMemorySet32(t *testing.T) {
	m := NewMemory()
	m.Resize(32)
	val := uint256.NewInt(0x1234)
	m.Set32(0, val)

	got := m.GetBytes32(0)
	want := val.Bytes32()
	assert.Equal(t, want[:], got)
}

func TestCalcMemSize64Overflow(t *testing.T) {
	huge := new(uint256.Int).SetAllOne()
	_, overflow := calcMemSize64(uint256.NewInt(1), huge)
	require.True(t, overflow)

	end, overflow := calcMemSize64(uint256.NewInt(4), uint256.NewInt(28))
	require.False(t, overflow)
	assert.Equal(t, uint64(32), end)
}

func TestMemoryGetBytes32PadsPastEnd(t *testing.T) {
	m := NewMemory()
	got := m.GetBytes32(0)
	assert.Equal(t, make([]byte, 32), got)
}
