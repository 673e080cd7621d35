package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// code: PUSH1 0x06, JUMP, JUMPDEST, PUSH1 0x01, STOP
var jumpSample = []byte{byte(PUSH1), 0x06, byte(JUMP), byte(JUMPDEST), byte(PUSH1), 0x01, byte(STOP)}

func TestCodeBitmapMarksPushDataNonCode(t *testing.T) {
	bits, err := codeBitmap(jumpSample)
	require.NoError(t, err)

	assert.False(t, bits.codeSegment(0), "PUSH1 opcode byte itself is marked non-code")
	assert.False(t, bits.codeSegment(1), "PUSH1's immediate operand is non-code")
	assert.True(t, bits.codeSegment(2), "JUMP is a real instruction byte")
	assert.True(t, bits.codeSegment(3), "JUMPDEST is a real instruction byte")
	assert.False(t, bits.codeSegment(5), "the second PUSH1's immediate operand is non-code")
}

func TestValidJumpdest(t *testing.T) {
	bits, err := codeBitmap(jumpSample)
	require.NoError(t, err)

	assert.True(t, validJumpdest(jumpSample, 3, bits))
	assert.False(t, validJumpdest(jumpSample, 2, bits), "JUMP itself is not a JUMPDEST")
	assert.False(t, validJumpdest(jumpSample, 1, bits), "landing inside push-data is rejected")
	assert.False(t, validJumpdest(jumpSample, 100, bits), "out of bounds")
}

func TestJumpdestCacheReusesBitmap(t *testing.T) {
	jc := newJumpdestCache()
	first, err := jc.bitmap(jumpSample)
	require.NoError(t, err)
	second, err := jc.bitmap(jumpSample)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
