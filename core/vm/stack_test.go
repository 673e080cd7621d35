package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))
	require.Equal(t, 3, st.len())

	a := st.pop()
	b := st.pop()
	c := st.pop()
	assert.Equal(t, uint256.NewInt(3), &a)
	assert.Equal(t, uint256.NewInt(2), &b)
	assert.Equal(t, uint256.NewInt(1), &c)
	assert.Equal(t, 0, st.len())
}

func TestStackDup(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(10))
	st.push(uint256.NewInt(20))
	st.dup(2) // duplicate the 2nd item from the top (the 10)

	require.Equal(t, 3, st.len())
	assert.Equal(t, uint256.NewInt(10), st.peek())
}

func TestStackSwap(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.swap(2)

	assert.Equal(t, uint256.NewInt(1), st.peek())
	assert.Equal(t, uint256.NewInt(2), &st.data[0])
}

func TestStackBack(t *testing.T) {
	st := newstack()
	defer returnStack(st)

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))

	assert.Equal(t, uint256.NewInt(3), st.Back(0))
	assert.Equal(t, uint256.NewInt(2), st.Back(1))
	assert.Equal(t, uint256.NewInt(1), st.Back(2))
}
