package state

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/types"
)

var addr1 = common.Address{0x01}

func TestCreateAccountAndExist(t *testing.T) {
	s := New()
	assert.False(t, s.Exist(addr1))
	s.CreateAccount(addr1)
	assert.True(t, s.Exist(addr1))
}

func TestBalanceAddSub(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(100))
	assert.Equal(t, big.NewInt(100), s.GetBalance(addr1))
	s.SubBalance(addr1, big.NewInt(40))
	assert.Equal(t, big.NewInt(60), s.GetBalance(addr1))
}

func TestNonceAndCode(t *testing.T) {
	s := New()
	s.SetNonce(addr1, 7)
	assert.Equal(t, uint64(7), s.GetNonce(addr1))

	s.SetCode(addr1, []byte{0x60, 0x01})
	assert.Equal(t, []byte{0x60, 0x01}, s.GetCode(addr1))
	assert.Equal(t, 2, s.GetCodeSize(addr1))
}

func TestGetCodeHashDistinguishesNoAccountFromEmptyCode(t *testing.T) {
	s := New()
	require.Equal(t, common.Hash{}, s.GetCodeHash(addr1), "no account yet: zero hash")

	s.CreateAccount(addr1)
	empty := s.GetCodeHash(addr1)
	assert.NotEqual(t, common.Hash{}, empty, "account exists with no code: keccak256(\"\"), not the zero hash")
}

func TestStorageSetZeroDeletes(t *testing.T) {
	s := New()
	key := common.Hash{0x01}
	val := common.Hash{0x02}
	s.SetState(addr1, key, val)
	assert.Equal(t, val, s.GetState(addr1, key))

	s.SetState(addr1, key, common.Hash{})
	assert.Equal(t, common.Hash{}, s.GetState(addr1, key))
}

func TestSelfDestructRemovesAccount(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(50))
	s.SelfDestruct(addr1)
	assert.False(t, s.Exist(addr1), "SELFDESTRUCT must delete the account record outright")
	assert.Equal(t, big.NewInt(0), s.GetBalance(addr1), "a deleted account reads back as empty")
	assert.True(t, s.Destructed(addr1))
}

func TestRevertToSnapshotUndoesBalanceNonceCode(t *testing.T) {
	s := New()
	s.AddBalance(addr1, big.NewInt(10))
	s.SetNonce(addr1, 1)
	s.SetCode(addr1, []byte{0x01})

	snap := s.Snapshot()

	s.AddBalance(addr1, big.NewInt(90))
	s.SetNonce(addr1, 2)
	s.SetCode(addr1, []byte{0x02, 0x03})

	require.Equal(t, big.NewInt(100), s.GetBalance(addr1))
	require.Equal(t, uint64(2), s.GetNonce(addr1))

	s.RevertToSnapshot(snap)

	assert.Equal(t, big.NewInt(10), s.GetBalance(addr1))
	assert.Equal(t, uint64(1), s.GetNonce(addr1))
	assert.Equal(t, []byte{0x01}, s.GetCode(addr1))
}

func TestRevertToSnapshotUndoesSelfDestruct(t *testing.T) {
	s := New()
	key := common.Hash{0x01}
	s.SetState(addr1, key, common.Hash{0xaa})
	s.AddBalance(addr1, big.NewInt(50))
	s.SetNonce(addr1, 3)

	snap := s.Snapshot()
	s.SelfDestruct(addr1)
	require.False(t, s.Exist(addr1))

	s.RevertToSnapshot(snap)

	// The whole prior account record comes back, not just a flag.
	require.True(t, s.Exist(addr1), "revert must restore the deleted account")
	assert.Equal(t, common.Hash{0xaa}, s.GetState(addr1, key))
	assert.Equal(t, big.NewInt(50), s.GetBalance(addr1))
	assert.Equal(t, uint64(3), s.GetNonce(addr1))
	// Destructed is a permanent process-lifetime record independent of
	// reverts (see its doc comment), so it stays true even though the
	// account itself came back.
	assert.True(t, s.Destructed(addr1))
}

func TestRevertToSnapshotUndoesCreateAccount(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	s.CreateAccount(addr1)
	require.True(t, s.Exist(addr1))

	s.RevertToSnapshot(snap)
	assert.False(t, s.Exist(addr1))
}

func TestNestedSnapshotsRevertIndependently(t *testing.T) {
	s := New()
	s.SetNonce(addr1, 1)

	outer := s.Snapshot()
	s.SetNonce(addr1, 2)
	inner := s.Snapshot()
	s.SetNonce(addr1, 3)

	s.RevertToSnapshot(inner)
	assert.Equal(t, uint64(2), s.GetNonce(addr1))

	s.RevertToSnapshot(outer)
	assert.Equal(t, uint64(1), s.GetNonce(addr1))
}

func TestAddLogAndLogs(t *testing.T) {
	s := New()
	want := &types.Log{Address: addr1, Topics: []common.Hash{{0x01}}, Data: []byte("hi")}
	s.AddLog(want)

	require.Len(t, s.Logs(), 1)
	if diff := cmp.Diff(want, s.Logs()[0]); diff != "" {
		t.Errorf("logged entry mismatch (-want +got):\n%s", diff)
	}
}
