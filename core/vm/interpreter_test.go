package vm

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/types"
)

// fakeStateDB is the minimal StateDB good enough to drive the interpreter
// end to end without pulling in the core/state package.
type fakeStateDB struct {
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	code     map[common.Address][]byte
	exists   map[common.Address]bool
	storage  map[common.Address]map[common.Hash]common.Hash
	logs     []*types.Log
}

func newFakeStateDB() *fakeStateDB {
	return &fakeStateDB{
		balances: make(map[common.Address]*big.Int),
		nonces:   make(map[common.Address]uint64),
		code:     make(map[common.Address][]byte),
		exists:   make(map[common.Address]bool),
		storage:  make(map[common.Address]map[common.Hash]common.Hash),
	}
}

func (f *fakeStateDB) GetBalance(addr common.Address) *big.Int {
	if b, ok := f.balances[addr]; ok {
		return b
	}
	return new(big.Int)
}
func (f *fakeStateDB) AddBalance(addr common.Address, amount *big.Int) {
	f.balances[addr] = new(big.Int).Add(f.GetBalance(addr), amount)
}
func (f *fakeStateDB) SubBalance(addr common.Address, amount *big.Int) {
	f.balances[addr] = new(big.Int).Sub(f.GetBalance(addr), amount)
}
func (f *fakeStateDB) GetNonce(addr common.Address) uint64       { return f.nonces[addr] }
func (f *fakeStateDB) SetNonce(addr common.Address, nonce uint64) { f.nonces[addr] = nonce }
func (f *fakeStateDB) GetCode(addr common.Address) []byte        { return f.code[addr] }
func (f *fakeStateDB) SetCode(addr common.Address, code []byte)  { f.code[addr] = code }
func (f *fakeStateDB) GetCodeSize(addr common.Address) int       { return len(f.code[addr]) }
func (f *fakeStateDB) GetCodeHash(addr common.Address) common.Hash {
	if !f.exists[addr] {
		return common.Hash{}
	}
	return common.Hash{0x01}
}
func (f *fakeStateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	return f.storage[addr][key]
}
func (f *fakeStateDB) SetState(addr common.Address, key, value common.Hash) {
	if f.storage[addr] == nil {
		f.storage[addr] = make(map[common.Hash]common.Hash)
	}
	f.storage[addr][key] = value
}
func (f *fakeStateDB) Exist(addr common.Address) bool    { return f.exists[addr] }
func (f *fakeStateDB) CreateAccount(addr common.Address) { f.exists[addr] = true }
func (f *fakeStateDB) SelfDestruct(addr common.Address) {
	delete(f.balances, addr)
	delete(f.code, addr)
	delete(f.exists, addr)
}
func (f *fakeStateDB) AddLog(log *types.Log)             { f.logs = append(f.logs, log) }
func (f *fakeStateDB) Logs() []*types.Log                { return f.logs }
func (f *fakeStateDB) Snapshot() int                     { return 0 }
func (f *fakeStateDB) RevertToSnapshot(int)              {}

func newTestEVM() *EVM {
	return NewEVM(BlockContext{}, TxContext{}, newFakeStateDB())
}

// PUSH1 0x03, JUMP, JUMPDEST, PUSH1 0x01, STOP: jumps straight to the
// JUMPDEST at index 3 and leaves 0x01 on the stack (spec §8 scenario).
func TestRunJumpToJumpdestLeavesExpectedStack(t *testing.T) {
	code := []byte{byte(PUSH1), 0x03, byte(JUMP), byte(JUMPDEST), byte(PUSH1), 0x01, byte(STOP)}
	evm := newTestEVM()
	contract := NewContract(common.Address{}, common.Address{}, new(uint256.Int), code, common.Hash{}, nil)

	ret, err := evm.Interpreter().Run(contract, nil, false)
	require.NoError(t, err)
	assert.Empty(t, ret)

	stack := evm.Interpreter().LastStack()
	require.Len(t, stack, 1)
	assert.Equal(t, uint256.NewInt(1), &stack[0])
}

// Jumping to a non-JUMPDEST byte must abort the frame.
func TestRunInvalidJumpDestinationReverts(t *testing.T) {
	code := []byte{byte(PUSH1), 0x05, byte(JUMP), byte(PUSH1), 0x01, byte(STOP)}
	evm := newTestEVM()
	contract := NewContract(common.Address{}, common.Address{}, new(uint256.Int), code, common.Hash{}, nil)

	_, err := evm.Interpreter().Run(contract, nil, false)
	assert.Error(t, err)
	assert.Empty(t, evm.Interpreter().LastStack(), "a reverted frame's stack is cleared")
}

// PUSH1 1, PUSH1 2, ADD, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN:
// computes 1+2, stores it at memory offset 0, and returns the 32-byte word.
func TestRunAddStoreReturn(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x02,
		byte(ADD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm := newTestEVM()
	contract := NewContract(common.Address{}, common.Address{}, new(uint256.Int), code, common.Hash{}, nil)

	ret, err := evm.Interpreter().Run(contract, nil, false)
	require.NoError(t, err)
	require.Len(t, ret, 32)
	assert.Equal(t, byte(3), ret[31])
	assert.Empty(t, evm.Interpreter().LastStack(), "RETURN halts with an empty stack here")
}

// PUSH1 0x2a, PUSH1 0, MSTORE, PUSH1 1, PUSH1 0x1f, REVERT: stores a
// non-zero byte in memory and reverts, carrying that revert data back out
// of Run rather than discarding it (the bug this test guards against).
func TestRunRevertPropagatesReturnData(t *testing.T) {
	revertCode := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x1f,
		byte(REVERT),
	}
	evm := newTestEVM()
	contract := NewContract(common.Address{}, common.Address{}, new(uint256.Int), revertCode, common.Hash{}, nil)

	ret, err := evm.Interpreter().Run(contract, nil, false)
	assert.Equal(t, ErrExecutionReverted, err)
	require.Len(t, ret, 1)
	assert.Equal(t, byte(0x2a), ret[0])
	assert.Empty(t, evm.Interpreter().LastStack())
}

// An unknown opcode byte must fail closed rather than silently no-op.
func TestRunInvalidOpcode(t *testing.T) {
	code := []byte{0xfe, byte(STOP)} // 0xfe (INVALID) has no handler in the table
	evm := newTestEVM()
	contract := NewContract(common.Address{}, common.Address{}, new(uint256.Int), code, common.Hash{}, nil)

	_, err := evm.Interpreter().Run(contract, nil, false)
	require.Error(t, err)
	var invalidOp *ErrInvalidOpCode
	assert.ErrorAs(t, err, &invalidOp)
}

// CALL into a target that runs ADD and RETURNs the result, verifying the
// sub-call orchestrator round-trips a child frame's return data.
func TestCallSubFrameReturnsData(t *testing.T) {
	evm := newTestEVM()
	callee := common.Address{0x02}
	calleeCode := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x02,
		byte(ADD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm.StateDB.CreateAccount(callee)
	evm.StateDB.SetCode(callee, calleeCode)

	caller := NewContract(common.Address{}, common.Address{0x01}, new(uint256.Int), nil, common.Hash{}, nil)
	ret, err := evm.Call(caller, callee, nil, new(uint256.Int))
	require.NoError(t, err)
	require.Len(t, ret, 32)
	assert.Equal(t, byte(3), ret[31])
}

// Exceeding the call depth limit fails the sub-call without running it.
func TestCallDepthLimitEnforced(t *testing.T) {
	evm := newTestEVM()
	evm.depth = MaxCallDepth + 1
	caller := NewContract(common.Address{}, common.Address{0x01}, new(uint256.Int), nil, common.Hash{}, nil)

	_, err := evm.Call(caller, common.Address{0x02}, nil, new(uint256.Int))
	assert.Equal(t, ErrDepth, err)
}
