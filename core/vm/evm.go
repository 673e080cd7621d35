// Copyright 2014 The evmcore Authors
// This file is part of the evmcore library.
//
// The evmcore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcore library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/types"
	"github.com/probeum/evmcore/crypto"
)

// MaxCallDepth bounds the sub-call recursion. Spec §5 leaves this
// unenforced by the reference but notes production EVMs cap it at 1024;
// this implementation mirrors that (see DESIGN.md open-question log).
const MaxCallDepth = 1024

// StateDB is the interface the interpreter requires of the world state and
// storage (C6/C7): balance/nonce/code access and mutation, per-address
// storage slots, snapshotting for sub-call commit/revert, and log
// accumulation.
type StateDB interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int
	GetCodeHash(common.Address) common.Hash

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	Exist(common.Address) bool
	CreateAccount(common.Address)
	SelfDestruct(common.Address)

	AddLog(*types.Log)
	Logs() []*types.Log

	Snapshot() int
	RevertToSnapshot(int)
}

// BlockContext carries block-level data immutable for the whole top-level
// invocation (spec §3's Block context).
type BlockContext struct {
	Coinbase    common.Address
	BlockNumber *uint256.Int
	Time        *uint256.Int
	Difficulty  *uint256.Int
	GasLimit    uint64
	BaseFee     *uint256.Int
	ChainID     *uint256.Int
}

// TxContext carries the per-frame tx-shaped data immutable within one
// invocation (spec §3's Transaction context). Origin is inherited
// unchanged through the whole call tree; GasPrice rides along for the
// GASPRICE opcode. CALLVALUE reads the executing Contract's value instead.
type TxContext struct {
	Origin   common.Address
	GasPrice *uint256.Int
}

// EVM is the sub-call orchestrator (C11): it owns the single StateDB for
// the lifetime of the top-level call and recursively invokes the
// interpreter (C10) for CALL/CALLCODE/DELEGATECALL/STATICCALL/CREATE.
type EVM struct {
	Context   BlockContext
	TxContext TxContext
	StateDB   StateDB

	interpreter *EVMInterpreter
	depth       int
}

// NewEVM returns a new EVM bound to statedb with the given block/tx
// context.
func NewEVM(blockCtx BlockContext, txCtx TxContext, statedb StateDB) *EVM {
	evm := &EVM{
		Context:   blockCtx,
		TxContext: txCtx,
		StateDB:   statedb,
	}
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

// Interpreter returns evm's interpreter (used by the runtime entry point to
// execute the root frame).
func (evm *EVM) Interpreter() *EVMInterpreter { return evm.interpreter }

// run executes contract's code as a (possibly nested) frame and returns its
// outcome: ret is the frame's return blob, err is nil on Success/Halt and
// non-nil on Revert (ErrExecutionReverted or any other error kind).
func (evm *EVM) run(contract *Contract, input []byte, readOnly bool) ([]byte, error) {
	return evm.interpreter.Run(contract, input, readOnly)
}

// Call implements the CALL sub-call variant: to becomes the new frame's
// ADDRESS, caller's own address becomes CALLER, value is transferred from
// caller to to before the child runs.
func (evm *EVM) Call(caller *Contract, to common.Address, input []byte, value *uint256.Int) (ret []byte, err error) {
	if evm.depth > MaxCallDepth {
		return nil, ErrDepth
	}
	if !value.IsZero() && !evm.canTransfer(caller.Address(), value) {
		return nil, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()
	if !evm.StateDB.Exist(to) {
		evm.StateDB.CreateAccount(to)
	}
	evm.transfer(caller.Address(), to, value)

	code := evm.StateDB.GetCode(to)
	codeHash := evm.StateDB.GetCodeHash(to)
	child := NewContract(caller.Address(), to, value, code, codeHash, input)
	ret, err = evm.run(child, input, evm.interpreter.readOnly)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, err
}

// CallCode implements CALLCODE: runs to's code but keeps the calling
// contract's own address and storage as the execution context, and keeps
// the calling contract as CALLER of the child frame too (unlike
// DELEGATECALL, which preserves the grandparent's caller/value).
func (evm *EVM) CallCode(caller *Contract, to common.Address, input []byte, value *uint256.Int) (ret []byte, err error) {
	if evm.depth > MaxCallDepth {
		return nil, ErrDepth
	}
	if !value.IsZero() && !evm.canTransfer(caller.Address(), value) {
		return nil, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	code := evm.StateDB.GetCode(to)
	codeHash := evm.StateDB.GetCodeHash(to)
	child := NewContract(caller.Address(), caller.Address(), value, code, codeHash, input)
	ret, err = evm.run(child, input, evm.interpreter.readOnly)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, err
}

// DelegateCall implements DELEGATECALL: runs to's code in the calling
// frame's own address/storage context, and inherits CALLER and CALLVALUE
// unchanged from the parent frame.
func (evm *EVM) DelegateCall(caller *Contract, to common.Address, input []byte) (ret []byte, err error) {
	if evm.depth > MaxCallDepth {
		return nil, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	code := evm.StateDB.GetCode(to)
	codeHash := evm.StateDB.GetCodeHash(to)
	child := NewContract(caller.Caller(), caller.Address(), caller.Value(), code, codeHash, input)
	ret, err = evm.run(child, input, evm.interpreter.readOnly)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, err
}

// StaticCall implements STATICCALL: like CALL with a zero value transfer,
// but forces read-only true for the child frame (and, by the interpreter's
// sticky readOnly flag, for its entire sub-tree).
func (evm *EVM) StaticCall(caller *Contract, to common.Address, input []byte) (ret []byte, err error) {
	if evm.depth > MaxCallDepth {
		return nil, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	code := evm.StateDB.GetCode(to)
	codeHash := evm.StateDB.GetCodeHash(to)
	child := NewContract(caller.Address(), to, new(uint256.Int), code, codeHash, input)
	ret, err = evm.run(child, input, true)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
	}
	return ret, err
}

// Create implements the CREATE sub-call variant (spec §4.10): the derived
// address uses the simplified scheme keccak256(sender || nonce)[12:32]
// (spec §9's explicit, non-RLP deviation), and on success the child's
// return blob becomes the new account's code.
func (evm *EVM) Create(caller *Contract, initCode []byte, value *uint256.Int) (ret []byte, addr common.Address, returnData []byte, err error) {
	if evm.depth > MaxCallDepth {
		return nil, common.Address{}, nil, ErrDepth
	}
	if !value.IsZero() && !evm.canTransfer(caller.Address(), value) {
		return nil, common.Address{}, nil, ErrInsufficientBalance
	}
	nonce := evm.StateDB.GetNonce(caller.Address())
	evm.StateDB.SetNonce(caller.Address(), nonce+1)
	addr = crypto.CreateAddress(caller.Address(), nonce)

	if evm.StateDB.Exist(addr) {
		return nil, common.Address{}, nil, ErrContractAddressCollision
	}
	snapshot := evm.StateDB.Snapshot()
	evm.StateDB.CreateAccount(addr)
	evm.transfer(caller.Address(), addr, value)

	child := NewContract(caller.Address(), addr, value, initCode, common.Hash{}, nil)
	ret, err = evm.run(child, nil, false)
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		return ret, common.Address{}, ret, err
	}
	evm.StateDB.SetCode(addr, ret)
	return ret, addr, ret, nil
}

func (evm *EVM) canTransfer(from common.Address, amount *uint256.Int) bool {
	balance := evm.StateDB.GetBalance(from)
	return balance.Cmp(amount.ToBig()) >= 0
}

func (evm *EVM) transfer(from, to common.Address, amount *uint256.Int) {
	if amount.IsZero() {
		return
	}
	big := amount.ToBig()
	evm.StateDB.SubBalance(from, big)
	evm.StateDB.AddBalance(to, big)
}
