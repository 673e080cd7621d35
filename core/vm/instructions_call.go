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
	"github.com/holiman/uint256"

	"github.com/probeum/evmcore/common"
)

// opCreate implements the CREATE sub-call orchestrator variant (C11):
// pops value, offset, size (the init-code region), derives the new
// address from the caller's address and nonce (spec §4.10's simplified,
// non-RLP scheme), and installs the child's return data as the new
// account's code on success.
func opCreate(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		value        = scope.Stack.pop()
		offset, size = scope.Stack.pop(), scope.Stack.pop()
	)
	input, err := memRead(scope.Memory, &offset, &size)
	if err != nil {
		return nil, err
	}
	_, addr, returnData, err := interpreter.evm.Create(scope.Contract, input, &value)
	interpreter.returnData = returnData
	if err != nil {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
	return nil, nil
}

func opCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop() // gas: popped and discarded, gas is unbounded (spec §4.10 step 1)
	addr, value, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()

	if interpreter.readOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}
	toAddr := common.BytesToAddress(addr.Bytes())
	args, err := memRead(scope.Memory, &inOffset, &inSize)
	if err != nil {
		return nil, err
	}
	ret, err := interpreter.evm.Call(scope.Contract, toAddr, args, &value)
	return afterCall(interpreter, scope, ret, err, &retOffset, &retSize)
}

func opCallCode(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop() // gas
	addr, value, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()

	toAddr := common.BytesToAddress(addr.Bytes())
	args, err := memRead(scope.Memory, &inOffset, &inSize)
	if err != nil {
		return nil, err
	}
	ret, err := interpreter.evm.CallCode(scope.Contract, toAddr, args, &value)
	return afterCall(interpreter, scope, ret, err, &retOffset, &retSize)
}

func opDelegateCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop() // gas
	addr, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()

	toAddr := common.BytesToAddress(addr.Bytes())
	args, err := memRead(scope.Memory, &inOffset, &inSize)
	if err != nil {
		return nil, err
	}
	ret, err := interpreter.evm.DelegateCall(scope.Contract, toAddr, args)
	return afterCall(interpreter, scope, ret, err, &retOffset, &retSize)
}

func opStaticCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop() // gas
	addr, inOffset, inSize, retOffset, retSize := scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop(), scope.Stack.pop()

	toAddr := common.BytesToAddress(addr.Bytes())
	args, err := memRead(scope.Memory, &inOffset, &inSize)
	if err != nil {
		return nil, err
	}
	ret, err := interpreter.evm.StaticCall(scope.Contract, toAddr, args)
	return afterCall(interpreter, scope, ret, err, &retOffset, &retSize)
}

// afterCall implements the common tail of every CALL-family opcode (spec
// §4.10 step 6): copy the child's return blob into the parent's memory
// (bounded by the written length, never enforcing retSize), record it as
// the last sub-call's return data, and push the outcome flag.
func afterCall(interpreter *EVMInterpreter, scope *ScopeContext, ret []byte, callErr error, retOffset, retSize *uint256.Int) ([]byte, error) {
	interpreter.returnData = ret
	if callErr == nil {
		scope.Stack.push(new(uint256.Int).SetOne())
	} else {
		scope.Stack.push(new(uint256.Int))
	}
	if callErr == nil || callErr == ErrExecutionReverted {
		if err := memWrite(scope.Memory, retOffset, uint64(len(ret)), ret); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// opSelfdestruct implements SELFDESTRUCT (spec §4.10): transfers the
// emitter's entire balance to the popped destination, creating it if
// absent, then deletes the emitter account outright (classic semantics,
// not the post-EIP-6780 send-only behaviour some grounding files show).
func opSelfdestruct(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.pop()
	balance := interpreter.evm.StateDB.GetBalance(scope.Contract.Address())
	dest := common.BytesToAddress(beneficiary.Bytes())
	interpreter.evm.StateDB.AddBalance(dest, balance)
	interpreter.evm.StateDB.SelfDestruct(scope.Contract.Address())
	return nil, errStopToken
}
