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

	"github.com/probeum/evmcore/crypto"
	"github.com/probeum/evmcore/log"
)

// ScopeContext holds the frame-local scratch state a single executing
// opcode needs access to: its stack, its memory, and the contract it is
// running as.
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

// EVMInterpreter is the dispatch loop (C10): it decodes successive opcode
// bytes from a Contract's code and executes their handlers from a single,
// fork-less jump table (gas/EIP scheduling is out of scope, so unlike
// go-ethereum there is exactly one instruction set, not one per fork).
type EVMInterpreter struct {
	evm   *EVM
	table JumpTable

	hasher    crypto.KeccakState
	hasherBuf [32]byte
	jumpdests *jumpdestCache

	readOnly   bool   // whether to throw on state-modifying operations
	returnData []byte // last sub-call's return data, for RETURNDATASIZE/RETURNDATACOPY

	// lastStack holds a snapshot, bottom-first, of the most recently
	// completed Run's stack at termination, for callers (the runtime entry
	// point) that report it top-first alongside the outcome (spec §6).
	lastStack []uint256.Int
}

// NewEVMInterpreter returns a new interpreter bound to evm.
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	return &EVMInterpreter{
		evm:       evm,
		table:     newInstructionSet(),
		jumpdests: newJumpdestCache(),
	}
}

func (in *EVMInterpreter) hash(data []byte) []byte {
	if in.hasher == nil {
		in.hasher = crypto.NewKeccakState()
	}
	in.hasher.Reset()
	in.hasher.Write(data)
	in.hasher.Read(in.hasherBuf[:])
	out := make([]byte, 32)
	copy(out, in.hasherBuf[:])
	return out
}

// Run loops over contract's code starting at pc 0, executing each decoded
// opcode against a fresh ScopeContext until the frame halts, reverts, or
// runs off the end of the code (spec §4.9).
//
// readOnly, once true for this call, is inherited by every opcode in this
// frame (set by a STATICCALL ancestor; see EVM.StaticCall) and is never
// cleared for the remainder of the frame.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	// Make sure the readOnly flag is only set if not already set before and
	// reset to false once the execution returns, in case of a sticky
	// sub-call that set it.
	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	in.returnData = nil
	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op          OpCode
		mem         = NewMemory()
		stack       = newstack()
		scope       = &ScopeContext{Memory: mem, Stack: stack, Contract: contract}
		pc          = uint64(0)
		codeLen     = uint64(len(contract.Code))
		res         []byte
	)
	contract.Input = input
	defer returnStack(stack)

	for pc < codeLen {
		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, &ErrInvalidOpCode{Opcode: op}
		}
		if sLen := stack.len(); sLen < operation.minStack {
			return nil, &ErrStackUnderflow{StackLen: sLen, Required: operation.minStack}
		} else if sLen > operation.maxStack {
			return nil, &ErrStackOverflow{StackLen: sLen, Limit: operation.maxStack}
		}

		res, err = operation.execute(&pc, in, scope)
		if err != nil {
			if err == errStopToken {
				err = nil
			} else {
				log.Debug("frame reverted", "pc", pc, "op", op.String(), "err", err)
			}
			break
		}
		// JUMP/JUMPI handlers fully own pc (target on a taken jump, pc+1 on
		// a JUMPI fallthrough); every other opcode is auto-advanced here,
		// including PUSHn, which has already added its immediate width.
		if !operation.jumps {
			pc++
		}
	}
	if err != nil {
		// Revert clears the frame's stack before returning (spec §7).
		in.lastStack = in.lastStack[:0]
		return res, err
	}
	in.lastStack = append(in.lastStack[:0], stack.Data()...)
	return res, nil
}

// LastStack returns a bottom-first snapshot of the most recently completed
// Run's stack at the moment it terminated.
func (in *EVMInterpreter) LastStack() []uint256.Int { return in.lastStack }
