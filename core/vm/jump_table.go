// Copyright 2016 The evmcore Authors
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

// executionFunc implements an opcode's behaviour against the interpreter's
// scratch state. pc is mutable: most handlers leave it untouched and rely
// on the interpreter's loop to advance it by one, PUSHn handlers advance it
// by their immediate width, and JUMP/JUMPI set it directly.
type executionFunc func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error)

// operation is the metadata and implementation the interpreter dispatches
// through for a single opcode. Unlike go-ethereum's operation struct, there
// is no gas field: gas is unbounded in this core (spec §1).
type operation struct {
	execute     executionFunc
	minStack    int
	maxStack    int
	halts       bool // true for STOP/RETURN/REVERT/SELFDESTRUCT: terminates the frame
	jumps       bool // true for JUMP/JUMPI: the loop must not auto-advance pc
}

// minSwapStack / minDupStack / maxDupStack express the stack-depth
// requirements for DUPn/SWAPn in terms of n, mirroring go-ethereum's
// generated jump table.
func minSwapStack(n int) int { return minStack(n, n) }
func maxSwapStack(n int) int { return maxStack(n, n) }
func minDupStack(n int) int  { return minStack(n, n+1) }
func maxDupStack(n int) int  { return maxStack(n, n+1) }

func minStack(pops, push int) int {
	return pops
}

func maxStack(pops, push int) int {
	return stackLimit + pops - push
}

// JumpTable is a dense mapping from opcode byte to its operation.
type JumpTable [256]*operation

// newInstructionSet builds the single instruction set this core supports.
// Unlike go-ethereum, there is no per-fork table: gas scheduling and EIP
// activation are explicit Non-goals, so one dense table suffices.
func newInstructionSet() JumpTable {
	var tbl JumpTable

	tbl[STOP] = &operation{execute: opStop, minStack: minStack(0, 0), maxStack: maxStack(0, 0), halts: true}
	tbl[ADD] = &operation{execute: opAdd, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MUL] = &operation{execute: opMul, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SUB] = &operation{execute: opSub, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[DIV] = &operation{execute: opDiv, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SDIV] = &operation{execute: opSdiv, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MOD] = &operation{execute: opMod, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SMOD] = &operation{execute: opSmod, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ADDMOD] = &operation{execute: opAddmod, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[MULMOD] = &operation{execute: opMulmod, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[EXP] = &operation{execute: opExp, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SIGNEXTEND] = &operation{execute: opSignExtend, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[LT] = &operation{execute: opLt, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[GT] = &operation{execute: opGt, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SLT] = &operation{execute: opSlt, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SGT] = &operation{execute: opSgt, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EQ] = &operation{execute: opEq, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ISZERO] = &operation{execute: opIszero, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[AND] = &operation{execute: opAnd, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[OR] = &operation{execute: opOr, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[XOR] = &operation{execute: opXor, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[NOT] = &operation{execute: opNot, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BYTE] = &operation{execute: opByte, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SHL] = &operation{execute: opSHL, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SHR] = &operation{execute: opSHR, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SAR] = &operation{execute: opSAR, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[SHA3] = &operation{execute: opSha3, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[ADDRESS] = &operation{execute: opAddress, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[BALANCE] = &operation{execute: opBalance, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[ORIGIN] = &operation{execute: opOrigin, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLER] = &operation{execute: opCaller, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLVALUE] = &operation{execute: opCallValue, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATALOAD] = &operation{execute: opCallDataLoad, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CALLDATASIZE] = &operation{execute: opCallDataSize, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATACOPY] = &operation{execute: opCallDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0)}
	tbl[CODESIZE] = &operation{execute: opCodeSize, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CODECOPY] = &operation{execute: opCodeCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0)}
	tbl[GASPRICE] = &operation{execute: opGasprice, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[EXTCODESIZE] = &operation{execute: opExtCodeSize, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[EXTCODECOPY] = &operation{execute: opExtCodeCopy, minStack: minStack(4, 0), maxStack: maxStack(4, 0)}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0)}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}

	tbl[BLOCKHASH] = &operation{execute: opBlockhash, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[COINBASE] = &operation{execute: opCoinbase, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[TIMESTAMP] = &operation{execute: opTimestamp, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[NUMBER] = &operation{execute: opNumber, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[DIFFICULTY] = &operation{execute: opDifficulty, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GASLIMIT] = &operation{execute: opGasLimit, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CHAINID] = &operation{execute: opChainID, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[BASEFEE] = &operation{execute: opBaseFee, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}

	tbl[POP] = &operation{execute: opPop, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[MLOAD] = &operation{execute: opMload, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[MSTORE] = &operation{execute: opMstore, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[MSTORE8] = &operation{execute: opMstore8, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[SLOAD] = &operation{execute: opSload, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[SSTORE] = &operation{execute: opSstore, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[JUMP] = &operation{execute: opJump, minStack: minStack(1, 0), maxStack: maxStack(1, 0), jumps: true}
	tbl[JUMPI] = &operation{execute: opJumpi, minStack: minStack(2, 0), maxStack: maxStack(2, 0), jumps: true}
	tbl[PC] = &operation{execute: opPc, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[MSIZE] = &operation{execute: opMsize, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GAS] = &operation{execute: opGas, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[JUMPDEST] = &operation{execute: opJumpdest, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}

	tbl[PUSH0] = &operation{execute: opPush0, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	for i := 0; i < 32; i++ {
		tbl[int(PUSH1)+i] = &operation{execute: makePush(uint64(i + 1)), minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	}
	for i := 1; i <= 16; i++ {
		tbl[int(DUP1)+i-1] = &operation{execute: makeDup(i), minStack: minDupStack(i), maxStack: maxDupStack(i)}
		tbl[int(SWAP1)+i-1] = &operation{execute: makeSwap(i), minStack: minSwapStack(i + 1), maxStack: maxSwapStack(i + 1)}
	}
	for i := 0; i <= 4; i++ {
		tbl[int(LOG0)+i] = &operation{execute: makeLog(i), minStack: minStack(2+i, 0), maxStack: maxStack(2+i, 0)}
	}

	tbl[CREATE] = &operation{execute: opCreate, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[CALL] = &operation{execute: opCall, minStack: minStack(7, 1), maxStack: maxStack(7, 1)}
	tbl[CALLCODE] = &operation{execute: opCallCode, minStack: minStack(7, 1), maxStack: maxStack(7, 1)}
	tbl[RETURN] = &operation{execute: opReturn, minStack: minStack(2, 0), maxStack: maxStack(2, 0), halts: true}
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1)}
	tbl[STATICCALL] = &operation{execute: opStaticCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1)}
	tbl[REVERT] = &operation{execute: opRevert, minStack: minStack(2, 0), maxStack: maxStack(2, 0), halts: true}
	tbl[SELFDESTRUCT] = &operation{execute: opSelfdestruct, minStack: minStack(1, 0), maxStack: maxStack(1, 0), halts: true}

	return tbl
}
