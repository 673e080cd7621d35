// Copyright 2015 The evmcore Authors
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

// Package runtime is the module's single external entry point (spec §6): it
// assembles a root frame from a code blob plus transaction/block/state
// tuples and drives it through the interpreter, translating the outcome
// into a plain result record.
package runtime

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/state"
	"github.com/probeum/evmcore/core/types"
	"github.com/probeum/evmcore/core/vm"
)

// AccountInput is one entry of the `state` mapping: address-bytes to
// (nonce, balance-bytes, code-bytes).
type AccountInput struct {
	Address common.Address
	Nonce   uint64
	Balance []byte
	Code    []byte
}

// TxInput carries the tx-shaped tuple: the addresses as common.Address
// values, every other field a big-endian byte sequence.
type TxInput struct {
	To       common.Address
	From     common.Address
	Origin   common.Address
	GasPrice []byte
	Value    []byte
	Calldata []byte
}

// BlockInput carries the block-shaped tuple: Coinbase as a common.Address,
// GasLimit as a uint64, every other field a big-endian byte sequence.
type BlockInput struct {
	BaseFee    []byte
	Coinbase   common.Address
	Timestamp  []byte
	Number     []byte
	Difficulty []byte
	GasLimit   uint64
	ChainID    []byte
}

// Result is the entry point's return record.
type Result struct {
	Stack   []*uint256.Int // top-first order
	Logs    []*types.Log
	Success bool // true for Success/Halt, false for Revert
	Ret     []byte
}

// beWord converts a big-endian byte slice to a uint256.Int, treating a nil
// or empty slice as zero.
func beWord(b []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(b)
}

// Execute is the module's sole entry point (spec §6): it builds a StateDB
// from accounts, constructs the root Contract from tx/code, and runs it to
// completion through a fresh EVM/interpreter pair.
func Execute(code []byte, tx TxInput, block BlockInput, accounts []AccountInput) Result {
	statedb := state.New()
	for _, a := range accounts {
		statedb.CreateAccount(a.Address)
		statedb.SetNonce(a.Address, a.Nonce)
		statedb.AddBalance(a.Address, new(big.Int).SetBytes(a.Balance))
		statedb.SetCode(a.Address, a.Code)
	}

	blockCtx := vm.BlockContext{
		Coinbase:    block.Coinbase,
		BlockNumber: beWord(block.Number),
		Time:        beWord(block.Timestamp),
		Difficulty:  beWord(block.Difficulty),
		GasLimit:    block.GasLimit,
		BaseFee:     beWord(block.BaseFee),
		ChainID:     beWord(block.ChainID),
	}
	txCtx := vm.TxContext{
		Origin:   tx.Origin,
		GasPrice: beWord(tx.GasPrice),
	}

	evm := vm.NewEVM(blockCtx, txCtx, statedb)

	value := beWord(tx.Value)
	if !statedb.Exist(tx.To) {
		statedb.CreateAccount(tx.To)
		statedb.SetCode(tx.To, code)
	}
	contract := vm.NewContract(tx.From, tx.To, value, code, statedb.GetCodeHash(tx.To), tx.Calldata)

	ret, err := evm.Interpreter().Run(contract, tx.Calldata, false)

	bottomFirst := evm.Interpreter().LastStack()
	topFirst := make([]*uint256.Int, len(bottomFirst))
	for i, w := range bottomFirst {
		w := w
		topFirst[len(bottomFirst)-1-i] = &w
	}

	return Result{
		Stack:   topFirst,
		Logs:    statedb.Logs(),
		Success: err == nil,
		Ret:     ret,
	}
}
