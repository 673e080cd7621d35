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

// Contract represents the one executing frame's relationship to its own
// code and calling context: which address it runs as, who called it, with
// what value, input, and code.
type Contract struct {
	CallerAddress common.Address
	caller        common.Address
	self          common.Address

	Code     []byte
	CodeHash common.Hash
	Input    []byte

	value *uint256.Int
}

// NewContract returns a new contract ready to be executed as self, called
// by caller, carrying value and input.
func NewContract(caller, self common.Address, value *uint256.Int, code []byte, codeHash common.Hash, input []byte) *Contract {
	return &Contract{
		CallerAddress: caller,
		caller:        caller,
		self:          self,
		Code:          code,
		CodeHash:      codeHash,
		Input:         input,
		value:         value,
	}
}

func (c *Contract) Caller() common.Address  { return c.caller }
func (c *Contract) Address() common.Address { return c.self }
func (c *Contract) Value() *uint256.Int     { return c.value }

// GetOp returns the n'th element in the contract's byte array, or STOP when
// n is past the end of the code (mirrors go-ethereum's convention of
// treating code as implicitly STOP-padded).
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// validJumpdest reports whether dest is a valid JUMP/JUMPI target in this
// contract's code. The bitmap is sourced from cache, which keys its entries
// by code hash so repeated calls into the same deployed code across many
// frames reuse one analysis.
func (c *Contract) validJumpdest(dest *uint256.Int, cache *jumpdestCache) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	bits, err := cache.bitmap(c.Code)
	if err != nil {
		return false
	}
	return validJumpdest(c.Code, udest, bits)
}
