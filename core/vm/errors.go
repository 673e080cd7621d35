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

package vm

import (
	"errors"
	"fmt"
)

// List of evm execution errors. Every kind in this table corresponds to one
// row of the error-kind design: all of them cause the frame to terminate
// with outcome Revert, except errStopToken/ErrExecutionReverted which carry
// their own outcome handling in the interpreter loop.
var (
	ErrExecutionReverted        = errors.New("execution reverted")
	ErrInsufficientCodeItems    = errors.New("insufficient code items for push")
	ErrInvalidOpcode            = errors.New("invalid opcode")
	ErrNotValidJumpDestination  = errors.New("invalid jump destination")
	ErrIntegerOverflow          = errors.New("integer overflow")
	ErrWriteProtection          = errors.New("write protection")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrDepth                    = errors.New("max call depth exceeded")
	ErrInsufficientBalance      = errors.New("insufficient balance for transfer")
	ErrNoCompatibleInterpreter  = errors.New("no compatible interpreter")

	// errStopToken is an internal sentinel: it unwinds the dispatch loop for
	// STOP/RETURN the same way ErrExecutionReverted unwinds it for REVERT,
	// but the interpreter clears it into a nil error — see Run.
	errStopToken = errors.New("stop token")
)

// ErrStackUnderflow wraps a stack that has too few elements for an
// operation.
type ErrStackUnderflow struct {
	StackLen int
	Required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.StackLen, e.Required)
}

// ErrStackOverflow wraps a stack that has too many elements for an
// operation.
type ErrStackOverflow struct {
	StackLen int
	Limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.StackLen, e.Limit)
}

// ErrInvalidOpCode wraps an invalid opcode byte with its value, for nicer
// diagnostics than the bare ErrInvalidOpcode sentinel.
type ErrInvalidOpCode struct {
	Opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string {
	return fmt.Sprintf("invalid opcode: %s", e.Opcode)
}
