// Copyright 2017 The evmcore Authors
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
	lru "github.com/hashicorp/golang-lru"

	"github.com/probeum/evmcore/crypto"
)

// bitvec classifies each byte of a code blob, one bit per code byte plus 32
// trailing bits to absorb overrun from a PUSH32 near the end of code. The
// bit is set for a push opcode byte and its push-data, clear for every
// other byte.
type bitvec []byte

func (bits bitvec) set(pos uint64) {
	bits[pos/8] |= 0x80 >> (pos % 8)
}

// codeSegment reports whether the bit at pos is clear (true): false for a
// push opcode byte and its push-data, true for every other byte.
func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8] & (0x80 >> (pos % 8))) == 0
}

// codeBitmap computes a jumpdest bitmap for code by the algorithm in spec
// §4.5: scan left to right, and for every push opcode mark its immediate
// operand bytes (and the opcode byte itself) as non-code. Unknown opcodes
// are not push opcodes, so the scan passes over them as ordinary
// single-byte instructions; rejecting them is the jump table's job, not
// this analysis's.
func codeBitmap(code []byte) (bitvec, error) {
	bits := make(bitvec, (uint64(len(code))+32+7)/8)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		if !op.IsPush() {
			pc++
			continue
		}
		size := op.PushDataSize()
		for i := 0; i <= size; i++ {
			bits.set(pc + uint64(i))
		}
		pc += uint64(size) + 1
	}
	return bits, nil
}

// jumpdestCache caches computed bitmaps keyed by code hash, per spec §4.5's
// note that implementations may cache the analysis per code blob; here the
// cache outlives a single frame and is shared by every frame run through
// the same EVMInterpreter, following the ethereumproject fork's jumpdests.has(codehash, code, to)
// idiom.
type jumpdestCache struct {
	cache *lru.Cache
}

func newJumpdestCache() *jumpdestCache {
	c, err := lru.New(1024)
	if err != nil {
		panic(err)
	}
	return &jumpdestCache{cache: c}
}

func (jc *jumpdestCache) bitmap(code []byte) (bitvec, error) {
	hash := crypto.Keccak256Hash(code)
	if v, ok := jc.cache.Get(hash); ok {
		return v.(bitvec), nil
	}
	bits, err := codeBitmap(code)
	if err != nil {
		return nil, err
	}
	jc.cache.Add(hash, bits)
	return bits, nil
}

// validJumpdest reports whether dest is a legal jump target within code:
// in bounds, landing on a JUMPDEST byte, and not inside push-data.
func validJumpdest(code []byte, dest uint64, bits bitvec) bool {
	if dest >= uint64(len(code)) {
		return false
	}
	if OpCode(code[dest]) != JUMPDEST {
		return false
	}
	return bits.codeSegment(dest)
}
