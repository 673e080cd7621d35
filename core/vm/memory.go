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

// Memory implements a simple memory model for the EVM interpreter: a
// logically infinite, zero-filled byte array materialised lazily and grown
// to the next 32-byte boundary on demand. It never shrinks within a frame.
type Memory struct {
	store []byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Resize grows the memory so that it can hold at least `size` bytes,
// rounded up to the next multiple of 32. It never shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	target := toWordSize(size) * 32
	if uint64(cap(m.store)) >= target {
		m.store = m.store[:target]
		return
	}
	grown := make([]byte, target)
	copy(grown, m.store)
	m.store = grown
}

// toWordSize rounds size up to the nearest multiple of 32 and returns the
// number of 32-byte words.
func toWordSize(size uint64) uint64 {
	if size > (1<<64-1)-31 {
		return (1<<64 - 1) / 32
	}
	return (size + 31) / 32
}

// calcMemSize64 returns the end offset (off+size) needed to cover a region
// described by off/size Words, and whether that computation overflows a
// uint64 (surfaced to the caller as ErrIntegerOverflow per spec §7).
func calcMemSize64(off, size *uint256.Int) (uint64, bool) {
	if !size.IsUint64() {
		return 0, true
	}
	return calcMemSize64WithUint(off, size.Uint64())
}

func calcMemSize64WithUint(off *uint256.Int, size64 uint64) (uint64, bool) {
	if size64 == 0 {
		return 0, false
	}
	if !off.IsUint64() {
		return 0, true
	}
	offset64 := off.Uint64()
	total := offset64 + size64
	return total, total < offset64
}

// Set sets offset + size to value.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 sets the 32 bytes starting at offset to the big-endian value of
// val, left zero-padding val if needed.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("invalid memory: store empty")
	}
	b32 := val.Bytes32()
	copy(m.store[offset:offset+32], b32[:])
}

// GetCopy returns offset + size as a new byte slice.
func (m *Memory) GetCopy(offset, size int64) (cpy []byte) {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		cpy = make([]byte, size)
		copy(cpy, m.store[offset:offset+size])
		return
	}
	return
}

// GetPtr returns the offset + size bytes without copying; callers must not
// retain the slice across further memory writes.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if len(m.store) > int(offset) {
		return m.store[offset : offset+size]
	}
	return nil
}

// Len returns the length of the backing slice.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the backing slice.
func (m *Memory) Data() []byte { return m.store }

// GetBytes32 reads the 32-byte word at offset, zero-padded if it would
// overrun the materialised length (this should not occur if a prior
// Resize accounted for the read, but is defensive for direct callers).
func (m *Memory) GetBytes32(offset uint64) []byte {
	out := common.RightPadBytes(nil, 32)
	if offset >= uint64(len(m.store)) {
		return out
	}
	end := offset + 32
	if end > uint64(len(m.store)) {
		end = uint64(len(m.store))
	}
	copy(out, m.store[offset:end])
	return out
}
