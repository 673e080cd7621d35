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

package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/probeum/evmcore/common"
)

// HashLength is the length in bytes of a Keccak-256 digest.
const HashLength = 32

// KeccakState wraps sha3.state. In addition to the usual hash methods, it
// also supports Read to get a variable amount of output and Reset to reset
// the state by doing soft reset, i.e. preserving the absorbed state which is
// faster than creating a new instance of the hash from scratch.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState.
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

var keccakStatePool = sync.Pool{
	New: func() interface{} { return NewKeccakState() },
}

// HashData hashes the provided data using the KeccakState and leaves the
// result in b.
func HashData(kh KeccakState, data []byte) (b common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(b[:])
	return b
}

// Keccak256 calculates and returns the Keccak256 hash of the input data,
// concatenating all of its arguments.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := keccakStatePool.Get().(KeccakState)
	defer keccakStatePool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := keccakStatePool.Get().(KeccakState)
	defer keccakStatePool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// CreateAddress derives the address of a newly created contract from the
// sender address and its nonce, using the simplified (non-RLP) scheme this
// implementation requires: keccak256(sender || nonce_bigendian)[12:32].
func CreateAddress(sender common.Address, nonce uint64) common.Address {
	nonceBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		nonceBytes[i] = byte(nonce)
		nonce >>= 8
	}
	return common.BytesToAddress(Keccak256(sender.Bytes(), nonceBytes)[12:])
}
