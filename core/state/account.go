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

package state

import "math/big"

// stateAccount is a single account's flat in-memory record: balance, nonce,
// code, and that account's storage slots (spec §3's world state and
// storage). Unlike go-ethereum's stateObject there is no trie node behind
// it; StateDB.accounts is the entire backing store.
type stateAccount struct {
	balance *big.Int
	nonce   uint64
	code    []byte
	storage map[[32]byte][32]byte
}

func newStateAccount() *stateAccount {
	return &stateAccount{
		balance: new(big.Int),
		storage: make(map[[32]byte][32]byte),
	}
}

func (a *stateAccount) copy() *stateAccount {
	cpy := &stateAccount{
		balance: new(big.Int).Set(a.balance),
		nonce:   a.nonce,
		code:    append([]byte(nil), a.code...),
		storage: make(map[[32]byte][32]byte, len(a.storage)),
	}
	for k, v := range a.storage {
		cpy.storage[k] = v
	}
	return cpy
}
