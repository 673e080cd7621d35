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

package state

import (
	"math/big"

	"github.com/probeum/evmcore/common"
)

// journalEntry is a single reversible mutation applied to a StateDB. Every
// StateDB setter that changes an account appends one before mutating, so a
// sub-call's failure can be undone precisely by replaying the tail of the journal in
// reverse (spec §4.6/§4.7's commit/discard contract). Logs are not
// journalled; RevertToSnapshot truncates them to the count the snapshot
// recorded.
type journalEntry interface {
	revert(*StateDB)
}

type journal struct {
	entries []journalEntry
}

func newJournal() *journal { return &journal{} }

func (j *journal) append(entry journalEntry) { j.entries = append(j.entries, entry) }

func (j *journal) length() int { return len(j.entries) }

// revert undoes every entry recorded since snapshot, most recent first.
func (j *journal) revert(s *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:snapshot]
}

type (
	createAccountChange struct {
		account common.Address
	}
	balanceChange struct {
		account common.Address
		prev    *big.Int
	}
	nonceChange struct {
		account common.Address
		prev    uint64
	}
	codeChange struct {
		account  common.Address
		prevCode []byte
	}
	storageChange struct {
		account  common.Address
		key      common.Hash
		prevalue common.Hash
	}
	// selfDestructChange records the whole account record SELFDESTRUCT
	// deleted, so a revert re-inserts it exactly as it stood (balance,
	// nonce, code, storage) rather than merely flipping a flag.
	selfDestructChange struct {
		account common.Address
		prev    *stateAccount
	}
)

func (ch createAccountChange) revert(s *StateDB) {
	delete(s.accounts, ch.account)
}

func (ch balanceChange) revert(s *StateDB) {
	s.getOrNewAccount(ch.account).balance = ch.prev
}

func (ch nonceChange) revert(s *StateDB) {
	s.getOrNewAccount(ch.account).nonce = ch.prev
}

func (ch codeChange) revert(s *StateDB) {
	s.getOrNewAccount(ch.account).code = ch.prevCode
}

func (ch storageChange) revert(s *StateDB) {
	s.setState(ch.account, ch.key, ch.prevalue)
}

func (ch selfDestructChange) revert(s *StateDB) {
	s.accounts[ch.account] = ch.prev
}
