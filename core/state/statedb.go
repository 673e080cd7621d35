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

// Package state is a flat, in-memory stand-in for go-ethereum's trie-backed
// world state: enough of StateDB's surface (balances, nonces, code,
// per-account storage, logs, journalled snapshot/revert) for the
// interpreter's sub-call orchestrator to commit or discard a frame's
// effects, with none of the persistence layer this EVM core has no use for.
package state

import (
	"math/big"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/types"
	"github.com/probeum/evmcore/crypto"
)

type revision struct {
	id           int
	journalIndex int
	logIndex     int
}

// StateDB implements vm.StateDB over a flat map of accounts. It has no
// on-disk backing and no trie: the whole state lives in accounts for the
// life of the process.
type StateDB struct {
	accounts map[common.Address]*stateAccount

	// destructed tracks every address ever SELFDESTRUCTed in this StateDB's
	// lifetime, independent of journal reverts, so callers can report which
	// accounts were torched over a run even across committed sub-calls.
	destructed mapset.Set

	logs []*types.Log

	journal        *journal
	validRevisions []revision
	nextRevisionID int
}

// New returns an empty StateDB with no accounts.
func New() *StateDB {
	return &StateDB{
		accounts:   make(map[common.Address]*stateAccount),
		destructed: mapset.NewSet(),
		journal:    newJournal(),
	}
}

func (s *StateDB) getOrNewAccount(addr common.Address) *stateAccount {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	acc := newStateAccount()
	s.accounts[addr] = acc
	return acc
}

// CreateAccount installs an empty account at addr, overwriting any previous
// account there (mirrors go-ethereum's createObject: a fresh account wipes
// any stale code/storage a prior incarnation at the same address left).
func (s *StateDB) CreateAccount(addr common.Address) {
	s.journal.append(createAccountChange{account: addr})
	s.accounts[addr] = newStateAccount()
}

func (s *StateDB) Exist(addr common.Address) bool {
	_, ok := s.accounts[addr]
	return ok
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	acc, ok := s.accounts[addr]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(acc.balance)
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	acc := s.getOrNewAccount(addr)
	s.journal.append(balanceChange{account: addr, prev: new(big.Int).Set(acc.balance)})
	acc.balance = new(big.Int).Add(acc.balance, amount)
}

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	acc := s.getOrNewAccount(addr)
	s.journal.append(balanceChange{account: addr, prev: new(big.Int).Set(acc.balance)})
	acc.balance = new(big.Int).Sub(acc.balance, amount)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	acc, ok := s.accounts[addr]
	if !ok {
		return 0
	}
	return acc.nonce
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	acc := s.getOrNewAccount(addr)
	s.journal.append(nonceChange{account: addr, prev: acc.nonce})
	acc.nonce = nonce
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	acc, ok := s.accounts[addr]
	if !ok {
		return nil
	}
	return acc.code
}

func (s *StateDB) SetCode(addr common.Address, code []byte) {
	acc := s.getOrNewAccount(addr)
	s.journal.append(codeChange{account: addr, prevCode: acc.code})
	acc.code = code
}

func (s *StateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

// GetCodeHash hashes an existing account's code, even if empty: an account
// seen by the state (by CreateAccount, a value transfer, etc.) but carrying
// no code hashes to keccak256("") rather than the zero hash, matching
// EXTCODEHASH's distinction between "no code" and "no account" (spec §9).
func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	acc, ok := s.accounts[addr]
	if !ok {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(acc.code)
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	acc, ok := s.accounts[addr]
	if !ok {
		return common.Hash{}
	}
	return common.Hash(acc.storage[key])
}

func (s *StateDB) setState(addr common.Address, key, value common.Hash) {
	acc := s.getOrNewAccount(addr)
	if value == (common.Hash{}) {
		delete(acc.storage, key)
		return
	}
	acc.storage[key] = [32]byte(value)
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	acc := s.getOrNewAccount(addr)
	prev := common.Hash(acc.storage[key])
	s.journal.append(storageChange{account: addr, key: key, prevalue: prev})
	s.setState(addr, key, value)
}

// SelfDestruct removes addr's account record outright (spec §3/§4.6: the
// record is deleted on SELFDESTRUCT after its balance has been transferred
// to the beneficiary by the opcode handler). The journal keeps a copy so an
// ancestor's RevertToSnapshot restores the account exactly as it stood.
func (s *StateDB) SelfDestruct(addr common.Address) {
	acc := s.getOrNewAccount(addr)
	s.journal.append(selfDestructChange{account: addr, prev: acc.copy()})
	delete(s.accounts, addr)
	s.destructed.Add(addr)
}

// Destructed reports whether addr has ever been SELFDESTRUCTed in this
// StateDB's lifetime (not reverted by any later RevertToSnapshot affecting
// its destruction journal entry specifically is not tracked separately;
// callers needing exact end-of-run semantics should also check Exist).
func (s *StateDB) Destructed(addr common.Address) bool {
	return s.destructed.Contains(addr)
}

func (s *StateDB) AddLog(log *types.Log) {
	s.logs = append(s.logs, log)
}

func (s *StateDB) Logs() []*types.Log { return s.logs }

// Snapshot records the current journal length and log count under a fresh
// revision id.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id: id, journalIndex: s.journal.length(), logIndex: len(s.logs)})
	return id
}

// RevertToSnapshot undoes every journalled mutation since revid was taken
// and drops every log added since then.
func (s *StateDB) RevertToSnapshot(revid int) {
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revid
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revid {
		panic("state: no such snapshot")
	}
	snapshot := s.validRevisions[idx].journalIndex
	s.journal.revert(s, snapshot)
	s.logs = s.logs[:s.validRevisions[idx].logIndex]
	s.validRevisions = s.validRevisions[:idx]
}
