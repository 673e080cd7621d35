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

// Package types holds the records produced by a frame's execution: log
// entries and a logs-bloom filter derived from them.
package types

import "github.com/probeum/evmcore/common"

// Log represents a single LOGn emission: the emitting address, its topics
// (0 to 4 words), and the opaque data blob. Logs are invisible to the
// executing program and are ordered as emitted.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}
