package types

import (
	"hash/fnv"

	"github.com/holiman/bloomfilter/v2"
)

// bloomM and bloomK pick a false-positive rate suitable for a single
// invocation's worth of logs; this is a diagnostic aid, not a consensus
// structure, so the exact rate is not load-bearing.
const (
	bloomM = 2048
	bloomK = 3
)

// CreateBloom derives a bloom filter over the emitting addresses and topics
// of logs, mirroring go-ethereum's per-receipt logs bloom without being
// part of any consensus-critical encoding (this core has no block context
// of its own beyond a single call, per spec).
func CreateBloom(logs []*Log) (*bloomfilter.Filter, error) {
	filter, err := bloomfilter.New(bloomM, bloomK)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		addBloomItem(filter, l.Address.Bytes())
		for _, topic := range l.Topics {
			addBloomItem(filter, topic.Bytes())
		}
	}
	return filter, nil
}

// BloomLookup reports whether data's address/topic is (probably) present
// in filter.
func BloomLookup(filter *bloomfilter.Filter, data []byte) bool {
	h := fnv.New64a()
	h.Write(data)
	return filter.Contains(h)
}

func addBloomItem(filter *bloomfilter.Filter, data []byte) {
	h := fnv.New64a()
	h.Write(data)
	filter.Add(h)
}
