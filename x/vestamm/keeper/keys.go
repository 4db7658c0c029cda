package keeper

import (
	"encoding/binary"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x03}

	// StakeKeyPrefix is the prefix for vesting stake store keys
	StakeKeyPrefix = []byte{0x04}
)

// PoolKey returns the store key for a pool
func PoolKey(poolID uint64) []byte {
	key := make([]byte, 0, len(PoolKeyPrefix)+8)
	key = append(key, PoolKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, poolID)
}

// StakePrefix returns the store key prefix covering all stakes of a pool
func StakePrefix(poolID uint64) []byte {
	key := make([]byte, 0, len(StakeKeyPrefix)+8)
	key = append(key, StakeKeyPrefix...)
	return binary.BigEndian.AppendUint64(key, poolID)
}

// StakeKey returns the store key for a vesting stake, ordered by pool then
// deposit ID so per-pool iteration is a prefix scan
func StakeKey(poolID, depositID uint64) []byte {
	return binary.BigEndian.AppendUint64(StakePrefix(poolID), depositID)
}

// PrefixEnd returns the exclusive upper bound for iterating a prefix
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
