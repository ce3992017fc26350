package tokenledger

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// Storage layout, matching the Solidity declaration order
// `uint256 totalSupply; mapping(address => uint256) balances;`.
const (
	// TotalSupplySlot holds the total supply scalar.
	TotalSupplySlot uint64 = 0

	// BalancesSlot is the base slot of the balances mapping.
	BalancesSlot uint64 = 1

	// WordSize is the size of a storage key and of an ABI word.
	WordSize = 32
)

// ScalarKey returns the storage key of a scalar slot: the slot index
// big-endian in the low bytes of a zeroed word.
func ScalarKey(slot uint64) common.Hash {
	var key common.Hash
	binary.BigEndian.PutUint64(key[WordSize-8:], slot)
	return key
}

// MappingKey returns the storage key of the entry for addr in the mapping at
// slot: keccak256(leftPad32(addr) ‖ leftPad32(slot)).
func MappingKey(h Hasher, slot uint64, addr common.Address) common.Hash {
	var input [2 * WordSize]byte
	copy(input[WordSize-common.AddressLength:WordSize], addr[:])
	binary.BigEndian.PutUint64(input[2*WordSize-8:], slot)
	return h.HashKeccak256(input[:])
}

// TotalSupplyKey returns the storage key of the total supply.
func TotalSupplyKey() common.Hash {
	return ScalarKey(TotalSupplySlot)
}

// BalanceKey returns the storage key of addr's balance.
func BalanceKey(h Hasher, addr common.Address) common.Hash {
	return MappingKey(h, BalancesSlot, addr)
}
