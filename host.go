package tokenledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// ReturnFlags tag the payload handed to Host.ReturnValue.
type ReturnFlags uint32

const (
	// FlagRevert marks the call as reverted. The host discards the call's writes.
	FlagRevert ReturnFlags = 0x01
)

// Reverted returns true if the revert bit is set.
func (f ReturnFlags) Reverted() bool {
	return f&FlagRevert != 0
}

// Hasher computes the 256-bit digest used for storage key derivation.
type Hasher interface {
	HashKeccak256(input []byte) common.Hash
}

// Host is the capability boundary the contract executes against. It mirrors
// the host functions a contract VM exposes: call data, storage, caller
// identity, event log, and call termination.
type Host interface {
	Hasher

	// CallDataSize returns the length of the current call's input.
	CallDataSize() uint32

	// CallDataCopy copies call data starting at offset into dst.
	CallDataCopy(dst []byte, offset uint32)

	// GetStorage returns the value stored under key. The boolean is false
	// when nothing is stored there.
	GetStorage(key common.Hash) ([]byte, bool)

	// SetStorage stores value under key.
	SetStorage(key common.Hash, value []byte)

	// Caller returns the account invoking the contract.
	Caller() common.Address

	// DepositEvent appends an event to the log. Topics hold at most 3 entries.
	DepositEvent(topics []common.Hash, data []byte)

	// ReturnValue ends the call with the given payload.
	ReturnValue(flags ReturnFlags, data []byte)
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc func(input []byte) common.Hash

// HashKeccak256 calls f(input).
func (f HasherFunc) HashKeccak256(input []byte) common.Hash {
	return f(input)
}
