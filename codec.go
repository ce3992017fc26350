package tokenledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Canonical signatures of the ledger interface.
const (
	TransferSignature            = "transfer(address,uint256)"
	MintSignature                = "mint(address,uint256)"
	TransferEventSignature       = "Transfer(address,address,uint256)"
	InsufficientBalanceSignature = "InsufficientBalance()"
)

// Call layout constants.
const (
	// SelectorSize is the size of a function selector.
	SelectorSize = 4

	// CallSize is the size of a two-word call: selector, address, amount.
	CallSize = SelectorSize + 2*WordSize

	// MaxTopics is the maximum number of topics per event.
	MaxTopics = 3
)

// Selector identifies an operation by the first 4 bytes of the keccak256 hash
// of its canonical signature.
type Selector [SelectorSize]byte

// NewSelector derives the selector of a canonical signature.
func NewSelector(signature string) Selector {
	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(signature))[:SelectorSize])
	return sel
}

// String returns the signature for known selectors and hex otherwise.
func (s Selector) String() string {
	switch s {
	case TransferSelector:
		return TransferSignature
	case MintSelector:
		return MintSignature
	}
	return hexutil.Encode(s[:])
}

var (
	// TransferSelector is 0xa9059cbb.
	TransferSelector = NewSelector(TransferSignature)

	// MintSelector is 0x40c10f19.
	MintSelector = NewSelector(MintSignature)

	// InsufficientBalanceSelector is 0xf4d678b8.
	InsufficientBalanceSelector = NewSelector(InsufficientBalanceSignature)

	// TransferEventTopic is the first topic of every Transfer event.
	TransferEventTopic = crypto.Keccak256Hash([]byte(TransferEventSignature))
)

// CallArgs holds the decoded arguments of transfer and mint.
type CallArgs struct {
	To     common.Address
	Amount *uint256.Int
}

// Event is a log record ready to be handed to Host.DepositEvent.
type Event struct {
	Topics []common.Hash
	Data   []byte
}

// Size returns the number of bytes the event occupies once staged.
func (e Event) Size() int {
	return len(e.Topics)*WordSize + len(e.Data)
}

// Codec is the encoding strategy of a contract variant. It fixes the width of
// amounts on the wire and in storage.
type Codec interface {
	// Name identifies the codec in logs.
	Name() string

	// Width is the number of bytes an amount occupies in storage.
	Width() int

	// MaxAmount is the largest representable amount.
	MaxAmount() *uint256.Int

	// DecodeCall splits call data into a selector and its arguments.
	DecodeCall(data []byte) (Selector, CallArgs, error)

	// DecodeAmount reads a stored amount.
	DecodeAmount(stored []byte) *uint256.Int

	// EncodeAmount produces the stored form of an amount.
	EncodeAmount(v *uint256.Int) []byte

	// EncodeWord produces the 32-byte output form of an amount, as used in
	// event data.
	EncodeWord(v *uint256.Int) [WordSize]byte

	// EncodeTransfer builds the Transfer(from, to, value) event.
	EncodeTransfer(from, to common.Address, value *uint256.Int) (Event, error)

	// EncodeError returns the revert payload for a business-rule failure.
	EncodeError(err error) []byte
}

// readSelector checks that data can hold a selector and returns it.
func readSelector(data []byte) (Selector, error) {
	var sel Selector
	if len(data) < SelectorSize {
		return sel, ErrCallDataTooShort
	}
	copy(sel[:], data[:SelectorSize])
	return sel, nil
}

// leftPad32 places addr in the low bytes of a word.
func leftPad32(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}

// AmountWord returns v as a 32-byte big-endian word.
func AmountWord(v *uint256.Int) [WordSize]byte {
	return v.Bytes32()
}

// lowBytes returns the last n bytes of b, left padding with zeros if b is
// shorter.
func lowBytes(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	return common.LeftPadBytes(b, n)
}
