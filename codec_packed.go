package tokenledger

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// PackedWidth is the storage width of a fixed-width amount.
const PackedWidth = 16

// PackedCodec is the fixed-width codec. Amounts are 128-bit, read from the low
// 16 bytes of their ABI word and stored as 16 big-endian bytes. All decoding is
// done by slicing the call data at fixed offsets:
//
//	[selector:4][pad:12][to:20][pad:16][amount:16]
type PackedCodec struct{}

// NewPackedCodec creates the fixed-width codec.
func NewPackedCodec() *PackedCodec {
	return &PackedCodec{}
}

// Name returns "packed128".
func (c *PackedCodec) Name() string {
	return "packed128"
}

// Width returns 16.
func (c *PackedCodec) Width() int {
	return PackedWidth
}

// MaxAmount returns 2^128-1.
func (c *PackedCodec) MaxAmount() *uint256.Int {
	return new(uint256.Int).Set(MaxUint128)
}

// DecodeCall decodes transfer and mint calls. Padding bytes are not checked.
func (c *PackedCodec) DecodeCall(data []byte) (Selector, CallArgs, error) {
	sel, err := readSelector(data)
	if err != nil {
		return sel, CallArgs{}, err
	}

	switch sel {
	case TransferSelector, MintSelector:
	default:
		return sel, CallArgs{}, ErrUnknownSelector
	}

	if len(data) < CallSize {
		return sel, CallArgs{}, ErrMalformedArguments
	}

	// Word 1: address in the low 20 bytes
	to := common.BytesToAddress(data[SelectorSize+WordSize-common.AddressLength : SelectorSize+WordSize])

	// Word 2: amount in the low 16 bytes
	amount := new(uint256.Int).SetBytes(data[CallSize-PackedWidth : CallSize])

	return sel, CallArgs{To: to, Amount: amount}, nil
}

// DecodeAmount reads the low 16 bytes of a stored value.
func (c *PackedCodec) DecodeAmount(stored []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(lowBytes(stored, PackedWidth))
}

// EncodeAmount returns v as 16 big-endian bytes.
func (c *PackedCodec) EncodeAmount(v *uint256.Int) []byte {
	word := v.Bytes32()
	out := make([]byte, PackedWidth)
	copy(out, word[WordSize-PackedWidth:])
	return out
}

// EncodeWord returns the low 128 bits of v in a 32-byte word.
func (c *PackedCodec) EncodeWord(v *uint256.Int) [WordSize]byte {
	var word [WordSize]byte
	copy(word[WordSize-PackedWidth:], c.EncodeAmount(v))
	return word
}

// EncodeTransfer lays out the event by hand.
func (c *PackedCodec) EncodeTransfer(from, to common.Address, value *uint256.Int) (Event, error) {
	data := c.EncodeWord(value)

	return Event{
		Topics: []common.Hash{TransferEventTopic, leftPad32(from), leftPad32(to)},
		Data:   data[:],
	}, nil
}

// EncodeError returns the 4-byte discriminant for err.
func (c *PackedCodec) EncodeError(err error) []byte {
	return errorDiscriminant(err)
}

// errorDiscriminant maps a business-rule error to its selector. Unknown errors
// produce an empty payload.
func errorDiscriminant(err error) []byte {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientBalance):
		sel := InsufficientBalanceSelector
		return sel[:]
	}
	return nil
}
