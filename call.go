package tokenledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Call is an encoded ledger call, built on the caller's side.
// Call is immutable - modifier methods return new instances.
type Call struct {
	selector Selector
	to       common.Address
	amount   *uint256.Int
	trailing []byte
}

// NewTransfer builds a transfer(to, amount) call.
func NewTransfer(to common.Address, amount *uint256.Int) *Call {
	return newCall(TransferSelector, to, amount)
}

// NewMint builds a mint(to, amount) call.
func NewMint(to common.Address, amount *uint256.Int) *Call {
	return newCall(MintSelector, to, amount)
}

func newCall(sel Selector, to common.Address, amount *uint256.Int) *Call {
	if amount == nil {
		amount = new(uint256.Int)
	}
	return &Call{
		selector: sel,
		to:       to,
		amount:   new(uint256.Int).Set(amount),
	}
}

// Selector returns the 4-byte function selector.
func (c *Call) Selector() Selector {
	return c.selector
}

// To returns the address argument.
func (c *Call) To() common.Address {
	return c.to
}

// Amount returns a copy of the amount argument.
func (c *Call) Amount() *uint256.Int {
	return new(uint256.Int).Set(c.amount)
}

// WithTrailing appends extra bytes after the encoded arguments. Decoders
// ignore them, so this is mostly useful for exercising buffer limits.
//
// Returns a new Call with the trailing bytes set.
func (c *Call) WithTrailing(extra []byte) *Call {
	clone := *c
	clone.amount = new(uint256.Int).Set(c.amount)
	clone.trailing = common.CopyBytes(extra)
	return &clone
}

// Bytes returns selector ‖ leftPad32(to) ‖ bigEndian32(amount) ‖ trailing.
func (c *Call) Bytes() []byte {
	out := make([]byte, CallSize, CallSize+len(c.trailing))
	copy(out[:SelectorSize], c.selector[:])

	to := leftPad32(c.to)
	copy(out[SelectorSize:SelectorSize+WordSize], to[:])

	amount := AmountWord(c.amount)
	copy(out[SelectorSize+WordSize:CallSize], amount[:])

	return append(out, c.trailing...)
}

// TransferCall encodes transfer(to, amount).
func TransferCall(to common.Address, amount *uint256.Int) []byte {
	return NewTransfer(to, amount).Bytes()
}

// MintCall encodes mint(to, amount).
func MintCall(to common.Address, amount *uint256.Int) []byte {
	return NewMint(to, amount).Bytes()
}
