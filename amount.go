package tokenledger

import (
	"github.com/holiman/uint256"
)

var (
	// MaxUint128 is the largest amount of the fixed-width codec.
	MaxUint128 = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

	// MaxUint256 is the largest amount of the full-width codec.
	MaxUint256 = new(uint256.Int).SetAllOne()
)

// SaturatingAdd returns x+y clamped to limit.
func SaturatingAdd(x, y, limit *uint256.Int) *uint256.Int {
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || sum.Gt(limit) {
		return new(uint256.Int).Set(limit)
	}
	return sum
}

// CheckedAdd returns x+y, or ErrAmountOverflow if the sum exceeds limit.
func CheckedAdd(x, y, limit *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || sum.Gt(limit) {
		return nil, ErrAmountOverflow
	}
	return sum, nil
}

// NewAmount converts a uint64 into an amount.
func NewAmount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// MustAmount parses a decimal or 0x-prefixed hex string. It panics on
// malformed input and is meant for constants and tests.
func MustAmount(s string) *uint256.Int {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return uint256.MustFromHex(s)
	}
	return uint256.MustFromDecimal(s)
}
