package tokenledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrCallDataTooShort indicates the call data cannot hold a selector.
	ErrCallDataTooShort = errors.New("tokenledger: call data too short")

	// ErrCallDataTooLarge indicates the call data exceeds the call buffer.
	ErrCallDataTooLarge = errors.New("tokenledger: call data exceeds buffer capacity")

	// ErrUnknownSelector indicates the selector matches no ledger operation.
	ErrUnknownSelector = errors.New("tokenledger: unknown function selector")

	// ErrMalformedArguments indicates the arguments could not be decoded.
	ErrMalformedArguments = errors.New("tokenledger: malformed call arguments")

	// ErrInsufficientBalance indicates the caller cannot cover a transfer.
	ErrInsufficientBalance = errors.New("tokenledger: insufficient balance")

	// ErrOutOfMemory indicates the arena budget was exhausted.
	ErrOutOfMemory = errors.New("tokenledger: arena exhausted")

	// ErrAmountOverflow indicates a balance would exceed the codec's maximum amount.
	ErrAmountOverflow = errors.New("tokenledger: amount overflow")

	// ErrReentrantCall indicates Call was entered while another call was in progress.
	ErrReentrantCall = errors.New("tokenledger: call already in progress")
)

// TrapError is an unrecoverable abort of a call. Nothing the call did is kept.
type TrapError struct {
	Selector Selector
	Err      error
}

func (e *TrapError) Error() string {
	if e.Selector == (Selector{}) {
		return fmt.Sprintf("tokenledger: trap: %v", e.Err)
	}
	return fmt.Sprintf("tokenledger: trap in %s: %v", e.Selector, e.Err)
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// RevertError is a business-rule failure reported back to the caller with an
// encoded error payload.
type RevertError struct {
	Selector Selector
	Data     []byte
	Err      error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("tokenledger: revert in %s (0x%x): %v", e.Selector, e.Data, e.Err)
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panic during a call.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tokenledger: panic: %v", e.Value)
}

// IsTrap reports whether err is, or wraps, a TrapError.
func IsTrap(err error) bool {
	var trap *TrapError
	return errors.As(err, &trap)
}

// IsRevert reports whether err is, or wraps, a RevertError.
func IsRevert(err error) bool {
	var revert *RevertError
	return errors.As(err, &revert)
}
