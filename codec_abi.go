package tokenledger

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// LedgerABI is the interface of the ledger in Solidity JSON ABI form.
const LedgerABI = `[
	{
		"name": "transfer",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "mint",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "Transfer",
		"type": "event",
		"anonymous": false,
		"inputs": [
			{"name": "from", "type": "address", "indexed": true},
			{"name": "to", "type": "address", "indexed": true},
			{"name": "value", "type": "uint256", "indexed": false}
		]
	},
	{
		"name": "InsufficientBalance",
		"type": "error",
		"inputs": []
	}
]`

// ABIWidth is the storage width of a full-width amount.
const ABIWidth = WordSize

// ABICodec is the full-width codec. Calls and events go through go-ethereum's
// ABI encoder; amounts are 256-bit and stored as 32 big-endian bytes.
type ABICodec struct {
	abi abi.ABI
}

// NewABICodec creates the full-width codec over LedgerABI.
func NewABICodec() *ABICodec {
	return &ABICodec{abi: MustParseABI(LedgerABI)}
}

// ABI returns the parsed ledger ABI.
func (c *ABICodec) ABI() abi.ABI {
	return c.abi
}

// Name returns "abi256".
func (c *ABICodec) Name() string {
	return "abi256"
}

// Width returns 32.
func (c *ABICodec) Width() int {
	return ABIWidth
}

// MaxAmount returns 2^256-1.
func (c *ABICodec) MaxAmount() *uint256.Int {
	return new(uint256.Int).Set(MaxUint256)
}

// DecodeCall looks the selector up in the ABI and unpacks the arguments.
func (c *ABICodec) DecodeCall(data []byte) (Selector, CallArgs, error) {
	sel, err := readSelector(data)
	if err != nil {
		return sel, CallArgs{}, err
	}

	method, err := c.abi.MethodById(sel[:])
	if err != nil {
		return sel, CallArgs{}, ErrUnknownSelector
	}

	if len(data) < CallSize {
		return sel, CallArgs{}, ErrMalformedArguments
	}

	values, err := method.Inputs.Unpack(data[SelectorSize:])
	if err != nil {
		return sel, CallArgs{}, fmt.Errorf("%w: %v", ErrMalformedArguments, err)
	}

	to, ok := values[0].(common.Address)
	if !ok {
		return sel, CallArgs{}, fmt.Errorf("%w: argument 0 is %T", ErrMalformedArguments, values[0])
	}
	raw, ok := values[1].(*big.Int)
	if !ok {
		return sel, CallArgs{}, fmt.Errorf("%w: argument 1 is %T", ErrMalformedArguments, values[1])
	}
	amount, overflow := uint256.FromBig(raw)
	if overflow {
		return sel, CallArgs{}, fmt.Errorf("%w: amount exceeds 256 bits", ErrMalformedArguments)
	}

	return sel, CallArgs{To: to, Amount: amount}, nil
}

// DecodeAmount reads a 32-byte stored value.
func (c *ABICodec) DecodeAmount(stored []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(lowBytes(stored, ABIWidth))
}

// EncodeAmount returns v as a 32-byte word.
func (c *ABICodec) EncodeAmount(v *uint256.Int) []byte {
	word := v.Bytes32()
	return word[:]
}

// EncodeWord returns v as a 32-byte word.
func (c *ABICodec) EncodeWord(v *uint256.Int) [WordSize]byte {
	return AmountWord(v)
}

// EncodeTransfer builds the event from the ABI's Transfer definition.
func (c *ABICodec) EncodeTransfer(from, to common.Address, value *uint256.Int) (Event, error) {
	event, ok := c.abi.Events["Transfer"]
	if !ok {
		return Event{}, errors.New("tokenledger: Transfer event missing from ABI")
	}

	indexed, err := abi.MakeTopics([]any{from}, []any{to})
	if err != nil {
		return Event{}, err
	}

	data, err := event.Inputs.NonIndexed().Pack(value.ToBig())
	if err != nil {
		return Event{}, err
	}

	return Event{
		Topics: []common.Hash{event.ID, indexed[0][0], indexed[1][0]},
		Data:   data,
	}, nil
}

// EncodeError returns the ABI error selector for err.
func (c *ABICodec) EncodeError(err error) []byte {
	if !errors.Is(err, ErrInsufficientBalance) {
		return errorDiscriminant(err)
	}
	abiErr, ok := c.abi.Errors["InsufficientBalance"]
	if !ok {
		return errorDiscriminant(err)
	}
	return common.CopyBytes(abiErr.ID[:SelectorSize])
}

// Pack encodes a call to the named ledger method.
func (c *ABICodec) Pack(method string, args ...any) ([]byte, error) {
	return c.abi.Pack(method, args...)
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
