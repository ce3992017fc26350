package tokenledger

import (
	"maps"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// testHost is a map-backed Host that discards a call's writes and events
// unless the call returned normally.
type testHost struct {
	input   []byte
	caller  common.Address
	storage map[common.Hash][]byte
	events  []Event

	returned   bool
	flags      ReturnFlags
	returnData []byte
	writes     int
}

func newTestHost() *testHost {
	return &testHost{storage: make(map[common.Hash][]byte)}
}

// call runs one call of c and applies the all-or-nothing rule.
func (h *testHost) call(c *Contract, caller common.Address, input []byte) Outcome {
	h.input = input
	h.caller = caller
	h.events = nil
	h.returned = false
	h.flags = 0
	h.returnData = nil

	saved := maps.Clone(h.storage)
	out := c.Call(h)
	if out.Kind != Returned {
		h.storage = saved
		h.events = nil
	}
	return out
}

func (h *testHost) balance(c Codec, addr common.Address) *uint256.Int {
	return NewLedger(h, c).BalanceOf(addr)
}

func (h *testHost) supply(c Codec) *uint256.Int {
	return NewLedger(h, c).TotalSupply()
}

func (h *testHost) CallDataSize() uint32 {
	return uint32(len(h.input))
}

func (h *testHost) CallDataCopy(dst []byte, offset uint32) {
	copy(dst, h.input[offset:])
}

func (h *testHost) GetStorage(key common.Hash) ([]byte, bool) {
	v, ok := h.storage[key]
	return v, ok
}

func (h *testHost) SetStorage(key common.Hash, value []byte) {
	h.writes++
	h.storage[key] = common.CopyBytes(value)
}

func (h *testHost) Caller() common.Address {
	return h.caller
}

func (h *testHost) DepositEvent(topics []common.Hash, data []byte) {
	h.events = append(h.events, Event{
		Topics: append([]common.Hash(nil), topics...),
		Data:   common.CopyBytes(data),
	})
}

func (h *testHost) ReturnValue(flags ReturnFlags, data []byte) {
	h.returned = true
	h.flags = flags
	h.returnData = common.CopyBytes(data)
}

func (h *testHost) HashKeccak256(input []byte) common.Hash {
	return crypto.Keccak256Hash(input)
}

// keccak is a Hasher for tests that only need key derivation.
var keccak = HasherFunc(func(input []byte) common.Hash {
	return crypto.Keccak256Hash(input)
})

var (
	addrA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	addrB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	addrC = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
)

// codecs returns one instance of every codec.
func codecs() []Codec {
	return []Codec{NewPackedCodec(), NewABICodec()}
}
