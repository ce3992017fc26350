package tokenledger

import (
	"errors"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// State is the dispatch state of a Contract.
type State int32

const (
	// Idle is the state between calls.
	Idle State = iota

	// Handling is the state during a call.
	Handling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Handling:
		return "handling"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies how a call ended.
type OutcomeKind uint8

const (
	// Returned is normal completion. Writes and events are kept.
	Returned OutcomeKind = iota

	// Reverted is a business-rule failure. The host discards writes and
	// events but hands the payload to the caller.
	Reverted

	// Trapped is an abort. Nothing is kept and nothing is returned.
	Trapped
)

func (k OutcomeKind) String() string {
	switch k {
	case Returned:
		return "returned"
	case Reverted:
		return "reverted"
	case Trapped:
		return "trapped"
	default:
		return "unknown"
	}
}

// Outcome is the result of one invocation.
type Outcome struct {
	Kind     OutcomeKind
	Selector Selector
	Data     []byte
	Err      error
}

// Contract is the ledger's entry point. It is invoked once per call with the
// host of that call and keeps nothing between calls except its buffers, which
// are reset every time.
type Contract struct {
	codec  Codec
	mem    Memory
	logger log.Logger
	state  atomic.Int32
}

// New creates a contract with the given options.
func New(opts ...Option) *Contract {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Contract{
		codec:  cfg.codec,
		mem:    cfg.newMemory(),
		logger: cfg.logger,
	}
}

// Codec returns the contract's codec.
func (c *Contract) Codec() Codec {
	return c.codec
}

// Memory returns the contract's call memory.
func (c *Contract) Memory() Memory {
	return c.mem
}

// State returns the current dispatch state.
func (c *Contract) State() State {
	return State(c.state.Load())
}

// Ledger returns a ledger over h using the contract's codec, for reading
// balances outside of a call.
func (c *Contract) Ledger(h Host) *Ledger {
	return NewLedger(h, c.codec)
}

// Deploy is the constructor entry point. All slots start at zero, so there is
// nothing to set up.
func (c *Contract) Deploy(h Host) Outcome {
	h.ReturnValue(0, nil)
	return Outcome{Kind: Returned}
}

// Call is the call entry point. It reads the call data, routes by selector and
// ends the call through the host.
func (c *Contract) Call(h Host) (out Outcome) {
	if !c.state.CompareAndSwap(int32(Idle), int32(Handling)) {
		return c.trap(Selector{}, ErrReentrantCall)
	}
	defer c.state.Store(int32(Idle))
	defer c.mem.Reset()

	var sel Selector
	defer func() {
		if r := recover(); r != nil {
			out = c.trap(sel, &PanicError{Value: r})
		}
	}()

	err := c.handle(h, &sel)
	switch {
	case err == nil:
		h.ReturnValue(0, nil)
		return Outcome{Kind: Returned, Selector: sel}

	case errors.Is(err, ErrInsufficientBalance):
		payload := c.codec.EncodeError(err)
		h.ReturnValue(FlagRevert, payload)
		c.logger.Debug("Call reverted", "selector", sel, "codec", c.codec.Name(), "err", err)
		return Outcome{
			Kind:     Reverted,
			Selector: sel,
			Data:     payload,
			Err:      &RevertError{Selector: sel, Data: payload, Err: err},
		}

	default:
		return c.trap(sel, err)
	}
}

// handle runs one call up to, but not including, its termination. The
// selector is stored in sel as soon as it is decoded, so a later panic still
// reports it.
func (c *Contract) handle(h Host, sel *Selector) error {
	size := int(h.CallDataSize())
	if size > c.mem.Capacity() {
		return ErrCallDataTooLarge
	}
	if size < SelectorSize {
		return ErrCallDataTooShort
	}

	input, err := c.mem.CallData(size)
	if err != nil {
		return err
	}
	h.CallDataCopy(input, 0)

	decoded, args, err := c.codec.DecodeCall(input)
	*sel = decoded
	if err != nil {
		return err
	}

	ledger := NewLedger(h, c.codec)
	ledger.emit = func(e Event) error {
		return c.deposit(h, e)
	}

	switch decoded {
	case TransferSelector:
		return ledger.Transfer(h.Caller(), args.To, args.Amount)
	case MintSelector:
		return ledger.Mint(args.To, args.Amount)
	default:
		return ErrUnknownSelector
	}
}

// deposit stages the event in call memory and hands the staged topic words
// and data to the host.
func (c *Contract) deposit(h Host, e Event) error {
	if len(e.Topics) > MaxTopics {
		return ErrMalformedArguments
	}
	buf, err := c.mem.Scratch(e.Size())
	if err != nil {
		return err
	}
	for i, topic := range e.Topics {
		copy(buf[i*WordSize:], topic[:])
	}
	data := buf[len(e.Topics)*WordSize:]
	copy(data, e.Data)

	var staged [MaxTopics]common.Hash
	for i := range e.Topics {
		staged[i] = common.BytesToHash(buf[i*WordSize : (i+1)*WordSize])
	}

	h.DepositEvent(staged[:len(e.Topics)], data)
	return nil
}

func (c *Contract) trap(sel Selector, err error) Outcome {
	c.logger.Debug("Call trapped", "selector", sel, "codec", c.codec.Name(), "err", err)
	return Outcome{
		Kind:     Trapped,
		Selector: sel,
		Err:      &TrapError{Selector: sel, Err: err},
	}
}
