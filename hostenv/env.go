// Package hostenv provides an in-process host for tokenledger contracts. It
// runs one call at a time against a storage Backend, keeps or discards the
// call's writes and events depending on how the call ended, and reports the
// result as a Receipt.
package hostenv

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/branched-services/go-tokenledger"
)

// ErrNoReturn indicates a call completed without ending through ReturnValue.
var ErrNoReturn = errors.New("hostenv: call completed without a return value")

// DefaultAddress is the address logs are attributed to unless WithAddress is used.
var DefaultAddress = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")

// Receipt is the result of one Execute.
type Receipt struct {
	// Kind is how the call ended.
	Kind tokenledger.OutcomeKind

	// Status is types.ReceiptStatusSuccessful for returned calls and
	// types.ReceiptStatusFailed otherwise.
	Status uint64

	// ReturnData is the payload passed to ReturnValue. Empty for traps.
	ReturnData []byte

	// Logs are the events of a returned call. Empty otherwise.
	Logs []*types.Log

	// Err is the revert or trap cause.
	Err error
}

// Succeeded returns true if the call returned normally.
func (r *Receipt) Succeeded() bool {
	return r.Status == types.ReceiptStatusSuccessful
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithAddress sets the address events are attributed to.
func WithAddress(addr common.Address) EnvOption {
	return func(e *Env) {
		e.address = addr
	}
}

// WithLogger sets the logger. Default is log.Root().
func WithLogger(logger log.Logger) EnvOption {
	return func(e *Env) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithBlockNumber sets the block number stamped on logs.
func WithBlockNumber(n uint64) EnvOption {
	return func(e *Env) {
		e.blockNumber = n
	}
}

// Env is a tokenledger.Host. Execute serializes calls; the Host methods are
// only meant to be used by the contract during Execute.
type Env struct {
	mu          sync.Mutex
	backend     Backend
	address     common.Address
	blockNumber uint64
	logger      log.Logger

	// Per-call state, reset by Execute.
	caller     common.Address
	input      []byte
	logs       []*types.Log
	returned   bool
	flags      tokenledger.ReturnFlags
	returnData []byte
}

// NewEnv creates a host over backend.
func NewEnv(backend Backend, opts ...EnvOption) *Env {
	e := &Env{
		backend: backend,
		address: DefaultAddress,
		logger:  log.Root(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Address returns the address events are attributed to.
func (e *Env) Address() common.Address {
	return e.address
}

// Backend returns the storage backend.
func (e *Env) Backend() Backend {
	return e.backend
}

// Deploy runs the contract's constructor.
func (e *Env) Deploy(c *tokenledger.Contract) (*Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin(common.Address{}, nil)
	out := c.Deploy(e)
	return e.finish(out, e.backend.Snapshot())
}

// Execute runs one call of c on behalf of caller with the given input. The
// error is only non-nil when the host itself failed; reverts and traps are
// reported through the receipt.
func (e *Env) Execute(c *tokenledger.Contract, caller common.Address, input []byte) (*Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer executeTimer.UpdateSince(start)
	callCounter.Inc(1)

	e.begin(caller, input)
	snap := e.backend.Snapshot()
	out := c.Call(e)
	receipt, err := e.finish(out, snap)
	if err != nil {
		return nil, err
	}

	e.logger.Trace("Executed ledger call", "caller", caller, "selector", out.Selector,
		"outcome", out.Kind, "logs", len(receipt.Logs), "elapsed", common.PrettyDuration(time.Since(start)))
	return receipt, nil
}

func (e *Env) begin(caller common.Address, input []byte) {
	e.caller = caller
	e.input = common.CopyBytes(input)
	e.logs = nil
	e.returned = false
	e.flags = 0
	e.returnData = nil
}

// finish keeps or discards the call's effects according to its outcome.
func (e *Env) finish(out tokenledger.Outcome, snap int) (*Receipt, error) {
	receipt := &Receipt{Kind: out.Kind, Err: out.Err}

	switch out.Kind {
	case tokenledger.Returned:
		if !e.returned || e.flags.Reverted() {
			e.backend.RevertToSnapshot(snap)
			return nil, fmt.Errorf("%w (selector %s)", ErrNoReturn, out.Selector)
		}
		if err := e.backend.Commit(); err != nil {
			e.backend.RevertToSnapshot(snap)
			return nil, fmt.Errorf("hostenv: commit: %w", err)
		}
		receipt.Status = types.ReceiptStatusSuccessful
		receipt.ReturnData = e.returnData
		receipt.Logs = e.logs

	case tokenledger.Reverted:
		revertCounter.Inc(1)
		e.backend.RevertToSnapshot(snap)
		receipt.Status = types.ReceiptStatusFailed
		receipt.ReturnData = e.returnData
		e.logger.Debug("Ledger call reverted", "caller", e.caller, "selector", out.Selector, "data", common.Bytes2Hex(e.returnData))

	default:
		trapCounter.Inc(1)
		e.backend.RevertToSnapshot(snap)
		receipt.Status = types.ReceiptStatusFailed
		e.logger.Debug("Ledger call trapped", "caller", e.caller, "selector", out.Selector, "err", out.Err)
	}
	return receipt, nil
}

// BalanceOf reads addr's committed balance with c's codec.
func (e *Env) BalanceOf(c *tokenledger.Contract, addr common.Address) *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return c.Ledger(e).BalanceOf(addr)
}

// TotalSupply reads the committed total supply with c's codec.
func (e *Env) TotalSupply(c *tokenledger.Contract) *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return c.Ledger(e).TotalSupply()
}

// CallDataSize implements tokenledger.Host.
func (e *Env) CallDataSize() uint32 {
	return uint32(len(e.input))
}

// CallDataCopy implements tokenledger.Host.
func (e *Env) CallDataCopy(dst []byte, offset uint32) {
	if int(offset) >= len(e.input) {
		return
	}
	copy(dst, e.input[offset:])
}

// GetStorage implements tokenledger.Host.
func (e *Env) GetStorage(key common.Hash) ([]byte, bool) {
	return e.backend.Get(key)
}

// SetStorage implements tokenledger.Host.
func (e *Env) SetStorage(key common.Hash, value []byte) {
	e.backend.Set(key, value)
}

// Caller implements tokenledger.Host.
func (e *Env) Caller() common.Address {
	return e.caller
}

// DepositEvent implements tokenledger.Host. Topics and data are copied.
func (e *Env) DepositEvent(topics []common.Hash, data []byte) {
	e.logs = append(e.logs, &types.Log{
		Address:     e.address,
		Topics:      append([]common.Hash(nil), topics...),
		Data:        common.CopyBytes(data),
		BlockNumber: e.blockNumber,
		Index:       uint(len(e.logs)),
	})
}

// ReturnValue implements tokenledger.Host.
func (e *Env) ReturnValue(flags tokenledger.ReturnFlags, data []byte) {
	e.returned = true
	e.flags = flags
	e.returnData = common.CopyBytes(data)
}

// HashKeccak256 implements tokenledger.Host.
func (e *Env) HashKeccak256(input []byte) common.Hash {
	return crypto.Keccak256Hash(input)
}

var _ tokenledger.Host = (*Env)(nil)
