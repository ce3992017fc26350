package tokenledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ZeroAddress is the sender of mint events.
var ZeroAddress = common.Address{}

// Ledger applies transfer and mint against the host store. It holds no state
// of its own: every read goes to the host and every write goes back before the
// call returns.
type Ledger struct {
	host  Host
	codec Codec
	emit  func(Event) error
}

// NewLedger binds a ledger to a host and a codec. Events go straight to
// Host.DepositEvent.
func NewLedger(host Host, codec Codec) *Ledger {
	l := &Ledger{host: host, codec: codec}
	l.emit = l.deposit
	return l
}

// Codec returns the ledger's codec.
func (l *Ledger) Codec() Codec {
	return l.codec
}

// BalanceOf returns the balance of addr. Missing entries are zero.
func (l *Ledger) BalanceOf(addr common.Address) *uint256.Int {
	return l.load(BalanceKey(l.host, addr))
}

// TotalSupply returns the total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	return l.load(TotalSupplyKey())
}

// Transfer moves amount from caller to to. It fails with
// ErrInsufficientBalance, before touching storage, if the caller holds less
// than amount. Both balances are written even when caller == to.
func (l *Ledger) Transfer(caller, to common.Address, amount *uint256.Int) error {
	senderKey := BalanceKey(l.host, caller)
	senderBalance := l.load(senderKey)
	if senderBalance.Lt(amount) {
		return ErrInsufficientBalance
	}
	l.store(senderKey, new(uint256.Int).Sub(senderBalance, amount))

	// Read after the sender write so a self-transfer nets out.
	recipientKey := BalanceKey(l.host, to)
	recipientBalance, err := CheckedAdd(l.load(recipientKey), amount, l.codec.MaxAmount())
	if err != nil {
		return err
	}
	l.store(recipientKey, recipientBalance)

	return l.emitTransfer(caller, to, amount)
}

// Mint credits amount to to and grows the total supply. Both additions
// saturate at the codec's MaxAmount. Anyone may mint.
func (l *Ledger) Mint(to common.Address, amount *uint256.Int) error {
	limit := l.codec.MaxAmount()

	recipientKey := BalanceKey(l.host, to)
	l.store(recipientKey, SaturatingAdd(l.load(recipientKey), amount, limit))

	supplyKey := TotalSupplyKey()
	l.store(supplyKey, SaturatingAdd(l.load(supplyKey), amount, limit))

	return l.emitTransfer(ZeroAddress, to, amount)
}

func (l *Ledger) load(key common.Hash) *uint256.Int {
	stored, ok := l.host.GetStorage(key)
	if !ok {
		return new(uint256.Int)
	}
	return l.codec.DecodeAmount(stored)
}

func (l *Ledger) store(key common.Hash, v *uint256.Int) {
	l.host.SetStorage(key, l.codec.EncodeAmount(v))
}

func (l *Ledger) emitTransfer(from, to common.Address, value *uint256.Int) error {
	event, err := l.codec.EncodeTransfer(from, to, value)
	if err != nil {
		return err
	}
	return l.emit(event)
}

func (l *Ledger) deposit(e Event) error {
	l.host.DepositEvent(e.Topics, e.Data)
	return nil
}
