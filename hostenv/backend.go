package hostenv

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

// Backend is the persistent key/value store behind an Env. Writes made after
// Snapshot can be undone with RevertToSnapshot; Commit makes them durable.
type Backend interface {
	Get(key common.Hash) ([]byte, bool)
	Set(key common.Hash, value []byte)
	Snapshot() int
	RevertToSnapshot(id int)
	Commit() error
}

// journalEntry records the pending value a key had before a write.
type journalEntry struct {
	key     common.Hash
	prev    []byte
	existed bool
}

// KeyValueStore is the part of an ethdb database a MemoryBackend needs.
type KeyValueStore interface {
	ethdb.KeyValueReader
	ethdb.Batcher
	ethdb.Iteratee
}

// MemoryBackend keeps committed state in an in-memory key/value database and
// buffers uncommitted writes in an overlay.
type MemoryBackend struct {
	db      KeyValueStore
	pending map[common.Hash][]byte
	journal []journalEntry
}

// NewMemoryBackend creates an empty backend over memorydb.
func NewMemoryBackend() *MemoryBackend {
	return NewKeyValueBackend(memorydb.New())
}

// NewKeyValueBackend creates a backend over an ethdb key/value store.
func NewKeyValueBackend(db KeyValueStore) *MemoryBackend {
	return &MemoryBackend{
		db:      db,
		pending: make(map[common.Hash][]byte),
	}
}

// Get returns the pending value of key, falling back to the database.
func (b *MemoryBackend) Get(key common.Hash) ([]byte, bool) {
	if v, ok := b.pending[key]; ok {
		return common.CopyBytes(v), true
	}
	ok, err := b.db.Has(key[:])
	if err != nil || !ok {
		return nil, false
	}
	v, err := b.db.Get(key[:])
	if err != nil {
		return nil, false
	}
	return v, true
}

// Set buffers a write.
func (b *MemoryBackend) Set(key common.Hash, value []byte) {
	prev, existed := b.pending[key]
	b.journal = append(b.journal, journalEntry{key: key, prev: prev, existed: existed})
	b.pending[key] = common.CopyBytes(value)
}

// Snapshot returns an identifier for the current pending state.
func (b *MemoryBackend) Snapshot() int {
	return len(b.journal)
}

// RevertToSnapshot undoes every write made after the snapshot was taken.
func (b *MemoryBackend) RevertToSnapshot(id int) {
	if id < 0 || id > len(b.journal) {
		return
	}
	for i := len(b.journal) - 1; i >= id; i-- {
		entry := b.journal[i]
		if entry.existed {
			b.pending[entry.key] = entry.prev
		} else {
			delete(b.pending, entry.key)
		}
	}
	b.journal = b.journal[:id]
}

// Commit writes the overlay to the database in one batch.
func (b *MemoryBackend) Commit() error {
	if len(b.pending) == 0 {
		b.journal = b.journal[:0]
		return nil
	}
	batch := b.db.NewBatch()
	for key, value := range b.pending {
		if err := batch.Put(key.Bytes(), value); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	clear(b.pending)
	b.journal = b.journal[:0]
	return nil
}

// Len returns the number of committed keys.
func (b *MemoryBackend) Len() int {
	it := b.db.NewIterator(nil, nil)
	defer it.Release()

	n := 0
	for it.Next() {
		n++
	}
	return n
}

// StateBackend keeps the contract's storage in the storage trie of an account
// of a go-ethereum StateDB. Slots are words, so stored values are left-padded
// to 32 bytes and an all-zero slot reads as absent.
type StateBackend struct {
	db      *state.StateDB
	account common.Address
}

// ContractNonce is the nonce a contract account starts with (EIP-161). An
// account with zero nonce, zero balance and no code is empty and is deleted
// when the state is finalised, storage included.
const ContractNonce = 1

// NewStateBackend binds a backend to account in db, creating the account if
// it does not exist and giving it the contract nonce if it is empty.
func NewStateBackend(db *state.StateDB, account common.Address) *StateBackend {
	if !db.Exist(account) {
		db.CreateAccount(account)
	}
	if db.Empty(account) {
		db.SetNonce(account, ContractNonce, tracing.NonceChangeUnspecified)
	}
	return &StateBackend{db: db, account: account}
}

// Account returns the account holding the storage.
func (b *StateBackend) Account() common.Address {
	return b.account
}

// Get reads a storage slot.
func (b *StateBackend) Get(key common.Hash) ([]byte, bool) {
	v := b.db.GetState(b.account, key)
	if v == (common.Hash{}) {
		return nil, false
	}
	return v.Bytes(), true
}

// Set writes a storage slot.
func (b *StateBackend) Set(key common.Hash, value []byte) {
	b.db.SetState(b.account, key, common.BytesToHash(value))
}

// Snapshot takes a StateDB snapshot.
func (b *StateBackend) Snapshot() int {
	return b.db.Snapshot()
}

// RevertToSnapshot reverts the StateDB to the snapshot.
func (b *StateBackend) RevertToSnapshot(id int) {
	b.db.RevertToSnapshot(id)
}

// Commit is a no-op: the StateDB is committed by whoever owns it.
func (b *StateBackend) Commit() error {
	return nil
}
