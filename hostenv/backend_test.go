package hostenv

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	keyA = common.HexToHash("0x01")
	keyB = common.HexToHash("0x02")
)

func TestMemoryBackendSnapshot(t *testing.T) {
	b := NewMemoryBackend()

	b.Set(keyA, []byte{1})
	snap := b.Snapshot()
	b.Set(keyA, []byte{2})
	b.Set(keyB, []byte{3})

	v, ok := b.Get(keyA)
	require.True(t, ok)
	require.Equal(t, []byte{2}, v)

	b.RevertToSnapshot(snap)

	v, ok = b.Get(keyA)
	require.True(t, ok)
	require.Equal(t, []byte{1}, v)

	_, ok = b.Get(keyB)
	require.False(t, ok)
}

func TestMemoryBackendCommit(t *testing.T) {
	b := NewMemoryBackend()
	require.Zero(t, b.Len())

	b.Set(keyA, []byte{1})
	b.Set(keyB, []byte{2})
	require.Zero(t, b.Len(), "pending writes are not committed")

	require.NoError(t, b.Commit())
	require.Equal(t, 2, b.Len())

	// A revert after commit has nothing to undo.
	snap := b.Snapshot()
	b.Set(keyA, []byte{9})
	b.RevertToSnapshot(snap)

	v, ok := b.Get(keyA)
	require.True(t, ok)
	require.Equal(t, []byte{1}, v)
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	b := NewMemoryBackend()
	value := []byte{1, 2, 3}
	b.Set(keyA, value)
	value[0] = 0xff

	v, _ := b.Get(keyA)
	require.Equal(t, []byte{1, 2, 3}, v)

	v[1] = 0xff
	v, _ = b.Get(keyA)
	require.Equal(t, []byte{1, 2, 3}, v)
}

func TestMemoryBackendInvalidSnapshot(t *testing.T) {
	b := NewMemoryBackend()
	b.Set(keyA, []byte{1})

	b.RevertToSnapshot(5)
	b.RevertToSnapshot(-1)

	_, ok := b.Get(keyA)
	require.True(t, ok)
}

func newStateBackend(t *testing.T) (*state.StateDB, *StateBackend) {
	t.Helper()

	sdb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	require.NoError(t, err)
	return sdb, NewStateBackend(sdb, DefaultAddress)
}

func TestStateBackend(t *testing.T) {
	sdb, b := newStateBackend(t)
	require.True(t, sdb.Exist(DefaultAddress))
	require.Equal(t, DefaultAddress, b.Account())

	_, ok := b.Get(keyA)
	require.False(t, ok)

	b.Set(keyA, []byte{0x12, 0x34})
	v, ok := b.Get(keyA)
	require.True(t, ok)
	require.Len(t, v, 32)
	require.Equal(t, common.BytesToHash([]byte{0x12, 0x34}), sdb.GetState(DefaultAddress, keyA))

	snap := b.Snapshot()
	b.Set(keyA, []byte{0x56})
	b.RevertToSnapshot(snap)
	require.Equal(t, common.BytesToHash([]byte{0x12, 0x34}), sdb.GetState(DefaultAddress, keyA))

	b.Set(keyA, make([]byte, 16))
	_, ok = b.Get(keyA)
	require.False(t, ok, "a zero slot reads as absent")

	require.NoError(t, b.Commit())
}

func TestStateBackendAccountIsNotEmpty(t *testing.T) {
	sdb, _ := newStateBackend(t)
	require.False(t, sdb.Empty(DefaultAddress))
	require.Equal(t, uint64(ContractNonce), sdb.GetNonce(DefaultAddress))

	sdb.IntermediateRoot(true)
	require.True(t, sdb.Exist(DefaultAddress))
}

func TestStateBackendKeepsExistingNonce(t *testing.T) {
	sdb, err := state.New(types.EmptyRootHash, state.NewDatabaseForTesting())
	require.NoError(t, err)
	sdb.CreateAccount(DefaultAddress)
	sdb.SetNonce(DefaultAddress, 7, tracing.NonceChangeUnspecified)

	NewStateBackend(sdb, DefaultAddress)
	require.Equal(t, uint64(7), sdb.GetNonce(DefaultAddress))
}
