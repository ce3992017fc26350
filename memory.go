package tokenledger

// Memory budget constants.
const (
	// StackBufferSize is the call-data capacity of the allocation-free variant.
	StackBufferSize = 256

	// StackScratchSize is the working space of the allocation-free variant:
	// three topics and one data word.
	StackScratchSize = MaxTopics*WordSize + WordSize

	// DefaultArenaSize is the default budget of the arena variant.
	DefaultArenaSize = 1024
)

// Memory provides the buffers of a single call. Buffers are only valid until
// the next Reset; hosts must copy anything they keep.
type Memory interface {
	// Capacity is the largest call input the memory accepts.
	Capacity() int

	// CallData returns a buffer of n bytes for the call input.
	CallData(n int) ([]byte, error)

	// Scratch returns n bytes of working space.
	Scratch(n int) ([]byte, error)

	// Reset releases every buffer handed out.
	Reset()
}

// StackBuffer is the allocation-free memory: a fixed call-data array and a
// fixed scratch array, both sized for the largest supported payload.
type StackBuffer struct {
	callData [StackBufferSize]byte
	scratch  [StackScratchSize]byte
}

// NewStackBuffer creates the allocation-free memory.
func NewStackBuffer() *StackBuffer {
	return &StackBuffer{}
}

// Capacity returns StackBufferSize.
func (m *StackBuffer) Capacity() int {
	return StackBufferSize
}

// CallData returns the first n bytes of the call-data array.
func (m *StackBuffer) CallData(n int) ([]byte, error) {
	if n < 0 || n > StackBufferSize {
		return nil, ErrCallDataTooLarge
	}
	return m.callData[:n:n], nil
}

// Scratch returns the first n bytes of the scratch array.
func (m *StackBuffer) Scratch(n int) ([]byte, error) {
	if n < 0 || n > StackScratchSize {
		return nil, ErrOutOfMemory
	}
	return m.scratch[:n:n], nil
}

// Reset zeroes both arrays.
func (m *StackBuffer) Reset() {
	clear(m.callData[:])
	clear(m.scratch[:])
}

// Arena is a bump allocator over a fixed budget. Allocations are never freed
// individually; Reset releases all of them. Running out is fatal to the call.
type Arena struct {
	buf []byte
	off int
}

// NewArena creates an arena with the given budget in bytes.
func NewArena(budget int) *Arena {
	if budget <= 0 {
		budget = DefaultArenaSize
	}
	return &Arena{buf: make([]byte, budget)}
}

// Capacity returns the whole budget.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Used returns the number of bytes handed out since the last Reset.
func (a *Arena) Used() int {
	return a.off
}

// Alloc hands out the next n bytes.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 || n > len(a.buf)-a.off {
		return nil, ErrOutOfMemory
	}
	b := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	return b, nil
}

// CallData allocates the call input from the arena.
func (a *Arena) CallData(n int) ([]byte, error) {
	if n > len(a.buf) {
		return nil, ErrCallDataTooLarge
	}
	return a.Alloc(n)
}

// Scratch allocates working space from the arena.
func (a *Arena) Scratch(n int) ([]byte, error) {
	return a.Alloc(n)
}

// Reset rewinds the arena and zeroes what was used.
func (a *Arena) Reset() {
	clear(a.buf[:a.off])
	a.off = 0
}
