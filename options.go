package tokenledger

import (
	"github.com/ethereum/go-ethereum/log"
)

// Option configures a Contract.
type Option func(*config)

// config holds the construction settings of a Contract.
type config struct {
	codec     Codec
	newMemory func() Memory
	logger    log.Logger
}

// defaultConfig returns the default contract configuration: fixed-width
// codec, allocation-free memory, root logger.
func defaultConfig() *config {
	return &config{
		codec:     NewPackedCodec(),
		newMemory: func() Memory { return NewStackBuffer() },
		logger:    log.Root(),
	}
}

// WithCodec sets the encoding strategy.
// Default is the fixed-width PackedCodec.
func WithCodec(codec Codec) Option {
	return func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithStackBuffer selects the allocation-free memory (default).
func WithStackBuffer() Option {
	return func(c *config) {
		c.newMemory = func() Memory { return NewStackBuffer() }
	}
}

// WithArena selects the bump allocator with the given budget in bytes.
// A non-positive budget means DefaultArenaSize.
func WithArena(budget int) Option {
	return func(c *config) {
		c.newMemory = func() Memory { return NewArena(budget) }
	}
}

// WithLogger sets the logger. Default is log.Root().
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// FullWidth is shorthand for the 256-bit variant: ABI codec on a default arena.
func FullWidth() Option {
	return func(c *config) {
		WithCodec(NewABICodec())(c)
		WithArena(DefaultArenaSize)(c)
	}
}
