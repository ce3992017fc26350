// Package tokenledger implements a minimal ERC-20 style token ledger that runs
// against a narrow contract host interface.
//
// The ledger is written the way a contract for a small VM is: each call reads
// its input from the host, routes on a 4-byte selector, reads and writes
// balances through host storage, emits events through the host log and ends
// with a return or a revert. Nothing survives a call except what is in host
// storage.
//
// # Basic Usage
//
// Create a contract and invoke it with a Host for every call:
//
//	contract := tokenledger.New()
//
//	// mint(0xAA.., 100) from any caller
//	env := hostenv.NewEnv(hostenv.NewMemoryBackend())
//	receipt, err := env.Execute(contract, caller, tokenledger.MintCall(holder, tokenledger.NewAmount(100)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Operations
//
//   - transfer(address,uint256), selector 0xa9059cbb: moves tokens from the
//     caller. Reverts with InsufficientBalance() (0xf4d678b8) when the caller
//     holds too little.
//   - mint(address,uint256), selector 0x40c10f19: credits tokens and grows the
//     total supply, saturating at the largest amount. Anyone may mint.
//
// Both emit Transfer(address indexed from, address indexed to, uint256 value).
//
// # Storage Layout
//
// The layout matches the Solidity declaration
//
//	uint256 totalSupply;                   // slot 0
//	mapping(address => uint256) balances;  // slot 1
//
// so balances live at keccak256(leftPad32(addr) ‖ leftPad32(1)).
//
// # Variants
//
// Two codecs share one ledger:
//
//   - PackedCodec: 128-bit amounts sliced by hand from the low half of each
//     ABI word, stored as 16 bytes. This is the default.
//   - ABICodec: 256-bit amounts through go-ethereum's ABI encoder, stored as
//     32 bytes.
//
// Two memory models bound every call:
//
//   - StackBuffer: fixed arrays, 256 bytes of call data at most. The default.
//   - Arena: a bump allocator with a fixed budget, 1024 bytes by default.
//
// # Outcomes
//
// A call either returns, reverts (business-rule failure, payload handed back,
// writes discarded) or traps (malformed input, unknown selector, exhausted
// memory; nothing kept, nothing returned). See Outcome.
package tokenledger
