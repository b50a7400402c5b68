package model

import "math/big"

// BalanceDelta is a signed, additive change to a component's token balance.
// Ordinal establishes causal order within the block; two deltas for the same
// (component, token) in one transaction are both retained and summed later,
// never merged early.
type BalanceDelta struct {
	Ordinal     uint64
	TxIndex     uint64
	ComponentID string
	Token       string
	Delta       *big.Int
}

// CashSnapshot is the absolute available-liquidity value decoded from a
// vault's packed storage slot. Value is the 32-byte big-endian quantity; it is
// applied as a contract-level balance overwrite, never differenced against
// prior state.
type CashSnapshot struct {
	TxIndex uint64
	Vault   string
	Token   string
	Ordinal uint64
	Value   []byte
}
