package aggregate

import (
	"math/big"
	"sort"

	"eulerScope/internal/model"
)

// TransactionBalances carries the absolute balances reached by the end of one
// transaction, for every (component, token) pair the transaction touched.
type TransactionBalances struct {
	TxIndex uint64
	Changes []model.BalanceChange
}

// BalanceStore folds signed balance deltas into running totals keyed
// by (component, token). It is the only writer of absolute balances and it
// carries them across blocks; everything else about it is per-invocation.
type BalanceStore struct {
	totals      map[string]*big.Int
	lastApplied uint64
	hasApplied  bool
}

// NewBalanceStore returns an empty additive store seeded at zero.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{totals: make(map[string]*big.Int)}
}

// Total returns a copy of the current absolute balance for the pair.
func (s *BalanceStore) Total(componentID, token string) *big.Int {
	total, ok := s.totals[balanceKey(componentID, token)]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(total)
}

// ApplyBlock folds the block's deltas in ordinal order and returns the
// grouped-by-transaction absolute balances. Reapplying a block that was
// already applied is a no-op, which keeps the fold idempotent under the host
// runtime's exactly-once block delivery.
func (s *BalanceStore) ApplyBlock(blockNumber uint64, deltas []model.BalanceDelta) []TransactionBalances {
	if s.hasApplied && blockNumber <= s.lastApplied {
		return nil
	}
	s.lastApplied = blockNumber
	s.hasApplied = true

	if len(deltas) == 0 {
		return nil
	}

	ordered := make([]model.BalanceDelta, len(deltas))
	copy(ordered, deltas)
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].Ordinal < ordered[b].Ordinal })

	// tx -> (component|token) -> final absolute value after that tx's deltas
	perTx := make(map[uint64]map[string]model.BalanceChange)
	for _, delta := range ordered {
		key := balanceKey(delta.ComponentID, delta.Token)
		total, ok := s.totals[key]
		if !ok {
			total = big.NewInt(0)
			s.totals[key] = total
		}
		total.Add(total, delta.Delta)

		changes, ok := perTx[delta.TxIndex]
		if !ok {
			changes = make(map[string]model.BalanceChange)
			perTx[delta.TxIndex] = changes
		}
		changes[key] = model.BalanceChange{
			ComponentID: delta.ComponentID,
			Token:       delta.Token,
			Balance:     total.String(),
		}
	}

	txIndexes := make([]uint64, 0, len(perTx))
	for txIndex := range perTx {
		txIndexes = append(txIndexes, txIndex)
	}
	sort.Slice(txIndexes, func(a, b int) bool { return txIndexes[a] < txIndexes[b] })

	out := make([]TransactionBalances, 0, len(txIndexes))
	for _, txIndex := range txIndexes {
		changes := perTx[txIndex]
		keys := make([]string, 0, len(changes))
		for key := range changes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		balances := make([]model.BalanceChange, 0, len(keys))
		for _, key := range keys {
			balances = append(balances, changes[key])
		}
		out = append(out, TransactionBalances{TxIndex: txIndex, Changes: balances})
	}
	return out
}

func balanceKey(componentID, token string) string {
	return componentID + "|" + token
}
