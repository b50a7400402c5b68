package extract

import (
	"sort"

	"eulerScope/internal/addr"
	"eulerScope/internal/model"
)

// ContractDiff is the set of final slot values written to one contract within
// a transaction.
type ContractDiff struct {
	Address string
	Slots   []model.SlotChange
}

// TransactionContractDiffs groups accepted contract diffs by transaction.
type TransactionContractDiffs struct {
	TxIndex uint64
	Diffs   []ContractDiff
}

// ExtractContractDiffs collects, per transaction, every contract whose storage
// changed in a non-reverted call and whose address is accepted by the
// predicate. Per (contract, slot) the write with the greatest ordinal wins,
// and writes that leave the slot at its old value are dropped.
func ExtractContractDiffs(block *model.Block, accept func(address string) bool) []TransactionContractDiffs {
	var out []TransactionContractDiffs
	for i := range block.Transactions {
		tx := &block.Transactions[i]

		// contract -> slot -> final write
		final := make(map[string]map[string]model.SlotChange)
		for j := range tx.Calls {
			call := &tx.Calls[j]
			if call.StateReverted {
				continue
			}
			for _, change := range call.StorageChanges {
				if change.OldValue == change.NewValue {
					continue
				}
				address := addr.Canonical(change.Address)
				if !accept(address) {
					continue
				}
				slots, ok := final[address]
				if !ok {
					slots = make(map[string]model.SlotChange)
					final[address] = slots
				}
				if held, ok := slots[change.Key]; ok && held.Ordinal >= change.Ordinal {
					continue
				}
				slots[change.Key] = model.SlotChange{
					Slot:    change.Key,
					Value:   change.NewValue,
					Ordinal: change.Ordinal,
				}
			}
		}

		if len(final) == 0 {
			continue
		}

		addresses := make([]string, 0, len(final))
		for address := range final {
			addresses = append(addresses, address)
		}
		sort.Strings(addresses)

		diffs := make([]ContractDiff, 0, len(addresses))
		for _, address := range addresses {
			slots := make([]model.SlotChange, 0, len(final[address]))
			for _, slot := range final[address] {
				slots = append(slots, slot)
			}
			sort.Slice(slots, func(a, b int) bool { return slots[a].Ordinal < slots[b].Ordinal })
			diffs = append(diffs, ContractDiff{Address: address, Slots: slots})
		}
		out = append(out, TransactionContractDiffs{TxIndex: tx.Index, Diffs: diffs})
	}
	return out
}
