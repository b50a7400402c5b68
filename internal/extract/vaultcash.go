package extract

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"eulerScope/internal/addr"
	"eulerScope/internal/euler"
	"eulerScope/internal/model"
	"eulerScope/internal/registry"
)

// cashSlotIndex is the storage slot of the packed VaultStorage struct whose
// first slot carries the cash field.
const cashSlotIndex = 2

// CashSlotKey returns the 32-byte storage key of the vault cash slot.
func CashSlotKey() []byte {
	key := make([]byte, 32)
	key[31] = cashSlotIndex
	return key
}

// DecodeCashValue extracts the cash field from the packed vault storage slot.
//
// The slot packs, from the least significant end:
//   - lastInterestAccumulatorUpdate (uint48, 6 bytes)
//   - cash (uint112, 14 bytes)
//   - further accounting fields
//
// In the big-endian slot image the cash field occupies bytes 12..26. The
// result is that field right-aligned into a fresh 32-byte big-endian integer;
// the surrounding bytes of the slot never leak into it. Returns false when
// the input is not a full 32-byte slot value.
func DecodeCashValue(slotValue []byte) ([]byte, bool) {
	if len(slotValue) != 32 {
		return nil, false
	}
	cash := make([]byte, 32)
	copy(cash[18:], slotValue[12:26])
	return cash, true
}

// ExtractVaultCash scans the non-reverted vault-mutating calls of every
// transaction for writes to the cash slot of known vaults and resolves one
// snapshot per (transaction, vault, token). Within a transaction the write
// with the greatest ordinal wins; a write carrying the same decoded value
// does not advance the held ordinal, so unchanged values never register as
// changes. Snapshots are absolute values, not deltas.
func ExtractVaultCash(block *model.Block, store *registry.Store) []model.CashSnapshot {
	slotKey := CashSlotKey()

	var out []model.CashSnapshot
	for i := range block.Transactions {
		tx := &block.Transactions[i]

		// (vault, token) -> candidate snapshot for this tx
		candidates := make(map[string]*model.CashSnapshot)
		var order []string

		for j := range tx.Calls {
			call := &tx.Calls[j]
			if call.StateReverted || !euler.IsVaultMutator(call.Input) {
				continue
			}
			for k := range call.StorageChanges {
				change := &call.StorageChanges[k]
				vault := addr.Canonical(change.Address)
				if !registry.IsVault(store, vault) {
					continue
				}
				token, ok := store.GetLast(registry.VaultAssetKey(vault))
				if !ok {
					continue
				}
				key, err := hexutil.Decode(change.Key)
				if err != nil || !bytes.Equal(key, slotKey) {
					continue
				}
				newValue, err := hexutil.Decode(change.NewValue)
				if err != nil {
					continue
				}
				cash, ok := DecodeCashValue(newValue)
				if !ok {
					continue
				}

				id := vault + "|" + token
				held, exists := candidates[id]
				if !exists {
					candidates[id] = &model.CashSnapshot{
						TxIndex: tx.Index,
						Vault:   vault,
						Token:   token,
						Ordinal: change.Ordinal,
						Value:   cash,
					}
					order = append(order, id)
					continue
				}
				if held.Ordinal < change.Ordinal && !bytes.Equal(held.Value, cash) {
					held.Value = cash
					held.Ordinal = change.Ordinal
				}
			}
		}

		for _, id := range order {
			out = append(out, *candidates[id])
		}
	}
	return out
}
