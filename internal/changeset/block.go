package changeset

import (
	"fmt"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"eulerScope/internal/addr"
	"eulerScope/internal/aggregate"
	"eulerScope/internal/euler"
	"eulerScope/internal/extract"
	"eulerScope/internal/model"
	"eulerScope/internal/registry"
)

// BuildBlockChanges merges newly created components, aggregated balance
// changes, filtered contract storage diffs and vault cash snapshots into one
// ordered change-set per transaction. Change-sets are emitted sorted by
// ascending transaction index; transactions with no related activity emit
// nothing.
func BuildBlockChanges(
	block *model.Block,
	newComponents []extract.TransactionComponents,
	store *registry.Store,
	txBalances []aggregate.TransactionBalances,
	snapshots []model.CashSnapshot,
	proto *euler.Protocol,
	logger *zap.Logger,
) []model.TransactionChanges {
	if logger == nil {
		logger = zap.NewNop()
	}

	builders := make(map[uint64]*Builder)
	builderFor := func(tx *model.Transaction) *Builder {
		builder, ok := builders[tx.Index]
		if !ok {
			builder = NewBuilder(block, tx)
			builders[tx.Index] = builder
		}
		return builder
	}
	txByIndex := make(map[uint64]*model.Transaction, len(block.Transactions))
	for i := range block.Transactions {
		txByIndex[block.Transactions[i].Index] = &block.Transactions[i]
	}

	// New components with their default entity attribute bundle.
	for _, txComponents := range newComponents {
		builder := builderFor(txComponents.Tx)
		for _, component := range txComponents.Components {
			builder.AddComponent(component)
			builder.AddEntityChange(component.ID, defaultAttributes(component.ID, proto))
		}
	}

	// Absolute balances per transaction.
	for _, balances := range txBalances {
		tx, ok := txByIndex[balances.TxIndex]
		if !ok {
			logger.Warn("balance change for unknown transaction", zap.Uint64("tx_index", balances.TxIndex))
			continue
		}
		builder := builderFor(tx)
		for _, change := range balances.Changes {
			builder.AddBalanceChange(change)
		}
	}

	// Raw storage diffs for known pools, vaults and infrastructure contracts.
	diffs := extract.ExtractContractDiffs(block, func(address string) bool {
		return registry.IsPool(store, address) ||
			registry.IsVault(store, address) ||
			proto.IsInfrastructure(address)
	})
	for _, txDiffs := range diffs {
		tx, ok := txByIndex[txDiffs.TxIndex]
		if !ok {
			continue
		}
		builder := builderFor(tx)
		for _, diff := range txDiffs.Diffs {
			builder.AddContractSlots(diff.Address, diff.Slots)
		}
	}

	// Vault cash snapshots become contract-level token balance overwrites.
	for _, snapshot := range snapshots {
		tx, ok := txByIndex[snapshot.TxIndex]
		if !ok {
			continue
		}
		builder := builderFor(tx)
		balance := new(big.Int).SetBytes(snapshot.Value)
		builder.UpsertTokenBalance(snapshot.Vault, snapshot.Token, balance.String())
	}

	// Reconciliation: roll every touched vault contract up to its owning pool
	// so a vault diff is never reported as an ownerless change, and mark pools
	// whose own storage changed. A vault is never marked as if it were a pool.
	for _, builder := range builders {
		for _, address := range builder.ChangedContracts() {
			if registry.IsVault(store, address) {
				poolID, ok := store.GetLast(registry.VaultPoolKey(address))
				if !ok {
					logger.Warn("vault without owning pool in registry", zap.String("vault", address))
					continue
				}
				builder.MarkComponentAsUpdated(poolID)
				continue
			}
			if poolID, ok := store.GetLast(registry.PoolKey(address)); ok {
				builder.MarkComponentAsUpdated(poolID)
			}
		}
	}

	indexes := make([]uint64, 0, len(builders))
	for index := range builders {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(a, b int) bool { return indexes[a] < indexes[b] })

	out := make([]model.TransactionChanges, 0, len(indexes))
	for _, index := range indexes {
		if changes := builders[index].Build(); changes != nil {
			out = append(out, *changes)
		}
	}
	return out
}

// defaultAttributes is the fixed bundle attached to every new component: the
// creation marker, the balance owner (the pool contract itself) and the
// shared stateless contract addresses.
func defaultAttributes(poolID string, proto *euler.Protocol) []model.Attribute {
	attributes := []model.Attribute{
		{Name: "update_marker", Value: "0x01", Change: model.ChangeCreation},
		{Name: "balance_owner", Value: poolID, Change: model.ChangeCreation},
	}
	for i, stateless := range proto.StatelessContracts() {
		attributes = append(attributes, model.Attribute{
			Name:   fmt.Sprintf("stateless_contract_addr_%d", i),
			Value:  addr.Encode(stateless.Bytes()),
			Change: model.ChangeCreation,
		})
	}
	return attributes
}
