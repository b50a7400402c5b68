package extract

import (
	"math/big"

	"go.uber.org/zap"

	"eulerScope/internal/addr"
	"eulerScope/internal/euler"
	"eulerScope/internal/model"
	"eulerScope/internal/registry"
)

// ExtractBalanceDeltas produces the signed per-token balance deltas for every
// pool in the block. Initial reserves come from deployment events, swap flows
// from Swap events; zero magnitudes never emit a delta. Unrecognized or
// malformed logs are skipped locally and never fail the block.
func ExtractBalanceDeltas(block *model.Block, store *registry.Store, logger *zap.Logger) []model.BalanceDelta {
	if logger == nil {
		logger = zap.NewNop()
	}

	var deltas []model.BalanceDelta
	for i := range block.Transactions {
		tx := &block.Transactions[i]

		var configs euler.PoolConfigIndex
		for j := range tx.Logs {
			log := &tx.Logs[j]

			if deployed, ok := euler.DecodePoolDeployed(log); ok {
				poolID := addr.Encode(deployed.Pool.Bytes())
				if !registry.IsPool(store, poolID) {
					continue
				}
				if configs == nil {
					configs = euler.IndexPoolConfigs(tx)
				}
				config, ok := configs[poolID]
				if !ok {
					logger.Warn("pool deployed without config event, skipping initial reserves",
						zap.String("pool", poolID),
						zap.Uint64("tx_index", tx.Index),
					)
					continue
				}
				asset0 := addr.Encode(deployed.Asset0.Bytes())
				asset1 := addr.Encode(deployed.Asset1.Bytes())
				deltas = appendDelta(deltas, log, tx, poolID, asset0, config.Reserve0)
				deltas = appendDelta(deltas, log, tx, poolID, asset1, config.Reserve1)
				continue
			}

			if swap, ok := euler.DecodeSwap(log); ok {
				poolID := addr.Canonical(log.Address)
				if !registry.IsPool(store, poolID) {
					continue
				}
				asset0, ok0 := store.GetLast(registry.PoolAssetKey(poolID, true))
				asset1, ok1 := store.GetLast(registry.PoolAssetKey(poolID, false))
				if !ok0 || !ok1 {
					continue
				}
				deltas = appendDelta(deltas, log, tx, poolID, asset0, swap.Amount0In)
				deltas = appendDelta(deltas, log, tx, poolID, asset1, swap.Amount1In)
				deltas = appendDelta(deltas, log, tx, poolID, asset0, new(big.Int).Neg(swap.Amount0Out))
				deltas = appendDelta(deltas, log, tx, poolID, asset1, new(big.Int).Neg(swap.Amount1Out))
			}
		}
	}
	return deltas
}

func appendDelta(deltas []model.BalanceDelta, log *model.Log, tx *model.Transaction, poolID, token string, delta *big.Int) []model.BalanceDelta {
	if delta == nil || delta.Sign() == 0 {
		return deltas
	}
	return append(deltas, model.BalanceDelta{
		Ordinal:     log.Ordinal,
		TxIndex:     tx.Index,
		ComponentID: poolID,
		Token:       token,
		Delta:       new(big.Int).Set(delta),
	})
}
