package extract

import (
	"fmt"

	"eulerScope/internal/euler"
	"eulerScope/internal/model"
)

// TransactionComponents groups the components created within one transaction.
type TransactionComponents struct {
	Tx         *model.Transaction
	Components []model.Component
}

// BuildComponents walks every (log, call) pair of every transaction in
// execution order and instantiates a component for each recognized pool
// deployment. The function is pure with respect to the block; registry writes
// happen in a later stage.
func BuildComponents(block *model.Block, proto *euler.Protocol) ([]TransactionComponents, error) {
	var out []TransactionComponents
	for i := range block.Transactions {
		tx := &block.Transactions[i]

		var components []model.Component
		var configs euler.PoolConfigIndex
		for j := range tx.Logs {
			log := &tx.Logs[j]
			call := tx.CallByIndex(log.CallIndex)
			if call == nil || call.StateReverted || call.Address != proto.FactoryID() {
				continue
			}
			if configs == nil {
				configs = euler.IndexPoolConfigs(tx)
			}
			component, err := euler.MaybeCreateComponent(proto, call, log, configs)
			if err != nil {
				return nil, fmt.Errorf("tx %d: %w", tx.Index, err)
			}
			if component != nil {
				components = append(components, *component)
			}
		}

		if len(components) > 0 {
			out = append(out, TransactionComponents{Tx: tx, Components: components})
		}
	}
	return out, nil
}
