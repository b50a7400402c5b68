package euler

import (
	"encoding/json"
	"fmt"
	"math/big"

	"eulerScope/internal/addr"
	"eulerScope/internal/model"
)

// PoolConfigIndex groups a transaction's PoolConfig events by canonical pool
// address so deployment pairing is a single lookup instead of a log rescan.
type PoolConfigIndex map[string]*PoolConfigEvent

// IndexPoolConfigs scans a transaction's logs once and indexes every
// PoolConfig event by pool address.
func IndexPoolConfigs(tx *model.Transaction) PoolConfigIndex {
	index := make(PoolConfigIndex)
	for i := range tx.Logs {
		if config, ok := DecodePoolConfig(&tx.Logs[i]); ok {
			index[addr.Encode(config.Pool.Bytes())] = config
		}
	}
	return index
}

// MaybeCreateComponent attempts to build a protocol component from a
// (log, call) pair. The call must target the factory and decode as deployPool,
// and the log must decode as PoolDeployed; a partial match yields no component
// and no error. A deployment whose PoolConfig event is absent from the same
// transaction is a hard error, since the component cannot be half-constructed.
func MaybeCreateComponent(proto *Protocol, call *model.Call, log *model.Log, configs PoolConfigIndex) (*model.Component, error) {
	if call.Address != proto.FactoryID() {
		return nil, nil
	}
	if !MatchDeployPool(call.Input) {
		return nil, nil
	}
	deployed, ok := DecodePoolDeployed(log)
	if !ok {
		return nil, nil
	}

	poolID := addr.Encode(deployed.Pool.Bytes())
	config, ok := configs[poolID]
	if !ok {
		return nil, fmt.Errorf("pool %s deployed without a matching config event", poolID)
	}

	attributes := []model.Attribute{
		{Name: "pool_type", Value: "EulerSwap", Change: model.ChangeCreation},
		{Name: "euler_account", Value: addr.Encode(deployed.EulerAccount.Bytes()), Change: model.ChangeCreation},
		{Name: "fee_multiplier", Value: config.FeeMultiplier.String(), Change: model.ChangeCreation},
		{Name: "reserves", Value: bigIntListJSON(config.Reserve0, config.Reserve1), Change: model.ChangeCreation},
		{Name: "prices", Value: bigIntListJSON(config.PriceX, config.PriceY), Change: model.ChangeCreation},
		{Name: "concentrations", Value: bigIntListJSON(config.ConcentrationX, config.ConcentrationY), Change: model.ChangeCreation},
	}
	for i, stateless := range []string{
		addr.Encode(proto.EVaultImpl.Bytes()),
		addr.Encode(proto.VaultModuleImpl.Bytes()),
		addr.Encode(proto.BorrowingModuleImpl.Bytes()),
		addr.Encode(proto.GovernanceModuleImpl.Bytes()),
		addr.Encode(proto.GenericFactory.Bytes()),
	} {
		attributes = append(attributes, model.Attribute{
			Name:   fmt.Sprintf("stateless_contract_addr_%d", i),
			Value:  stateless,
			Change: model.ChangeCreation,
		})
	}
	attributes = append(attributes, model.Attribute{
		Name:   "manual_updates",
		Value:  "0x01",
		Change: model.ChangeCreation,
	})

	return &model.Component{
		ID: poolID,
		Tokens: []string{
			addr.Encode(deployed.Asset0.Bytes()),
			addr.Encode(deployed.Asset1.Bytes()),
		},
		Contracts: []string{
			poolID,
			addr.Encode(deployed.Vault0.Bytes()),
			addr.Encode(deployed.Vault1.Bytes()),
			addr.Encode(proto.EVC.Bytes()),
		},
		Attributes:   attributes,
		ProtocolType: proto.ProtocolTypeName,
		Change:       model.ChangeCreation,
	}, nil
}

func bigIntListJSON(values ...*big.Int) string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		items = append(items, value.String())
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
