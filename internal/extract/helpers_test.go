package extract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"eulerScope/internal/euler"
	"eulerScope/internal/model"
	"eulerScope/internal/registry"
)

var (
	testPool   = common.HexToAddress("0x3434343434343434343434343434343434343434")
	testAsset0 = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	testAsset1 = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	testVault0 = common.HexToAddress("0x5656565656565656565656565656565656565656")
	testVault1 = common.HexToAddress("0x7878787878787878787878787878787878787878")
	testEVC    = common.HexToAddress("0x0C9a3dd6b8F28529d72d7f9cE918D493519EE383")
)

func canonical(a common.Address) string {
	return "0x" + common.Bytes2Hex(a.Bytes())
}

// registeredStore returns a registry already holding the test pool with its
// tokens and vaults, as the store stage would have left it.
func registeredStore() *registry.Store {
	store := registry.NewStore()
	registry.Apply(store, []model.Component{{
		ID:        canonical(testPool),
		Tokens:    []string{canonical(testAsset0), canonical(testAsset1)},
		Contracts: []string{canonical(testPool), canonical(testVault0), canonical(testVault1), canonical(testEVC)},
	}})
	return store
}

func packedLog(t *testing.T, emitter common.Address, eventName string, ordinal uint64, indexed []common.Hash, nonIndexed []interface{}) model.Log {
	t.Helper()

	factory, err := euler.FactoryABI()
	if err != nil {
		t.Fatalf("factory abi: %v", err)
	}
	pool, err := euler.PoolABI()
	if err != nil {
		t.Fatalf("pool abi: %v", err)
	}
	event, ok := factory.Events[eventName]
	if !ok {
		event, ok = pool.Events[eventName]
	}
	if !ok {
		t.Fatalf("unknown event %s", eventName)
	}

	data, err := event.Inputs.NonIndexed().Pack(nonIndexed...)
	if err != nil {
		t.Fatalf("pack %s: %v", eventName, err)
	}

	topics := []string{event.ID.Hex()}
	for _, topic := range indexed {
		topics = append(topics, topic.Hex())
	}
	return model.Log{
		Ordinal: ordinal,
		Address: canonical(emitter),
		Topics:  topics,
		Data:    hexutil.Encode(data),
	}
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func swapLog(t *testing.T, emitter common.Address, ordinal uint64, in0, in1, out0, out1 int64) model.Log {
	t.Helper()
	sender := common.HexToAddress("0x2222222222222222222222222222222222222222")
	to := common.HexToAddress("0x3333333333333333333333333333333333333333")
	return packedLog(t, emitter, "Swap", ordinal,
		[]common.Hash{addressTopic(sender), addressTopic(to)},
		[]interface{}{big.NewInt(in0), big.NewInt(in1), big.NewInt(out0), big.NewInt(out1), big.NewInt(0), big.NewInt(0)},
	)
}

func poolDeployedLog(t *testing.T, ordinal uint64) model.Log {
	t.Helper()
	account := common.HexToAddress("0x1212121212121212121212121212121212121212")
	return packedLog(t, common.Address{}, "PoolDeployed", ordinal,
		[]common.Hash{addressTopic(testAsset0), addressTopic(testAsset1), addressTopic(account)},
		[]interface{}{testPool, testVault0, testVault1},
	)
}

func poolConfigLog(t *testing.T, ordinal uint64, reserve0, reserve1 int64) model.Log {
	t.Helper()
	return packedLog(t, common.Address{}, "PoolConfig", ordinal,
		[]common.Hash{addressTopic(testPool)},
		[]interface{}{big.NewInt(999), big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(reserve0), big.NewInt(reserve1)},
	)
}

func depositInput(t *testing.T) string {
	t.Helper()
	vault, err := euler.VaultABI()
	if err != nil {
		t.Fatalf("vault abi: %v", err)
	}
	method := vault.Methods["deposit"]
	args, err := method.Inputs.Pack(big.NewInt(1000), common.HexToAddress("0x9999999999999999999999999999999999999999"))
	if err != nil {
		t.Fatalf("pack deposit: %v", err)
	}
	return hexutil.Encode(append(append([]byte{}, method.ID...), args...))
}

func cashWrite(vault common.Address, ordinal uint64, newValue [32]byte) model.StorageChange {
	return model.StorageChange{
		Address:  canonical(vault),
		Key:      hexutil.Encode(CashSlotKey()),
		OldValue: hexutil.Encode(make([]byte, 32)),
		NewValue: hexutil.Encode(newValue[:]),
		Ordinal:  ordinal,
	}
}
