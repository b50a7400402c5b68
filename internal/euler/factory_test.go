package euler

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"eulerScope/internal/addr"
	"eulerScope/internal/model"
)

func deployPoolInput(t *testing.T, vault0, vault1, account common.Address) string {
	t.Helper()
	factory, err := FactoryABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	method := factory.Methods["deployPool"]
	args, err := method.Inputs.Pack(vault0, vault1, account, [32]byte{7})
	if err != nil {
		t.Fatalf("pack deployPool: %v", err)
	}
	return hexutil.Encode(append(append([]byte{}, method.ID...), args...))
}

func poolDeployedLog(t *testing.T, ordinal uint64, asset0, asset1, account, pool, vault0, vault1 common.Address) model.Log {
	t.Helper()
	factory, err := FactoryABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := factory.Events["PoolDeployed"].Inputs.NonIndexed().Pack(pool, vault0, vault1)
	if err != nil {
		t.Fatalf("pack PoolDeployed: %v", err)
	}
	log := buildLog(common.Address{}, factory.Events["PoolDeployed"].ID, []common.Hash{
		topicFromAddress(asset0), topicFromAddress(asset1), topicFromAddress(account),
	}, data)
	log.Ordinal = ordinal
	return log
}

func poolConfigLog(t *testing.T, ordinal uint64, pool common.Address, reserve0, reserve1 int64) model.Log {
	t.Helper()
	factory, err := FactoryABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := factory.Events["PoolConfig"].Inputs.NonIndexed().Pack(
		big.NewInt(999),
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(3),
		big.NewInt(4),
		big.NewInt(reserve0),
		big.NewInt(reserve1),
	)
	if err != nil {
		t.Fatalf("pack PoolConfig: %v", err)
	}
	log := buildLog(common.Address{}, factory.Events["PoolConfig"].ID, []common.Hash{topicFromAddress(pool)}, data)
	log.Ordinal = ordinal
	return log
}

func TestMaybeCreateComponent(t *testing.T) {
	proto := DefaultProtocol()

	asset0 := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	asset1 := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	account := common.HexToAddress("0x1212121212121212121212121212121212121212")
	pool := common.HexToAddress("0x3434343434343434343434343434343434343434")
	vault0 := common.HexToAddress("0x5656565656565656565656565656565656565656")
	vault1 := common.HexToAddress("0x7878787878787878787878787878787878787878")

	call := model.Call{
		Index:   1,
		Address: proto.FactoryID(),
		Input:   deployPoolInput(t, vault0, vault1, account),
	}
	deployed := poolDeployedLog(t, 10, asset0, asset1, account, pool, vault0, vault1)
	config := poolConfigLog(t, 11, pool, 100, 0)

	tx := model.Transaction{Index: 3, Logs: []model.Log{deployed, config}}
	configs := IndexPoolConfigs(&tx)

	component, err := MaybeCreateComponent(proto, &call, &deployed, configs)
	if err != nil {
		t.Fatalf("create component: %v", err)
	}
	if component == nil {
		t.Fatalf("expected component")
	}

	if component.ID != addr.Encode(pool.Bytes()) {
		t.Fatalf("id mismatch: %s", component.ID)
	}
	if len(component.Tokens) != 2 || component.Tokens[0] != addr.Encode(asset0.Bytes()) || component.Tokens[1] != addr.Encode(asset1.Bytes()) {
		t.Fatalf("tokens mismatch: %v", component.Tokens)
	}
	wantContracts := []string{
		component.ID,
		addr.Encode(vault0.Bytes()),
		addr.Encode(vault1.Bytes()),
		addr.Encode(proto.EVC.Bytes()),
	}
	if len(component.Contracts) != len(wantContracts) {
		t.Fatalf("contracts mismatch: %v", component.Contracts)
	}
	for i, want := range wantContracts {
		if component.Contracts[i] != want {
			t.Fatalf("contract %d mismatch: %s != %s", i, component.Contracts[i], want)
		}
	}

	byName := make(map[string]string)
	for _, attribute := range component.Attributes {
		byName[attribute.Name] = attribute.Value
	}
	if byName["pool_type"] != "EulerSwap" {
		t.Fatalf("pool_type mismatch: %q", byName["pool_type"])
	}
	if byName["fee_multiplier"] != "999" {
		t.Fatalf("fee_multiplier mismatch: %q", byName["fee_multiplier"])
	}
	if byName["reserves"] != `["100","0"]` {
		t.Fatalf("reserves mismatch: %q", byName["reserves"])
	}
	if byName["euler_account"] != addr.Encode(account.Bytes()) {
		t.Fatalf("euler_account mismatch: %q", byName["euler_account"])
	}
	if byName["manual_updates"] != "0x01" {
		t.Fatalf("manual_updates mismatch: %q", byName["manual_updates"])
	}
	for i := 0; i < 5; i++ {
		name := "stateless_contract_addr_" + string(rune('0'+i))
		if byName[name] == "" {
			t.Fatalf("missing %s", name)
		}
	}
}

func TestMaybeCreateComponentMissingConfig(t *testing.T) {
	proto := DefaultProtocol()

	asset0 := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	asset1 := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	account := common.HexToAddress("0x1212121212121212121212121212121212121212")
	pool := common.HexToAddress("0x3434343434343434343434343434343434343434")
	vault0 := common.HexToAddress("0x5656565656565656565656565656565656565656")
	vault1 := common.HexToAddress("0x7878787878787878787878787878787878787878")

	call := model.Call{Address: proto.FactoryID(), Input: deployPoolInput(t, vault0, vault1, account)}
	deployed := poolDeployedLog(t, 10, asset0, asset1, account, pool, vault0, vault1)

	tx := model.Transaction{Logs: []model.Log{deployed}}
	if _, err := MaybeCreateComponent(proto, &call, &deployed, IndexPoolConfigs(&tx)); err == nil {
		t.Fatalf("expected error for missing config event")
	}
}

func TestMaybeCreateComponentPartialMatch(t *testing.T) {
	proto := DefaultProtocol()

	asset0 := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	asset1 := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	account := common.HexToAddress("0x1212121212121212121212121212121212121212")
	pool := common.HexToAddress("0x3434343434343434343434343434343434343434")
	vault0 := common.HexToAddress("0x5656565656565656565656565656565656565656")
	vault1 := common.HexToAddress("0x7878787878787878787878787878787878787878")

	deployed := poolDeployedLog(t, 10, asset0, asset1, account, pool, vault0, vault1)
	config := poolConfigLog(t, 11, pool, 100, 0)
	tx := model.Transaction{Logs: []model.Log{deployed, config}}
	configs := IndexPoolConfigs(&tx)

	// Call not on the factory.
	other := model.Call{Address: addr.Encode(asset0.Bytes()), Input: deployPoolInput(t, vault0, vault1, account)}
	if component, err := MaybeCreateComponent(proto, &other, &deployed, configs); err != nil || component != nil {
		t.Fatalf("expected silent no-match for foreign call, got %v %v", component, err)
	}

	// Call on the factory but not a deployPool invocation.
	wrongInput := model.Call{Address: proto.FactoryID(), Input: "0xdeadbeef"}
	if component, err := MaybeCreateComponent(proto, &wrongInput, &deployed, configs); err != nil || component != nil {
		t.Fatalf("expected silent no-match for foreign selector, got %v %v", component, err)
	}

	// Factory deployPool call paired with a non-deployment log.
	if component, err := MaybeCreateComponent(proto, &model.Call{Address: proto.FactoryID(), Input: deployPoolInput(t, vault0, vault1, account)}, &config, configs); err != nil || component != nil {
		t.Fatalf("expected silent no-match for non-deployment log, got %v %v", component, err)
	}
}
