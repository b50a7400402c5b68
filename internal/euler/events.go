package euler

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"eulerScope/internal/model"
)

// PoolDeployedEvent is the factory event announcing a new pool deployment.
type PoolDeployedEvent struct {
	Asset0       common.Address
	Asset1       common.Address
	EulerAccount common.Address
	Pool         common.Address
	Vault0       common.Address
	Vault1       common.Address
}

// PoolConfigEvent is the factory event carrying the curve parameters and the
// initial reserves for a deployment, correlated by pool address.
type PoolConfigEvent struct {
	Pool           common.Address
	FeeMultiplier  *big.Int
	PriceX         *big.Int
	PriceY         *big.Int
	ConcentrationX *big.Int
	ConcentrationY *big.Int
	Reserve0       *big.Int
	Reserve1       *big.Int
}

// SwapEvent is the pool event describing a swap in both directions.
type SwapEvent struct {
	Sender     common.Address
	To         common.Address
	Amount0In  *big.Int
	Amount1In  *big.Int
	Amount0Out *big.Int
	Amount1Out *big.Int
	Reserve0   *big.Int
	Reserve1   *big.Int
}

// DecodePoolDeployed decodes a PoolDeployed log. The second return value is
// false when the log does not match; there is no partial decode.
func DecodePoolDeployed(log *model.Log) (*PoolDeployedEvent, bool) {
	factory, err := FactoryABI()
	if err != nil {
		return nil, false
	}
	event := factory.Events["PoolDeployed"]
	if !topicMatches(log, event) {
		return nil, false
	}

	var indexed struct {
		Asset0       common.Address
		Asset1       common.Address
		EulerAccount common.Address
	}
	topics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return nil, false
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), topics); err != nil {
		return nil, false
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil || len(values) != 3 {
		return nil, false
	}
	pool, err := asAddress(values[0])
	if err != nil {
		return nil, false
	}
	vault0, err := asAddress(values[1])
	if err != nil {
		return nil, false
	}
	vault1, err := asAddress(values[2])
	if err != nil {
		return nil, false
	}

	return &PoolDeployedEvent{
		Asset0:       indexed.Asset0,
		Asset1:       indexed.Asset1,
		EulerAccount: indexed.EulerAccount,
		Pool:         pool,
		Vault0:       vault0,
		Vault1:       vault1,
	}, true
}

// DecodePoolConfig decodes a PoolConfig log, or reports no match.
func DecodePoolConfig(log *model.Log) (*PoolConfigEvent, bool) {
	factory, err := FactoryABI()
	if err != nil {
		return nil, false
	}
	event := factory.Events["PoolConfig"]
	if !topicMatches(log, event) {
		return nil, false
	}

	var indexed struct {
		Pool common.Address
	}
	topics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return nil, false
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), topics); err != nil {
		return nil, false
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil || len(values) != 7 {
		return nil, false
	}
	nums := make([]*big.Int, 0, len(values))
	for _, value := range values {
		n, err := asBigInt(value)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}

	return &PoolConfigEvent{
		Pool:           indexed.Pool,
		FeeMultiplier:  nums[0],
		PriceX:         nums[1],
		PriceY:         nums[2],
		ConcentrationX: nums[3],
		ConcentrationY: nums[4],
		Reserve0:       nums[5],
		Reserve1:       nums[6],
	}, true
}

// DecodeSwap decodes a Swap log, or reports no match.
func DecodeSwap(log *model.Log) (*SwapEvent, bool) {
	pool, err := PoolABI()
	if err != nil {
		return nil, false
	}
	event := pool.Events["Swap"]
	if !topicMatches(log, event) {
		return nil, false
	}

	var indexed struct {
		Sender common.Address
		To     common.Address
	}
	topics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return nil, false
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), topics); err != nil {
		return nil, false
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil || len(values) != 6 {
		return nil, false
	}
	nums := make([]*big.Int, 0, len(values))
	for _, value := range values {
		n, err := asBigInt(value)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}

	return &SwapEvent{
		Sender:     indexed.Sender,
		To:         indexed.To,
		Amount0In:  nums[0],
		Amount1In:  nums[1],
		Amount0Out: nums[2],
		Amount1Out: nums[3],
		Reserve0:   nums[4],
		Reserve1:   nums[5],
	}, true
}

func topicMatches(log *model.Log, event abi.Event) bool {
	if len(log.Topics) == 0 {
		return false
	}
	return strings.EqualFold(log.Topics[0], event.ID.Hex())
}

func parseIndexedTopics(event abi.Event, topics []string) ([]common.Hash, error) {
	indexedCount := len(indexedArguments(event.Inputs))
	if len(topics) != indexedCount+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", indexedCount+1, len(topics))
	}
	out := make([]common.Hash, 0, indexedCount)
	for _, topic := range topics[1:] {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func unpackNonIndexed(event abi.Event, dataHex string) ([]interface{}, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return values, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	n, ok := value.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected big.Int, got %T", value)
	}
	return n, nil
}

func asAddress(value interface{}) (common.Address, error) {
	a, ok := value.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("expected address, got %T", value)
	}
	return a, nil
}
