package euler

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MatchDeployPool reports whether the call input is a well-formed deployPool
// invocation on the factory. The arguments themselves are not needed; the
// paired PoolDeployed event carries everything the component requires.
func MatchDeployPool(input string) bool {
	factory, err := FactoryABI()
	if err != nil {
		return false
	}
	method := factory.Methods["deployPool"]
	data, err := hexutil.Decode(input)
	if err != nil || len(data) < 4 {
		return false
	}
	if string(data[:4]) != string(method.ID) {
		return false
	}
	if _, err := method.Inputs.Unpack(data[4:]); err != nil {
		return false
	}
	return true
}

// IsVaultMutator reports whether the call input matches one of the vault
// functions that move liquidity: deposit, withdraw, borrow or repay. Only
// calls matching these selectors are scanned for cash-slot writes.
func IsVaultMutator(input string) bool {
	vault, err := VaultABI()
	if err != nil {
		return false
	}
	data, err := hexutil.Decode(input)
	if err != nil || len(data) < 4 {
		return false
	}
	for _, name := range []string{"deposit", "withdraw", "borrow", "repay"} {
		if string(data[:4]) == string(vault.Methods[name].ID) {
			return true
		}
	}
	return false
}
