package registry

import (
	"eulerScope/internal/model"
)

// Apply writes the key families for each newly created component. All writes
// in a block carry ordinal 0 relative to this stage; the fixed write order
// (pool, assets with reverse indexes, vaults with reverse indexes, vault
// assets, vault owners) exists for auditability, not correctness.
func Apply(store *Store, components []model.Component) {
	for _, component := range components {
		poolID := component.ID
		store.Set(0, PoolKey(poolID), poolID)

		token0 := component.Tokens[0]
		store.Set(0, PoolAssetKey(poolID, true), token0)
		store.Set(0, TokenKey(token0), token0)

		token1 := component.Tokens[1]
		store.Set(0, PoolAssetKey(poolID, false), token1)
		store.Set(0, TokenKey(token1), token1)

		vault0 := component.Contracts[1]
		store.Set(0, PoolVaultKey(poolID, true), vault0)
		store.Set(0, VaultKey(vault0), vault0)
		store.Set(0, VaultAssetKey(vault0), token0)
		store.Set(0, VaultPoolKey(vault0), poolID)

		vault1 := component.Contracts[2]
		store.Set(0, PoolVaultKey(poolID, false), vault1)
		store.Set(0, VaultKey(vault1), vault1)
		store.Set(0, VaultAssetKey(vault1), token1)
		store.Set(0, VaultPoolKey(vault1), poolID)
	}
}

// IsPool reports whether the address is a known pool id.
func IsPool(store *Store, address string) bool {
	_, ok := store.GetLast(PoolKey(address))
	return ok
}

// IsVault reports whether the address is a known vault.
func IsVault(store *Store, address string) bool {
	_, ok := store.GetLast(VaultKey(address))
	return ok
}
