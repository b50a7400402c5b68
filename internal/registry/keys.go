package registry

// Store key prefixes and suffixes. Keys follow the patterns "pool:{id}",
// "pool:{id}:{property}", "token:{addr}" and "vault:{addr}[:{property}]".
const (
	poolPrefix  = "pool:"
	tokenPrefix = "token:"
	vaultPrefix = "vault:"

	asset0Suffix = ":asset0"
	asset1Suffix = ":asset1"
	vault0Suffix = ":vault0"
	vault1Suffix = ":vault1"
	assetSuffix  = ":asset"
	poolSuffix   = ":pool"
)

// PoolKey is the existence/lookup key for a pool id.
func PoolKey(poolID string) string {
	return poolPrefix + poolID
}

// PoolAssetKey maps a pool to one of its two token addresses.
func PoolAssetKey(poolID string, isAsset0 bool) string {
	if isAsset0 {
		return poolPrefix + poolID + asset0Suffix
	}
	return poolPrefix + poolID + asset1Suffix
}

// PoolVaultKey maps a pool to one of its two vault addresses.
func PoolVaultKey(poolID string, isVault0 bool) string {
	if isVault0 {
		return poolPrefix + poolID + vault0Suffix
	}
	return poolPrefix + poolID + vault1Suffix
}

// TokenKey is the reverse-lookup existence key for a token address.
func TokenKey(tokenAddr string) string {
	return tokenPrefix + tokenAddr
}

// VaultKey is the reverse-lookup existence key for a vault address.
func VaultKey(vaultAddr string) string {
	return vaultPrefix + vaultAddr
}

// VaultAssetKey maps a vault to its underlying token address.
func VaultAssetKey(vaultAddr string) string {
	return vaultPrefix + vaultAddr + assetSuffix
}

// VaultPoolKey maps a vault back to its owning pool id.
func VaultPoolKey(vaultAddr string) string {
	return vaultPrefix + vaultAddr + poolSuffix
}
