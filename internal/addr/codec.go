package addr

import (
	"encoding/hex"
	"strings"
)

// Encode converts raw address bytes into the canonical "0x" lowercase hex form.
// Every registry key and component id in this codebase uses this form; the
// checksummed mixed-case form from go-ethereum is never used as an identifier.
func Encode(raw []byte) string {
	return "0x" + hex.EncodeToString(raw)
}

// Canonical normalizes an address string by decoding and re-encoding it.
// Malformed input yields "0x", which no registry key ever matches.
func Canonical(s string) string {
	return Encode(Decode(s))
}

// Decode converts a canonical address string back to raw bytes. Malformed
// input yields nil, which downstream lookups treat as "not found" rather than
// aborting the block.
func Decode(s string) []byte {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if s == "" {
		return nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return raw
}
