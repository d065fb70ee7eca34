package digest

import (
	"crypto/sha512"
	"encoding/hex"
)

// Hash returns the SHA-512 hex digest of value. Deterministic and unsalted:
// redemption re-hashes the caller-supplied code and compares it against the
// stored digest, so the same input must always produce the same output.
// The code space plus single-use semantics stand in for per-record salting.
func Hash(value string) string {
	sum := sha512.Sum512([]byte(value))
	return hex.EncodeToString(sum[:])
}
