package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string, used as the correlation id for delivery
// jobs when the caller did not supply one. ULIDs sort lexicographically by
// creation time, which keeps the downstream consumer's logs readable.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
