package digest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_Deterministic(t *testing.T) {
	assert.Equal(t, Hash("123456"), Hash("123456"))
}

func TestHash_HexLength(t *testing.T) {
	// SHA-512 → 64 bytes → 128 hex characters
	assert.Len(t, Hash("abc"), 128)
}

func TestHash_KnownVector(t *testing.T) {
	assert.Equal(t,
		"ba3253876aed6bc22d4a6ff53d8406c6ad864195ed144ab5c87621b6c233b548baeae6956df346ec8c17f5ea10f35ee3cbc514797ed7ddd3145464e2a0bab413",
		Hash("123456"))
}

func TestHash_NoCollisionsAcrossInputs(t *testing.T) {
	seen := map[string]string{}
	for i := 0; i < 1000; i++ {
		in := fmt.Sprintf("%06d", i)
		h := Hash(in)
		prev, dup := seen[h]
		assert.False(t, dup, "inputs %q and %q collided", prev, in)
		seen[h] = in
	}
}
