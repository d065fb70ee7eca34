package code

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/exposure-verify-api/internal/domain"
)

// Generate produces a verification code of the given length over charset.
// The code is the concatenation of a control segment (first half, rounded
// down) and a random segment; both halves are drawn independently from
// crypto/rand. The control segment is hashed and stored on its own so the
// redemption side can detect partial-guess brute forcing without knowing the
// full code.
func Generate(length int, charset string) (string, error) {
	if length < 2 {
		return "", fmt.Errorf("code length must be at least 2, got %d: %w", length, domain.ErrGeneration)
	}
	if charset == "" {
		return "", fmt.Errorf("code charset is empty: %w", domain.ErrGeneration)
	}
	control, err := randomString(ControlLength(length), charset)
	if err != nil {
		return "", err
	}
	random, err := randomString(length-ControlLength(length), charset)
	if err != nil {
		return "", err
	}
	return control + random, nil
}

// ControlLength returns the length of the control segment for a code of the
// given total length.
func ControlLength(length int) int {
	return length / 2
}

func randomString(n int, charset string) (string, error) {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", domain.ErrGeneration)
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b), nil
}
