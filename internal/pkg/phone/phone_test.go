package phone

import (
	"errors"
	"testing"

	"github.com/exposure-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NationalWithDefaultRegion(t *testing.T) {
	got, err := Normalize("0871234567", "IE")
	require.NoError(t, err)
	assert.Equal(t, "+353871234567", got)
}

func TestNormalize_DoubleZeroPrefix(t *testing.T) {
	got, err := Normalize("00353871234567", "IE")
	require.NoError(t, err)
	assert.Equal(t, "+353871234567", got)
}

func TestNormalize_BareCallingCode(t *testing.T) {
	// no leading + or 0, but starts with the Irish calling code
	got, err := Normalize("353871234567", "IE")
	require.NoError(t, err)
	assert.Equal(t, "+353871234567", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize("0871234567", "IE")
	require.NoError(t, err)
	second, err := Normalize(first, "IE")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize_UKNumberViaDefaultRegion(t *testing.T) {
	got, err := Normalize("07400123456", "GB")
	require.NoError(t, err)
	assert.Equal(t, "+447400123456", got)
}

func TestNormalize_Garbage(t *testing.T) {
	_, err := Normalize("notaphone", "IE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestNormalize_TooShort(t *testing.T) {
	_, err := Normalize("0871", "IE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
