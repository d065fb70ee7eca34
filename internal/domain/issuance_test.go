package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestResolve_Defaults(t *testing.T) {
	iss, err := IssueRequest{}.Resolve()
	require.NoError(t, err)
	assert.Empty(t, iss.Mobile)
	assert.Nil(t, iss.OnsetDate)
	assert.Nil(t, iss.TestDate)
	assert.Equal(t, TestTypeConfirmed, iss.TestType)
}

func TestResolve_MobileWins(t *testing.T) {
	iss, err := IssueRequest{Mobile: strptr("0871234567")}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "0871234567", iss.Mobile)
}

func TestResolve_PhoneAlias(t *testing.T) {
	iss, err := IssueRequest{Phone: strptr("0871234567")}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "0871234567", iss.Mobile)
}

func TestResolve_BothMobileAliasesRejected(t *testing.T) {
	_, err := IssueRequest{Mobile: strptr("a"), Phone: strptr("b")}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestResolve_SymptomDateAlias(t *testing.T) {
	iss, err := IssueRequest{SymptomDate: strptr("2023-04-01")}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, iss.OnsetDate)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), *iss.OnsetDate)
}

func TestResolve_BothOnsetAliasesRejected(t *testing.T) {
	_, err := IssueRequest{OnsetDate: strptr("2023-04-01"), SymptomDate: strptr("2023-04-01")}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestResolve_BadDate(t *testing.T) {
	_, err := IssueRequest{OnsetDate: strptr("01/04/2023")}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestResolve_TestType(t *testing.T) {
	iss, err := IssueRequest{TestType: TestTypeLikely}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, TestTypeLikely, iss.TestType)

	_, err = IssueRequest{TestType: TestType("presumed")}.Resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestResolve_EmptyDateStringsIgnored(t *testing.T) {
	iss, err := IssueRequest{OnsetDate: strptr(""), TestDate: strptr("")}.Resolve()
	require.NoError(t, err)
	assert.Nil(t, iss.OnsetDate)
	assert.Nil(t, iss.TestDate)
}
