package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/exposure-verify-api/internal/application/issuance"
	"github.com/exposure-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockIssueSvc struct{ mock.Mock }

func (m *mockIssueSvc) Issue(ctx context.Context, req domain.IssueRequest) (*issuance.Result, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*issuance.Result); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func postNotify(t *testing.T, h *IssuanceHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/notify/positive", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.NotifyPositive(rec, req)
	return rec
}

// --- tests ---

func TestNotifyPositive_OK(t *testing.T) {
	svc := &mockIssueSvc{}
	expires := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	svc.On("Issue", mock.Anything, mock.Anything).Return(&issuance.Result{
		Code:          "123456",
		ExpiresAt:     expires,
		ExpiresAtUnix: expires.Unix(),
		SMSSent:       true,
	}, nil)

	rec := postNotify(t, NewIssuanceHandler(svc), `{"mobile":"0871234567"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env IssueEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "123456", env.Code)
	assert.Equal(t, "2023-04-01T12:30:00Z", env.ExpiresAt)
	assert.Equal(t, "1680352200", env.ExpiresAtTimestamp)
	assert.True(t, env.SMSSent)
	assert.Empty(t, env.Error)
}

func TestNotifyPositive_DecodesAliasedFields(t *testing.T) {
	svc := &mockIssueSvc{}
	var got domain.IssueRequest
	svc.On("Issue", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(domain.IssueRequest)
	}).Return(&issuance.Result{Code: "123456"}, nil)

	rec := postNotify(t, NewIssuanceHandler(svc), `{"phone":"0871234567","symptomDate":"2023-04-01","jobId":"batch-7"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "0871234567", *got.Phone)
	require.NotNil(t, got.SymptomDate)
	assert.Equal(t, "2023-04-01", *got.SymptomDate)
	assert.Equal(t, "batch-7", got.JobID)
}

func TestNotifyPositive_MalformedBody(t *testing.T) {
	svc := &mockIssueSvc{}
	rec := postNotify(t, NewIssuanceHandler(svc), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestNotifyPositive_ValidationError(t *testing.T) {
	svc := &mockIssueSvc{}
	svc.On("Issue", mock.Anything, mock.Anything).Return(nil, domain.ErrValidation)

	rec := postNotify(t, NewIssuanceHandler(svc), `{"mobile":"bad"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env IssueEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.NotEmpty(t, env.Error)
	assert.Empty(t, env.Code)
}

func TestNotifyPositive_GenerationError(t *testing.T) {
	svc := &mockIssueSvc{}
	svc.On("Issue", mock.Anything, mock.Anything).Return(nil, domain.ErrGeneration)

	rec := postNotify(t, NewIssuanceHandler(svc), `{}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNotifyPositive_DeliveryError(t *testing.T) {
	svc := &mockIssueSvc{}
	svc.On("Issue", mock.Anything, mock.Anything).Return(nil, domain.ErrDelivery)

	rec := postNotify(t, NewIssuanceHandler(svc), `{"mobile":"0871234567"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNotifyPositive_ProxyRelayedVerbatim(t *testing.T) {
	svc := &mockIssueSvc{}
	svc.On("Issue", mock.Anything, mock.Anything).Return(&issuance.Result{
		Proxied:     true,
		ProxyStatus: http.StatusTooManyRequests,
		ProxyBody:   json.RawMessage(`{"error":"upstream throttled"}`),
	}, nil)

	rec := postNotify(t, NewIssuanceHandler(svc), `{"mobile":"0871234567"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"upstream throttled"}`, rec.Body.String())
}
