package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/exposure-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockProxy struct{ mock.Mock }

func (m *mockProxy) Forward(ctx context.Context, path string, body interface{}) (int, json.RawMessage, error) {
	args := m.Called(ctx, path, body)
	raw, _ := args.Get(1).(json.RawMessage)
	return args.Int(0), raw, args.Error(2)
}

type mockQueue struct{ mock.Mock }

func (m *mockQueue) Enqueue(ctx context.Context, job *domain.DeliveryJob) error {
	return m.Called(ctx, job).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

// --- strategy selection ---

func TestNewRouter_Precedence(t *testing.T) {
	proxy := &mockProxy{}
	queue := &mockQueue{}
	sms := &mockSMS{}

	r := NewRouter(RouterDeps{Proxy: proxy, Queue: queue, SMS: sms})
	assert.Equal(t, StrategyProxy, r.Strategy())

	r = NewRouter(RouterDeps{Queue: queue, SMS: sms})
	assert.Equal(t, StrategyQueued, r.Strategy())

	r = NewRouter(RouterDeps{SMS: sms})
	assert.Equal(t, StrategyDirect, r.Strategy())
}

// --- queued ---

func TestDeliver_Queued(t *testing.T) {
	queue := &mockQueue{}
	job := &domain.DeliveryJob{Code: "123456", Mobile: "+353871234567", SendCount: 1}
	queue.On("Enqueue", mock.Anything, job).Return(nil)

	r := NewRouter(RouterDeps{Queue: queue})
	require.NoError(t, r.Deliver(context.Background(), job))
	queue.AssertExpectations(t)
}

func TestDeliver_QueuedFailurePropagates(t *testing.T) {
	queue := &mockQueue{}
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(domain.ErrDelivery)

	r := NewRouter(RouterDeps{Queue: queue})
	err := r.Deliver(context.Background(), &domain.DeliveryJob{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
}

// --- direct ---

func TestDeliver_DirectRendersTemplate(t *testing.T) {
	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "+353871234567", "Your verification code is 123456").Return(nil)

	r := NewRouter(RouterDeps{SMS: sms, SMSTemplate: "Your verification code is ${code}"})
	err := r.Deliver(context.Background(), &domain.DeliveryJob{Code: "123456", Mobile: "+353871234567"})
	require.NoError(t, err)
	sms.AssertExpectations(t)
}

// --- proxy ---

func TestForward_ProxyPassesThrough(t *testing.T) {
	proxy := &mockProxy{}
	proxy.On("Forward", mock.Anything, "/notify/positive", mock.Anything).
		Return(200, json.RawMessage(`{"code":"999999"}`), nil)

	r := NewRouter(RouterDeps{Proxy: proxy})
	status, body, err := r.Forward(context.Background(), "/notify/positive", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"code":"999999"}`, string(body))
}

func TestForward_WithoutProxyFails(t *testing.T) {
	r := NewRouter(RouterDeps{SMS: &mockSMS{}})
	_, _, err := r.Forward(context.Background(), "/notify/positive", nil)
	require.Error(t, err)
}

// --- template rendering ---

func TestRenderTemplate(t *testing.T) {
	got := RenderTemplate("code ${code} expires in ${minutes} minutes", map[string]string{
		"code":    "123456",
		"minutes": "30",
	})
	assert.Equal(t, "code 123456 expires in 30 minutes", got)
}

func TestRenderTemplate_UnknownKeyEmpty(t *testing.T) {
	assert.Equal(t, "hello ", RenderTemplate("hello ${missing}", nil))
}
