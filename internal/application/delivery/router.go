package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/exposure-verify-api/internal/domain"
)

// Strategy identifies how issued codes reach the subject. Exactly one
// strategy is selected per process, at configuration-load time.
type Strategy int

const (
	// StrategyProxy delegates the entire issuance to an upstream service;
	// no local generation or persistence happens.
	StrategyProxy Strategy = iota
	// StrategyQueued enqueues a delivery job for an external consumer to
	// send asynchronously.
	StrategyQueued
	// StrategyDirect invokes the SMS provider synchronously. Legacy mode:
	// provider failure fails the request.
	StrategyDirect
)

func (s Strategy) String() string {
	switch s {
	case StrategyProxy:
		return "proxy"
	case StrategyQueued:
		return "queued"
	default:
		return "direct"
	}
}

// ProxyForwarder forwards a whole issuance request upstream.
type ProxyForwarder interface {
	Forward(ctx context.Context, path string, body interface{}) (int, json.RawMessage, error)
}

// JobQueue enqueues delivery jobs for asynchronous dispatch.
type JobQueue interface {
	Enqueue(ctx context.Context, job *domain.DeliveryJob) error
}

// SMSSender sends one SMS synchronously. Two interchangeable
// implementations exist (SNS and Twilio); the composition root picks one.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type deliverer interface {
	deliver(ctx context.Context, job *domain.DeliveryJob) error
}

type queuedDeliverer struct {
	queue JobQueue
}

func (d queuedDeliverer) deliver(ctx context.Context, job *domain.DeliveryJob) error {
	return d.queue.Enqueue(ctx, job)
}

type directDeliverer struct {
	sms      SMSSender
	template string
}

func (d directDeliverer) deliver(ctx context.Context, job *domain.DeliveryJob) error {
	return d.sms.SendSMS(ctx, job.Mobile, RenderTemplate(d.template, map[string]string{"code": job.Code}))
}

// Router routes delivery through the single strategy selected at
// construction. Precedence: proxy > queued > direct.
type Router struct {
	strategy Strategy
	proxy    ProxyForwarder
	variant  deliverer
}

// RouterDeps carries the configured collaborators. Proxy and Queue are nil
// when their endpoints are not configured; SMS must always be present since
// direct send is the fallback strategy.
type RouterDeps struct {
	Proxy       ProxyForwarder
	Queue       JobQueue
	SMS         SMSSender
	SMSTemplate string
}

func NewRouter(deps RouterDeps) *Router {
	switch {
	case deps.Proxy != nil:
		return &Router{strategy: StrategyProxy, proxy: deps.Proxy}
	case deps.Queue != nil:
		return &Router{strategy: StrategyQueued, variant: queuedDeliverer{queue: deps.Queue}}
	default:
		return &Router{strategy: StrategyDirect, variant: directDeliverer{sms: deps.SMS, template: deps.SMSTemplate}}
	}
}

func (r *Router) Strategy() Strategy { return r.strategy }

// Forward hands the whole issuance to the upstream proxy. Only valid in
// proxy mode.
func (r *Router) Forward(ctx context.Context, path string, body interface{}) (int, json.RawMessage, error) {
	if r.strategy != StrategyProxy {
		return 0, nil, fmt.Errorf("no issue proxy configured: %w", domain.ErrDelivery)
	}
	return r.proxy.Forward(ctx, path, body)
}

// Deliver dispatches one job through the selected variant. Only valid in
// queued and direct modes.
func (r *Router) Deliver(ctx context.Context, job *domain.DeliveryJob) error {
	if r.variant == nil {
		return fmt.Errorf("no delivery variant configured: %w", domain.ErrDelivery)
	}
	return r.variant.deliver(ctx, job)
}

var templateKey = regexp.MustCompile(`\$\{([^}]*)\}`)

// RenderTemplate substitutes ${key} placeholders in the configured SMS
// template, matching the original message format.
func RenderTemplate(template string, values map[string]string) string {
	return templateKey.ReplaceAllStringFunc(template, func(m string) string {
		return values[templateKey.FindStringSubmatch(m)[1]]
	})
}
