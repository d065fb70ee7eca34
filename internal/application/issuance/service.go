package issuance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/exposure-verify-api/internal/application/delivery"
	"github.com/exposure-verify-api/internal/config"
	"github.com/exposure-verify-api/internal/domain"
	"github.com/exposure-verify-api/internal/pkg/code"
	"github.com/exposure-verify-api/internal/pkg/crypt"
	"github.com/exposure-verify-api/internal/pkg/digest"
	"github.com/exposure-verify-api/internal/pkg/expiry"
	"github.com/exposure-verify-api/internal/pkg/id"
	"github.com/exposure-verify-api/internal/pkg/phone"
	"github.com/exposure-verify-api/internal/pkg/validate"
)

const (
	dateLayout = "2006-01-02"

	// Codes up to this length are keyed on a phone keypad; anything longer
	// is flagged for the redemption side so it can relax its input mask.
	shortCodeLength = 6

	proxyIssuePath = "/notify/positive"
)

// Result is the outcome of a successful issuance. When Proxied is set the
// upstream response must be relayed verbatim and the other fields are empty.
type Result struct {
	Code          string
	ExpiresAt     time.Time
	ExpiresAtUnix int64
	SMSSent       bool

	Proxied     bool
	ProxyStatus int
	ProxyBody   json.RawMessage
}

type Service interface {
	Issue(ctx context.Context, req domain.IssueRequest) (*Result, error)
}

type verificationStore interface {
	Insert(ctx context.Context, v *domain.VerificationCode) error
}

type metricStore interface {
	Increment(ctx context.Context, event string) error
}

type deliveryRouter interface {
	Strategy() delivery.Strategy
	Forward(ctx context.Context, path string, body interface{}) (int, json.RawMessage, error)
	Deliver(ctx context.Context, job *domain.DeliveryJob) error
}

type service struct {
	repo    verificationStore
	metrics metricStore
	router  deliveryRouter
	cfg     *config.Config

	encryptKey []byte
	now        func() time.Time
}

func NewService(repo verificationStore, metrics metricStore, router deliveryRouter, cfg *config.Config) Service {
	s := &service{
		repo:    repo,
		metrics: metrics,
		router:  router,
		cfg:     cfg,
		now:     time.Now,
	}
	if cfg.MobileEncryptPassphrase != "" {
		s.encryptKey = crypt.DeriveKey(cfg.MobileEncryptPassphrase, cfg.MobileEncryptSalt)
	}
	return s
}

// Issue runs the full pipeline: validate, resolve aliases, normalize the
// destination, then either forward upstream or generate, persist and deliver.
// Validation failures never touch storage; once a code is persisted the
// generated event has been counted and only delivery can still go wrong.
func (s *service) Issue(ctx context.Context, req domain.IssueRequest) (*Result, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	iss, err := req.Resolve()
	if err != nil {
		return nil, err
	}
	if iss.JobID == "" {
		iss.JobID = id.New()
	}
	log := slog.With("job_id", iss.JobID, "strategy", s.router.Strategy().String())

	onset := iss.OnsetDate
	if onset == nil && s.cfg.UseTestDateAsOnset {
		onset = iss.TestDate
	}
	if onset == nil && s.cfg.OnsetDateRequired {
		return nil, fmt.Errorf("onset date is required: %w", domain.ErrValidation)
	}
	if onset != nil && s.cfg.OnsetOffsetHours > 0 {
		t := onset.Add(-time.Duration(s.cfg.OnsetOffsetHours) * time.Hour)
		onset = &t
	}

	mobile := ""
	if iss.Mobile != "" {
		mobile, err = phone.Normalize(iss.Mobile, s.cfg.DefaultCountryCode)
		if err != nil {
			return nil, err
		}
	}

	if s.router.Strategy() == delivery.StrategyProxy {
		return s.forward(ctx, log, iss, mobile, onset)
	}

	plain, err := code.Generate(s.cfg.CodeLength, s.cfg.CodeCharset)
	if err != nil {
		s.count(ctx, log, domain.EventCodeFail)
		return nil, err
	}
	exp := expiry.At(s.now(), s.cfg.CodeLifetime)

	rec := &domain.VerificationCode{
		Control:   digest.Hash(plain[:code.ControlLength(len(plain))]),
		Code:      digest.Hash(plain),
		TestType:  string(iss.TestType),
		LongCode:  s.cfg.CodeLength > shortCodeLength,
		CreatedAt: s.now().Unix(),
		ExpiresAt: exp.Unix,
	}
	if onset != nil {
		rec.OnsetDate = onset.Format(dateLayout)
	}
	if mobile != "" && s.encryptKey != nil && s.router.Strategy() == delivery.StrategyQueued {
		enc, err := crypt.Encrypt(mobile, s.encryptKey)
		if err != nil {
			s.count(ctx, log, domain.EventCodeFail)
			return nil, fmt.Errorf("encrypt mobile: %v: %w", err, domain.ErrGeneration)
		}
		rec.Mobile = enc
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.count(ctx, log, domain.EventCodeFail)
		return nil, fmt.Errorf("persist verification: %v: %w", err, domain.ErrGeneration)
	}
	s.count(ctx, log, domain.EventCodeGenerated)

	res := &Result{Code: plain, ExpiresAt: exp.At, ExpiresAtUnix: exp.Unix}
	if mobile == "" {
		return res, nil
	}

	job := &domain.DeliveryJob{
		Code:      plain,
		Mobile:    mobile,
		JobID:     iss.JobID,
		SendCount: 1,
	}
	if onset != nil {
		job.OnsetDate = onset.Format(dateLayout)
	}
	if iss.TestDate != nil {
		job.TestDate = iss.TestDate.Format(dateLayout)
	}

	if err := s.router.Deliver(ctx, job); err != nil {
		s.count(ctx, log, domain.EventSMSFail)
		log.Warn("sms delivery failed", "error", err)
		if s.router.Strategy() == delivery.StrategyDirect {
			return nil, err
		}
		return res, nil
	}
	res.SMSSent = true
	return res, nil
}

// proxyRequest is the canonical body forwarded upstream: normalized phone and
// resolved dates, never the raw aliased input.
type proxyRequest struct {
	Mobile    string          `json:"mobile,omitempty"`
	OnsetDate string          `json:"onsetDate,omitempty"`
	TestDate  string          `json:"testDate,omitempty"`
	TestType  domain.TestType `json:"testType"`
	JobID     string          `json:"jobId,omitempty"`
}

// forward delegates the whole issuance upstream. The upstream response is
// relayed verbatim, including error statuses; only transport failures become
// errors here.
func (s *service) forward(ctx context.Context, log *slog.Logger, iss *domain.Issuance, mobile string, onset *time.Time) (*Result, error) {
	body := proxyRequest{
		Mobile:   mobile,
		TestType: iss.TestType,
		JobID:    iss.JobID,
	}
	if onset != nil {
		body.OnsetDate = onset.Format(dateLayout)
	}
	if iss.TestDate != nil {
		body.TestDate = iss.TestDate.Format(dateLayout)
	}

	status, raw, err := s.router.Forward(ctx, proxyIssuePath, body)
	if err != nil {
		s.count(ctx, log, domain.EventCodeFail)
		return nil, err
	}
	if status >= 400 {
		s.count(ctx, log, domain.EventCodeFail)
	} else {
		s.count(ctx, log, domain.EventCodeGenerated)
	}
	return &Result{Proxied: true, ProxyStatus: status, ProxyBody: raw}, nil
}

// count is best effort: a broken metrics table must never fail issuance.
func (s *service) count(ctx context.Context, log *slog.Logger, event string) {
	if err := s.metrics.Increment(ctx, event); err != nil {
		log.Warn("metric increment failed", "event", event, "error", err)
	}
}
