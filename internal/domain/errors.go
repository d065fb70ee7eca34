package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	// ErrValidation covers rejected input: a malformed mobile number or a
	// policy-mandatory onset date that is missing. Nothing is persisted and
	// no delivery is attempted once a validation error is raised.
	ErrValidation = errors.New("validation failed")

	// ErrGeneration covers random-source or persistence failures while
	// creating a verification code. No partial code is ever returned.
	ErrGeneration = errors.New("code generation failed")

	// ErrDelivery covers queue and SMS-provider failures after a code has
	// been created. Queued delivery swallows it; direct delivery surfaces it.
	ErrDelivery = errors.New("delivery failed")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)
