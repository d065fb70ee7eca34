package http

import (
	"github.com/exposure-verify-api/internal/application/delivery"
	"github.com/exposure-verify-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/exposure-verify-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. JWTProvider may
// be nil in local development, in which case issuance is served unauthenticated.
type Deps struct {
	VerificationRepo *dynamo.VerificationRepo
	MetricRepo       *dynamo.MetricRepo
	DeliveryRouter   *delivery.Router
	JWTProvider      *jwtinfra.Provider
}
