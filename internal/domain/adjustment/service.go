package adjustment

import (
	"context"

	"github.com/claimlens/claimlens/internal/domain/claims"
)

// Request is the planning invocation: the shared three-way input contract
// plus optional payer rules.
type Request struct {
	claims.Input
	PayerRules *PayerRules `json:"payer_rules,omitempty"`
}

// Service resolves the input contract and builds adjustment plans.
type Service struct {
	claims  *claims.Service
	metrics claims.Metrics
}

func NewService(cs *claims.Service) *Service {
	return &Service{claims: cs}
}

// WithMetrics attaches a metrics sink and returns the service.
func (s *Service) WithMetrics(m claims.Metrics) *Service {
	s.metrics = m
	return s
}

// Plan builds the remediation plan for the claim identified by exactly one
// input channel. The resolved claim is read-only throughout.
func (s *Service) Plan(ctx context.Context, req Request) (*Plan, error) {
	c, err := s.claims.ResolveClaim(ctx, req.Input)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OperationCounter(claims.KindNormalized, "plan")
	}
	return BuildPlan(c, req.PayerRules), nil
}
