// Package compliance serves the public GST calculators.
package compliance

import (
	"context"

	"github.com/shcya/backend/internal/domain/compliance"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Metrics receives one call per evaluation. *telemetry.BusinessMetrics
// implements it; nil disables recording.
type Metrics interface {
	RecordEvaluation(ctx context.Context, applies bool, reasonCode string)
}

// Service evaluates Rule 86B for the calculator. Nothing is stored.
type Service struct {
	metrics Metrics
}

// NewService creates a compliance Service
func NewService(metrics Metrics) *Service {
	return &Service{metrics: metrics}
}

// Evaluate parses the form, rejects negative amounts and runs the evaluator.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "compliance", "evaluate_rule86b")
	defer span.End()

	input, err := ParseInput(req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := compliance.Evaluate(input)
	span.SetAttributes(
		telemetry.AttrApplies.Bool(result.Applies),
		telemetry.AttrReasonCode.String(result.Reason.String()),
	)
	if s.metrics != nil {
		s.metrics.RecordEvaluation(ctx, result.Applies, result.Reason.String())
	}
	logger.L(ctx).Debug("Rule 86B evaluated",
		zap.Bool("applies", result.Applies),
		zap.String("reason_code", result.Reason.String()),
	)

	resp := ToEvaluateResponse(result)
	return &resp, nil
}

// ParseInput coerces the form's text amounts into an EvaluationInput.
// Unparseable text, including exponent notation, becomes zero. Negative or
// oversized amounts are an INVALID_INPUT error.
func ParseInput(req EvaluateRequest) (compliance.EvaluationInput, error) {
	in := compliance.EvaluationInput{
		ExceptionIncomeTaxPaid:       req.ExceptionIncomeTaxPaid,
		ExceptionRefundUnutilisedITC: req.ExceptionRefundUnutilisedITC,
		ExceptionGovernmentEntity:    req.ExceptionGovernmentEntity,
	}
	fields := []struct {
		name string
		raw  Amount
		dst  *decimal.Decimal
	}{
		{"taxable_value", req.TaxableValue, &in.TaxableValue},
		{"output_tax", req.OutputTax, &in.OutputTax},
		{"itc_available", req.ITCAvailable, &in.ITCAvailable},
		{"cumulative_cash_paid", req.CumulativeCashPaid, &in.CumulativeCashPaid},
		{"cumulative_output_tax", req.CumulativeOutputTax, &in.CumulativeOutputTax},
	}

	for _, f := range fields {
		amount, err := valueobject.ParseINR(string(f.raw))
		if err != nil {
			return compliance.EvaluationInput{}, shared.NewDomainError(shared.CodeInvalidInput, f.name+" is out of range")
		}
		if amount.IsNegative() {
			return compliance.EvaluationInput{}, shared.NewDomainError(shared.CodeInvalidInput, f.name+" cannot be negative")
		}
		*f.dst = amount.Amount()
	}
	return in, nil
}
