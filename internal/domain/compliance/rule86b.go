// Package compliance holds GST compliance checks offered on the public site.
// Checks are pure functions of their inputs; nothing here is persisted.
package compliance

import (
	"github.com/shopspring/decimal"
)

// Rule 86B thresholds. Amounts are in rupees.
var (
	// TaxableValueThreshold is the monthly taxable supply at or below which
	// the restriction never applies.
	TaxableValueThreshold = decimal.NewFromInt(5_000_000)
	// MaxITCShare is the largest share of output tax that may be discharged from ITC.
	MaxITCShare = decimal.RequireFromString("0.99")
	// MinCashShare is the share of output tax that must be paid in cash.
	MinCashShare = decimal.RequireFromString("0.01")
	// CumulativeCashPercentLimit is the year-to-date cash percentage above
	// which the restriction is lifted.
	CumulativeCashPercentLimit = decimal.NewFromInt(1)

	hundred = decimal.NewFromInt(100)
)

const places int32 = 2

// ReasonCode identifies which check decided an evaluation.
type ReasonCode string

const (
	ReasonThresholdNotMet     ReasonCode = "threshold_not_met"
	ReasonIncomeTaxException  ReasonCode = "exception_income_tax"
	ReasonRefundException     ReasonCode = "exception_refund_unutilised_itc"
	ReasonGovernmentException ReasonCode = "exception_government_entity"
	ReasonCumulativeCash      ReasonCode = "exception_cumulative_cash"
	ReasonApplies             ReasonCode = "applies"
)

var reasonMessages = map[ReasonCode]string{
	ReasonThresholdNotMet:     "Monthly taxable supplies ≤ ₹50,00,000 — Rule 86B not applicable.",
	ReasonIncomeTaxException:  "Exception: Income-tax paid > ₹1 lakh in each of last two FYs by required persons.",
	ReasonRefundException:     "Exception: Refund > ₹1 lakh on account of unutilised ITC in preceding FY.",
	ReasonGovernmentException: "Exception: Entity is Govt/PSU/Local authority/Statutory body.",
	ReasonCumulativeCash:      "Exception: Cumulative cash paid in FY exceeds 1% of cumulative output tax (till this month).",
	ReasonApplies:             "Rule 86B applies: at least 1% of this month's output tax must be paid from cash (unless exception).",
}

// Message returns the human readable explanation for the code.
func (c ReasonCode) Message() string {
	return reasonMessages[c]
}

// String implements fmt.Stringer
func (c ReasonCode) String() string {
	return string(c)
}

// EvaluationInput is one month's figures for a registered person.
// CumulativeOutputTax of zero means "this month is the whole year so far".
type EvaluationInput struct {
	TaxableValue        decimal.Decimal
	OutputTax           decimal.Decimal
	ITCAvailable        decimal.Decimal
	CumulativeCashPaid  decimal.Decimal
	CumulativeOutputTax decimal.Decimal

	ExceptionIncomeTaxPaid       bool
	ExceptionRefundUnutilisedITC bool
	ExceptionGovernmentEntity    bool
}

// Breakdown is the cash computation reported when the restriction applies.
type Breakdown struct {
	TaxableValue             decimal.Decimal
	OutputTax                decimal.Decimal
	ITCAvailable             decimal.Decimal
	MaxITCAllowed            decimal.Decimal
	ITCUsed                  decimal.Decimal
	RequiredCashPayment      decimal.Decimal
	MinimumRequiredCash      decimal.Decimal
	CumulativeCashPercentage decimal.Decimal
}

// EvaluationResult is either NotApplicable (Breakdown nil) or Applicable.
// CumulativeCashPercentage is set when the year-to-date check was reached.
type EvaluationResult struct {
	Applies                  bool
	Reason                   ReasonCode
	Breakdown                *Breakdown
	CumulativeCashPercentage *decimal.Decimal
}

// ReasonText is shorthand for Reason.Message().
func (r EvaluationResult) ReasonText() string {
	return r.Reason.Message()
}

// Normalize rounds every amount to paise and applies the cumulative output
// tax default. Evaluate calls it first; it is exported for callers that
// echo the effective inputs back.
func (in EvaluationInput) Normalize() EvaluationInput {
	out := in
	out.TaxableValue = in.TaxableValue.Round(places)
	out.OutputTax = in.OutputTax.Round(places)
	out.ITCAvailable = in.ITCAvailable.Round(places)
	out.CumulativeCashPaid = in.CumulativeCashPaid.Round(places)
	out.CumulativeOutputTax = in.CumulativeOutputTax.Round(places)
	if out.CumulativeOutputTax.IsZero() {
		out.CumulativeOutputTax = out.OutputTax
	}
	return out
}

// Evaluate decides whether Rule 86B restricts the use of ITC for the month.
// Checks run in a fixed order and the first one that matches decides:
// turnover threshold, the income tax, refund and government exceptions,
// then the year-to-date cash percentage.
func Evaluate(input EvaluationInput) EvaluationResult {
	in := input.Normalize()

	if in.TaxableValue.LessThanOrEqual(TaxableValueThreshold) {
		return notApplicable(ReasonThresholdNotMet)
	}
	if in.ExceptionIncomeTaxPaid {
		return notApplicable(ReasonIncomeTaxException)
	}
	if in.ExceptionRefundUnutilisedITC {
		return notApplicable(ReasonRefundException)
	}
	if in.ExceptionGovernmentEntity {
		return notApplicable(ReasonGovernmentException)
	}

	pct := CumulativeCashPercentage(in.CumulativeCashPaid, in.CumulativeOutputTax)
	if pct.GreaterThan(CumulativeCashPercentLimit) {
		res := notApplicable(ReasonCumulativeCash)
		res.CumulativeCashPercentage = &pct
		return res
	}

	maxITC := in.OutputTax.Mul(MaxITCShare).Round(places)
	itcUsed := decimal.Min(in.ITCAvailable, maxITC)

	return EvaluationResult{
		Applies: true,
		Reason:  ReasonApplies,
		Breakdown: &Breakdown{
			TaxableValue:             in.TaxableValue,
			OutputTax:                in.OutputTax,
			ITCAvailable:             in.ITCAvailable,
			MaxITCAllowed:            maxITC,
			ITCUsed:                  itcUsed,
			RequiredCashPayment:      in.OutputTax.Sub(itcUsed).Round(places),
			MinimumRequiredCash:      in.OutputTax.Mul(MinCashShare).Round(places),
			CumulativeCashPercentage: pct,
		},
		CumulativeCashPercentage: &pct,
	}
}

// CumulativeCashPercentage returns cash paid as a percentage of output tax,
// rounded to two places. It is zero when there is no output tax.
func CumulativeCashPercentage(cashPaid, outputTax decimal.Decimal) decimal.Decimal {
	if !outputTax.IsPositive() {
		return decimal.Zero
	}
	return cashPaid.Div(outputTax).Mul(hundred).Round(places)
}

func notApplicable(code ReasonCode) EvaluationResult {
	return EvaluationResult{Applies: false, Reason: code}
}
