package compliance

import (
	"bytes"
	"encoding/json"

	"github.com/shcya/backend/internal/domain/compliance"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// EvaluateRequest carries the calculator form as typed by the visitor.
// Amounts are free text; blank or non-numeric values count as zero.
type EvaluateRequest struct {
	TaxableValue        Amount `json:"taxable_value"`
	OutputTax           Amount `json:"output_tax"`
	ITCAvailable        Amount `json:"itc_available"`
	CumulativeCashPaid  Amount `json:"cumulative_cash_paid"`
	CumulativeOutputTax Amount `json:"cumulative_output_tax"`

	ExceptionIncomeTaxPaid       bool `json:"exception_income_tax_paid"`
	ExceptionRefundUnutilisedITC bool `json:"exception_refund_unutilised_itc"`
	ExceptionGovernmentEntity    bool `json:"exception_government_entity"`
}

// Amount is a form amount. In JSON it may be a string ("12,500.50") or a
// bare number (12500.5); null leaves it blank.
type Amount string

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = Amount(n.String())
	}
	return nil
}

// Details is the breakdown with amounts rendered to two places.
type Details struct {
	TaxableValue             string `json:"taxable_value"`
	OutputTax                string `json:"output_tax"`
	ITCAvailable             string `json:"itc_available"`
	MaxITCAllowed            string `json:"max_itc_allowed"`
	ITCUsed                  string `json:"itc_used"`
	RequiredCashPayment      string `json:"required_cash_payment"`
	MinimumRequiredCash      string `json:"minimum_required_cash"`
	CumulativeCashPercentage string `json:"cumulative_cash_percentage"`
}

// EvaluateResponse is the calculator's result panel. Details and
// DetailsFormatted hold the same figures, plain and in rupees
// (₹12,34,567.89); both are present only when the rule applies.
type EvaluateResponse struct {
	Applies                  bool     `json:"applies"`
	ReasonCode               string   `json:"reason_code"`
	Reason                   string   `json:"reason"`
	Details                  *Details `json:"details,omitempty"`
	DetailsFormatted         *Details `json:"details_formatted,omitempty"`
	CumulativeCashPercentage *string  `json:"cumulative_cash_percentage,omitempty"`
}

// ToEvaluateResponse renders a domain result
func ToEvaluateResponse(r compliance.EvaluationResult) EvaluateResponse {
	resp := EvaluateResponse{
		Applies:    r.Applies,
		ReasonCode: r.Reason.String(),
		Reason:     r.ReasonText(),
	}
	if r.CumulativeCashPercentage != nil {
		pct := percent(*r.CumulativeCashPercentage)
		resp.CumulativeCashPercentage = &pct
	}
	if b := r.Breakdown; b != nil {
		resp.Details = &Details{
			TaxableValue:             fixed(b.TaxableValue),
			OutputTax:                fixed(b.OutputTax),
			ITCAvailable:             fixed(b.ITCAvailable),
			MaxITCAllowed:            fixed(b.MaxITCAllowed),
			ITCUsed:                  fixed(b.ITCUsed),
			RequiredCashPayment:      fixed(b.RequiredCashPayment),
			MinimumRequiredCash:      fixed(b.MinimumRequiredCash),
			CumulativeCashPercentage: fixed(b.CumulativeCashPercentage),
		}
		resp.DetailsFormatted = &Details{
			TaxableValue:             rupees(b.TaxableValue),
			OutputTax:                rupees(b.OutputTax),
			ITCAvailable:             rupees(b.ITCAvailable),
			MaxITCAllowed:            rupees(b.MaxITCAllowed),
			ITCUsed:                  rupees(b.ITCUsed),
			RequiredCashPayment:      rupees(b.RequiredCashPayment),
			MinimumRequiredCash:      rupees(b.MinimumRequiredCash),
			CumulativeCashPercentage: percent(b.CumulativeCashPercentage),
		}
	}
	return resp
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(valueobject.MoneyPlaces)
}

func rupees(d decimal.Decimal) string {
	return valueobject.NewINR(d).Format()
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
