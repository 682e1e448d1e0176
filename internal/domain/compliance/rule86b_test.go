package compliance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseInput() EvaluationInput {
	return EvaluationInput{
		TaxableValue: d("6000000"),
		OutputTax:    d("100000"),
		ITCAvailable: d("100000"),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("A: large supplier with full ITC pays 1% in cash", func(t *testing.T) {
		res := Evaluate(baseInput())

		require.True(t, res.Applies)
		assert.Equal(t, ReasonApplies, res.Reason)
		require.NotNil(t, res.Breakdown)
		assertDecimal(t, "6000000", res.Breakdown.TaxableValue, "taxable_value")
		assertDecimal(t, "100000", res.Breakdown.OutputTax, "output_tax")
		assertDecimal(t, "100000", res.Breakdown.ITCAvailable, "itc_available")
		assertDecimal(t, "99000", res.Breakdown.MaxITCAllowed, "max_itc_allowed")
		assertDecimal(t, "99000", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "1000", res.Breakdown.RequiredCashPayment, "required_cash_payment")
		assertDecimal(t, "1000", res.Breakdown.MinimumRequiredCash, "minimum_required_cash")
		assertDecimal(t, "0", res.Breakdown.CumulativeCashPercentage, "cumulative_cash_percentage")
	})

	t.Run("B: taxable value exactly at threshold", func(t *testing.T) {
		in := baseInput()
		in.TaxableValue = d("5000000")
		res := Evaluate(in)

		assert.False(t, res.Applies)
		assert.Equal(t, ReasonThresholdNotMet, res.Reason)
		assert.Contains(t, res.ReasonText(), "₹50,00,000")
		assert.Nil(t, res.Breakdown)
	})

	t.Run("C: government entity", func(t *testing.T) {
		in := baseInput()
		in.ExceptionGovernmentEntity = true
		res := Evaluate(in)

		assert.False(t, res.Applies)
		assert.Equal(t, ReasonGovernmentException, res.Reason)
		assert.Contains(t, res.ReasonText(), "Govt/PSU")
		assert.Nil(t, res.Breakdown)
	})

	t.Run("D: cumulative cash above one percent", func(t *testing.T) {
		in := baseInput()
		in.CumulativeCashPaid = d("2000")
		in.CumulativeOutputTax = d("100000")
		res := Evaluate(in)

		assert.False(t, res.Applies)
		assert.Equal(t, ReasonCumulativeCash, res.Reason)
		require.NotNil(t, res.CumulativeCashPercentage)
		assertDecimal(t, "2.00", *res.CumulativeCashPercentage, "cumulative_cash_percentage")
		assert.Nil(t, res.Breakdown)
	})

	t.Run("E: zero output tax still applies with zero cash", func(t *testing.T) {
		in := EvaluationInput{TaxableValue: d("6000000")}
		res := Evaluate(in)

		require.True(t, res.Applies)
		require.NotNil(t, res.Breakdown)
		assertDecimal(t, "0", res.Breakdown.MaxITCAllowed, "max_itc_allowed")
		assertDecimal(t, "0", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "0", res.Breakdown.RequiredCashPayment, "required_cash_payment")
		assertDecimal(t, "0", res.Breakdown.MinimumRequiredCash, "minimum_required_cash")
		assertDecimal(t, "0", res.Breakdown.CumulativeCashPercentage, "cumulative_cash_percentage")
	})
}

func TestEvaluate_ThresholdGate(t *testing.T) {
	for _, v := range []string{"0", "1", "4999999.99", "5000000", "5000000.004"} {
		t.Run(v, func(t *testing.T) {
			in := baseInput()
			in.TaxableValue = d(v)
			in.ExceptionGovernmentEntity = true
			res := Evaluate(in)
			assert.False(t, res.Applies)
			assert.Equal(t, ReasonThresholdNotMet, res.Reason)
		})
	}

	t.Run("rounding lifts value just above the threshold", func(t *testing.T) {
		in := baseInput()
		in.TaxableValue = d("5000000.005")
		res := Evaluate(in)
		assert.True(t, res.Applies)
		assertDecimal(t, "5000000.01", res.Breakdown.TaxableValue, "taxable_value")
	})
}

func TestEvaluate_ExceptionPrecedence(t *testing.T) {
	tests := []struct {
		name                   string
		incomeTax, refund, gov bool
		want                   ReasonCode
	}{
		{"income tax only", true, false, false, ReasonIncomeTaxException},
		{"refund only", false, true, false, ReasonRefundException},
		{"government only", false, false, true, ReasonGovernmentException},
		{"income tax wins over refund", true, true, false, ReasonIncomeTaxException},
		{"income tax wins over government", true, false, true, ReasonIncomeTaxException},
		{"refund wins over government", false, true, true, ReasonRefundException},
		{"all three", true, true, true, ReasonIncomeTaxException},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.ExceptionIncomeTaxPaid = tt.incomeTax
			in.ExceptionRefundUnutilisedITC = tt.refund
			in.ExceptionGovernmentEntity = tt.gov
			// a qualifying cumulative percentage must not change the reason
			in.CumulativeCashPaid = d("5000")

			res := Evaluate(in)
			assert.False(t, res.Applies)
			assert.Equal(t, tt.want, res.Reason)
			assert.Nil(t, res.Breakdown)
			assert.Nil(t, res.CumulativeCashPercentage)
		})
	}
}

func TestEvaluate_CumulativeCash(t *testing.T) {
	tests := []struct {
		name           string
		cashPaid       string
		cumulativeOut  string
		wantApplies    bool
		wantPercentage string
	}{
		{"exactly one percent still applies", "1000", "100000", true, "1.00"},
		{"1.001 percent rounds down to the limit", "1001", "100000", true, "1.00"},
		{"just above one percent", "1010", "100000", false, "1.01"},
		{"defaults to monthly output tax", "1500", "0", false, "1.50"},
		{"rounds half away from zero", "1005", "100000", false, "1.01"},
		{"below one percent", "500", "100000", true, "0.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.CumulativeCashPaid = d(tt.cashPaid)
			in.CumulativeOutputTax = d(tt.cumulativeOut)
			res := Evaluate(in)

			require.NotNil(t, res.CumulativeCashPercentage)
			assert.Equal(t, tt.wantApplies, res.Applies)
			assertDecimal(t, tt.wantPercentage, *res.CumulativeCashPercentage, "pct")
			if res.Applies {
				assertDecimal(t, tt.wantPercentage, res.Breakdown.CumulativeCashPercentage, "breakdown pct")
			}
		})
	}
}

func TestEvaluate_ITCCap(t *testing.T) {
	t.Run("excess ITC is capped at 99 percent", func(t *testing.T) {
		in := baseInput()
		in.ITCAvailable = d("500000")
		res := Evaluate(in)
		require.True(t, res.Applies)
		assertDecimal(t, "99000", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "1000", res.Breakdown.RequiredCashPayment, "required_cash_payment")
	})

	t.Run("ITC below the cap is used in full", func(t *testing.T) {
		in := baseInput()
		in.ITCAvailable = d("60000")
		res := Evaluate(in)
		require.True(t, res.Applies)
		assertDecimal(t, "60000", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "40000", res.Breakdown.RequiredCashPayment, "required_cash_payment")
		assertDecimal(t, "1000", res.Breakdown.MinimumRequiredCash, "minimum_required_cash")
	})

	t.Run("odd paise round half away from zero", func(t *testing.T) {
		in := baseInput()
		in.OutputTax = d("12345.67")
		in.ITCAvailable = d("99999")
		res := Evaluate(in)
		require.True(t, res.Applies)
		// 12345.67 * 0.99 = 12222.2133
		assertDecimal(t, "12222.21", res.Breakdown.MaxITCAllowed, "max_itc_allowed")
		assertDecimal(t, "12222.21", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "123.46", res.Breakdown.RequiredCashPayment, "required_cash_payment")
		// 123.4567 rounds up
		assertDecimal(t, "123.46", res.Breakdown.MinimumRequiredCash, "minimum_required_cash")
	})

	t.Run("inputs are rounded before use", func(t *testing.T) {
		in := baseInput()
		in.OutputTax = d("100000.004")
		in.ITCAvailable = d("0.005")
		res := Evaluate(in)
		require.True(t, res.Applies)
		assertDecimal(t, "100000", res.Breakdown.OutputTax, "output_tax")
		assertDecimal(t, "0.01", res.Breakdown.ITCAvailable, "itc_available")
		assertDecimal(t, "0.01", res.Breakdown.ITCUsed, "itc_used")
		assertDecimal(t, "99999.99", res.Breakdown.RequiredCashPayment, "required_cash_payment")
	})
}

func TestEvaluate_RequiredCashNeverNegative(t *testing.T) {
	for _, out := range []string{"0", "0.01", "0.99", "1", "333.33", "100000", "9999999.99"} {
		for _, itc := range []string{"0", "0.01", "1", "50000", "99999999"} {
			in := baseInput()
			in.OutputTax = d(out)
			in.ITCAvailable = d(itc)
			res := Evaluate(in)
			require.True(t, res.Applies)
			b := res.Breakdown
			assert.False(t, b.RequiredCashPayment.IsNegative(), "output=%s itc=%s", out, itc)
			assert.True(t, b.ITCUsed.LessThanOrEqual(b.MaxITCAllowed))
			expected := b.OutputTax.Sub(decimal.Min(b.ITCAvailable, b.OutputTax.Mul(MaxITCShare).Round(2))).Round(2)
			assert.True(t, expected.Equal(b.RequiredCashPayment))
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := baseInput()
	in.OutputTax = d("54321.987")
	in.CumulativeCashPaid = d("321")
	in.CumulativeOutputTax = d("654321")

	first := Evaluate(in)
	second := Evaluate(in)
	assert.Equal(t, first.Applies, second.Applies)
	assert.Equal(t, first.Reason, second.Reason)
	require.NotNil(t, first.Breakdown)
	assert.Equal(t, first.Breakdown.RequiredCashPayment.String(), second.Breakdown.RequiredCashPayment.String())
	assert.Equal(t, first.Breakdown.CumulativeCashPercentage.String(), second.Breakdown.CumulativeCashPercentage.String())
}

func TestReasonCode_Message(t *testing.T) {
	for _, code := range []ReasonCode{
		ReasonThresholdNotMet, ReasonIncomeTaxException, ReasonRefundException,
		ReasonGovernmentException, ReasonCumulativeCash, ReasonApplies,
	} {
		assert.NotEmpty(t, code.Message(), code.String())
	}
	assert.Empty(t, ReasonCode("bogus").Message())
}
