package valueobject

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyPlaces is the number of fractional digits kept for any monetary amount.
const MoneyPlaces int32 = 2

const rupeeSymbol = "₹"

// Bounds on user-entered amounts. ₹10^15 is far beyond any GST return.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 10
)

// ErrAmountOutOfRange is returned for amounts with more digits than
// maxIntegerDigits before or maxFractionDigits after the decimal point.
var ErrAmountOutOfRange = errors.New("amount has too many digits")

// plainAmount is optionally signed positional notation. Exponent forms are
// not amounts.
var plainAmount = regexp.MustCompile(`^([+-]?)(\d*)(?:\.(\d*))?$`)

// indianPrinter groups digits the en-IN way (12,34,567).
var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Money is an immutable rupee amount.
type Money struct {
	amount decimal.Decimal
}

// NewINR creates an INR amount
func NewINR(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// ParseINR parses a user-entered amount. Blank or non-numeric text yields
// zero; thousands separators and a leading rupee sign are tolerated.
// Amounts outside the digit bounds return ErrAmountOutOfRange.
func ParseINR(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, rupeeSymbol)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	m := plainAmount.FindStringSubmatch(s)
	if m == nil || m[2]+m[3] == "" {
		return Money{amount: decimal.Zero}, nil
	}
	if len(strings.TrimLeft(m[2], "0")) > maxIntegerDigits || len(m[3]) > maxFractionDigits {
		return Money{amount: decimal.Zero}, ErrAmountOutOfRange
	}

	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return Money{amount: decimal.Zero}, nil
	}
	return NewINR(d), nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

// Format renders the amount with the rupee symbol and Indian digit
// grouping, e.g. ₹1,00,000.00. The amount is rounded half away from zero.
func (m Money) Format() string {
	rounded := m.amount.Round(MoneyPlaces)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole, frac, _ := strings.Cut(rounded.StringFixed(MoneyPlaces), ".")
	return sign + rupeeSymbol + groupIndian(whole) + "." + frac
}

// groupIndian inserts separators into a run of digits: the last three,
// then every two. Integers that fit a uint64 go through the en-IN printer.
func groupIndian(digits string) string {
	if u, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return indianPrinter.Sprint(number.Decimal(u))
	}
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	if len(head)%2 == 1 {
		b.WriteString(head[:1])
		head = head[1:]
	} else {
		b.WriteString(head[:2])
		head = head[2:]
	}
	for ; len(head) > 0; head = head[2:] {
		b.WriteString(",")
		b.WriteString(head[:2])
	}
	b.WriteString(",")
	b.WriteString(tail)
	return b.String()
}
