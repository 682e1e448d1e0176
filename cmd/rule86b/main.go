// Command rule86b evaluates Rule 86B of the CGST Rules from the command
// line, with the same evaluator the site calculator uses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	complianceapp "github.com/shcya/backend/internal/application/compliance"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type options struct {
	req    complianceapp.EvaluateRequest
	format string
}

func newRootCmd() *cobra.Command {
	var (
		opts                                             options
		taxable, output, itc, cumulativeCash, cumulative string
	)

	cmd := &cobra.Command{
		Use:   "rule86b",
		Short: "Check whether Rule 86B restricts ITC utilisation",
		Long: `Evaluates Rule 86B for one month. Amounts are in rupees and may use
Indian digit grouping, e.g. 12,50,000.`,
		Example:       "  rule86b --taxable-value 60,00,000 --output-tax 10,80,000 --itc-available 10,80,000",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.req.TaxableValue = complianceapp.Amount(taxable)
			opts.req.OutputTax = complianceapp.Amount(output)
			opts.req.ITCAvailable = complianceapp.Amount(itc)
			opts.req.CumulativeCashPaid = complianceapp.Amount(cumulativeCash)
			opts.req.CumulativeOutputTax = complianceapp.Amount(cumulative)
			err := run(cmd, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", errorMessage(err))
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&taxable, "taxable-value", "", "taxable value of supplies for the month")
	f.StringVar(&output, "output-tax", "", "output tax liability for the month")
	f.StringVar(&itc, "itc-available", "", "input tax credit available")
	f.StringVar(&cumulativeCash, "cumulative-cash-paid", "", "output tax paid in cash so far this year")
	f.StringVar(&cumulative, "cumulative-output-tax", "", "total output tax so far this year")
	f.BoolVar(&opts.req.ExceptionIncomeTaxPaid, "income-tax-paid", false, "income tax above ₹1 lakh paid in each of the last two years")
	f.BoolVar(&opts.req.ExceptionRefundUnutilisedITC, "refund-unutilised-itc", false, "refund above ₹1 lakh of unutilised ITC received last year")
	f.BoolVar(&opts.req.ExceptionGovernmentEntity, "government-entity", false, "registered person is a government department or PSU")
	f.StringVarP(&opts.format, "format", "o", "text", "output format: text or json")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q, want text or json", opts.format)
	}

	resp, err := complianceapp.NewService(nil).Evaluate(cmd.Context(), opts.req)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printText(cmd.OutOrStdout(), resp)
}

func printText(out io.Writer, resp *complianceapp.EvaluateResponse) error {
	verdict := "Rule 86B does not apply"
	if resp.Applies {
		verdict = "Rule 86B applies"
	}
	fmt.Fprintf(out, "%s (%s)\n%s\n", verdict, resp.ReasonCode, resp.Reason)
	if resp.CumulativeCashPercentage != nil {
		fmt.Fprintf(out, "Cumulative cash payment: %s\n", *resp.CumulativeCashPercentage)
	}

	d := resp.DetailsFormatted
	if d == nil {
		return nil
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Taxable value", d.TaxableValue},
		{"Output tax", d.OutputTax},
		{"ITC available", d.ITCAvailable},
		{"Max ITC allowed (99%)", d.MaxITCAllowed},
		{"ITC used", d.ITCUsed},
		{"Cash payment required", d.RequiredCashPayment},
		{"Minimum cash (1%)", d.MinimumRequiredCash},
		{"Cash share of output tax", d.CumulativeCashPercentage},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r[0], r[1])
	}
	return tw.Flush()
}

func errorMessage(err error) string {
	if de, ok := shared.AsDomainError(err); ok {
		return de.Message
	}
	return err.Error()
}
