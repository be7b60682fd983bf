package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/NgigiN/carteira/internal/installment"
	"github.com/NgigiN/carteira/internal/intent"
	"github.com/NgigiN/carteira/internal/money"
)

func (a *app) parseCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   `parse "<frase>"`,
		Short: "Show how a message is classified and which records it would create",
		Long: `parse is a dry run: nothing is written to the ledger.

  carteira parse "Comprei um tênis de R$ 400 no cartão em 4x" --now 2024-01-15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseNow(at, a.cfg.Location)
			if err != nil {
				return err
			}
			return printParse(cmd.OutOrStdout(), strings.Join(args, " "), now)
		},
	}
	cmd.Flags().StringVar(&at, "now", "", "reference time, RFC3339 or YYYY-MM-DD (default: current time)")
	return cmd
}

// parseNow reads the --now flag in loc. Empty means the current time.
func parseNow(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if s == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func printParse(w io.Writer, message string, now time.Time) error {
	res := intent.Classify(message)
	fmt.Fprintf(w, "intent: %s\n", res.Kind)
	if res.Kind == intent.Query {
		fmt.Fprintf(w, "query: %s\n", res.Query)
	}
	if res.Kind != intent.Expense {
		return nil
	}

	p := res.Expense
	fmt.Fprintf(w, "description: %s\n", p.Description)
	fmt.Fprintf(w, "total: %s\n", money.Format(p.TotalAmount))
	fmt.Fprintf(w, "method: %s\n", p.Method)
	fmt.Fprintf(w, "category: %s\n", p.Category)
	if p.HasInstallments() {
		fmt.Fprintf(w, "installments: %dx %s\n", p.Installments.Count, money.Format(p.Installments.Amount))
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tDESCRIPTION\tPAID")
	for _, r := range installment.NewExpander().Expand(*p, now) {
		paid := "-"
		if r.Installment != nil {
			paid = fmt.Sprint(r.Installment.Paid)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date.Format(time.DateOnly), money.Format(r.Amount), r.Description, paid)
	}
	return tw.Flush()
}
