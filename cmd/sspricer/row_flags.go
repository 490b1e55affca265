package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// rowFlags describes a single pricing row on the command line
type rowFlags struct {
	id          string
	gender      string
	age         int
	paymentType string
	frequency   string
	start       string
	end         string
	amount      string
	increase    string
}

func (rf *rowFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&rf.id, "id", "row-1", "Row identifier")
	f.StringVar(&rf.gender, "gender", "", "Payee gender (male, female)")
	f.IntVar(&rf.age, "age", 0, "Payee age")
	f.StringVar(&rf.paymentType, "type", string(domain.PaymentTypeLifeContingent), "Payment type (LCP, GP)")
	f.StringVar(&rf.frequency, "frequency", "", "Payment frequency (Monthly, Quarterly, Semiannually, Annually, Lump Sum)")
	f.StringVar(&rf.start, "start", "", "First payment date (YYYY-MM-DD)")
	f.StringVar(&rf.end, "end", "", "Last payment date (YYYY-MM-DD)")
	f.StringVar(&rf.amount, "amount", "", "Payment amount")
	f.StringVar(&rf.increase, "increase", "", "Annual increase in percent (configured default when empty)")

	for _, name := range []string{"gender", "age", "start", "end", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (rf *rowFlags) row() (domain.PricingRow, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(rf.amount))
	if err != nil {
		return domain.PricingRow{}, fmt.Errorf("invalid --amount %q: %w", rf.amount, err)
	}

	row := domain.PricingRow{
		ID:          rf.id,
		Gender:      rf.gender,
		Age:         rf.age,
		PaymentType: domain.PaymentType(strings.ToUpper(strings.TrimSpace(rf.paymentType))),
		StartDate:   rf.start,
		EndDate:     rf.end,
		Amount:      amount,
	}
	if rf.frequency != "" {
		row.Frequency = domain.ParsePaymentFrequency(rf.frequency)
	}
	if rf.increase != "" {
		inc, err := decimal.NewFromString(strings.TrimSpace(rf.increase))
		if err != nil {
			return domain.PricingRow{}, fmt.Errorf("invalid --increase %q: %w", rf.increase, err)
		}
		row.AnnualIncrease = &inc
	}
	return row, nil
}
