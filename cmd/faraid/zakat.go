package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"faraid-engine/internal/model"
)

func newZakatCmd(opts *rootOptions) *cobra.Command {
	var (
		req         model.ZakatRequest
		goldPrice   decimal.Decimal
		silverPrice decimal.Decimal
	)

	cmd := &cobra.Command{
		Use:   "zakat",
		Short: "Assess the Zakat due on a year's wealth",
		Example: `  faraid zakat --cash 12000 --liabilities 1500
  faraid zakat --gold-grams 90 --standard gold --gold-price 70 --silver-price 0.9`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("gold-price") != flags.Changed("silver-price") {
				return fmt.Errorf("--gold-price and --silver-price must be given together")
			}
			if flags.Changed("gold-price") {
				req.Prices = &model.ZakatPrices{GoldPerGram: goldPrice, SilverPerGram: silverPrice}
			}

			eng, cleanup, err := opts.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			resp := eng.ProcessZakat(cmd.Context(), &req)
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, resp, resp.CalculationMetadata.CalculationOutcome)
			}

			printMessages(out, resp.CalculationResult.Messages)
			if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
				return errFailed
			}
			printAssessment(out, resp.CalculationResult.Assessment)
			return nil
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&req.Assets.Cash), "cash", "cash and bank balances")
	f.Var(newDecimalValue(&req.Assets.GoldGrams), "gold-grams", "gold held, in grams")
	f.Var(newDecimalValue(&req.Assets.SilverGrams), "silver-grams", "silver held, in grams")
	f.Var(newDecimalValue(&req.Assets.Investments), "investments", "market value of investments")
	f.Var(newDecimalValue(&req.Assets.BusinessInventory), "inventory", "business inventory at market value")
	f.Var(newDecimalValue(&req.Assets.Receivables), "receivables", "money owed to you and expected back")
	f.Var(newDecimalValue(&req.Assets.Liabilities), "liabilities", "debts due now")
	f.Var(newDecimalValue(&goldPrice), "gold-price", "gold price per gram (skips the price feed)")
	f.Var(newDecimalValue(&silverPrice), "silver-price", "silver price per gram (skips the price feed)")
	f.StringVar(&req.Currency, "currency", "", "currency code for prices")
	f.StringVar(&req.Standard, "standard", "silver", "Nisab standard: gold or silver")
	return cmd
}

func printAssessment(w io.Writer, a *model.ZakatAssessment) {
	if a == nil {
		return
	}
	above := "no"
	if a.AboveNisab {
		above = "yes"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Rows(
			[]string{"Currency", a.Currency},
			[]string{"Standard", a.Standard},
			[]string{"Gold per gram", a.GoldPerGram},
			[]string{"Silver per gram", a.SilverPerGram},
			[]string{"Gold value", a.GoldValue},
			[]string{"Silver value", a.SilverValue},
			[]string{"Net wealth", a.NetWealth},
			[]string{"Nisab", a.Nisab},
			[]string{"Above Nisab", above},
			[]string{"Zakat due", a.ZakatDue},
		).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
