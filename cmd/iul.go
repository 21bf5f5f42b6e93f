package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/pipeline"
)

var flagIULJSON bool

var iulCmd = &cobra.Command{
	Use:   "iul",
	Short: "Enter the IUL banking flow and show the illustration",
	Long: "Opens the IUL banking flow for a client the assessment recommends, " +
		"then compares an IUL with a 401(k) funded at 10% of income.",
	RunE: runIUL,
}

func init() {
	iulCmd.Flags().BoolVar(&flagIULJSON, "json", false, "Print the illustration as JSON")
	rootCmd.AddCommand(iulCmd)
}

func runIUL(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	e, err := openEnv(ctx, "")
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := loadProfile(ctx, e)
	if err != nil {
		return err
	}
	r := pipeline.Derive(p, now())
	if !r.Suitability.Recommend {
		return &exitError{code: 3, err: fmt.Errorf(
			"IUL is not recommended for %s (score %d/100)", r.ClientName, r.Suitability.Score)}
	}

	if err := e.session.MarkDerivedFlowEntered(ctx, true); err != nil {
		return err
	}
	e.log.Info("iul flow entered", "session", e.session.ID())

	res := calc.IULComparison(calc.IllustrationInput(r.Suitability.Age, r.Suitability.YearsToRetirement, p.AnnualIncome))
	if flagIULJSON {
		return printJSON(res)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("IUL BANKING  " + r.ClientName))
	fmt.Println()
	fmt.Print(renderIULResult(res))
	return nil
}

func renderIULResult(res calc.IULResult) string {
	in := res.Input
	return cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s/mo for %s, retiring at %d", cli.FormatCurrencyCents(in.MonthlyContribution), cli.FormatYears(in.YearsContributing), res.RetirementAge),
		Headers: []string{"", "401(k)", "IUL"},
		Rows: [][]string{
			{"Contributed", cli.FormatCurrency(res.TotalContributed), cli.FormatCurrency(res.TotalContributed)},
			{"Projected value", cli.FormatCurrency(res.Value401k), cli.FormatCurrency(res.ValueIUL)},
			{fmt.Sprintf("After a %.0f%% crash", calc.MarketCrashCut*100), cli.FormatCurrency(res.WorstCase401k), cli.FormatCurrency(res.WorstCaseIUL)},
			{"Credited rate", cli.FormatPercent(in.MarketReturn), cli.FormatPercent(min(in.MarketReturn, calc.IULCap))},
		},
	})
}
