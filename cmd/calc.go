package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/cli"
)

var flagCalcJSON bool

var (
	dimeIn      = calc.DefaultDIMEInput()
	taxFreeIn   = calc.DefaultTaxFreeInput()
	annuityIn   = calc.DefaultAnnuityInput()
	longevityIn = calc.DefaultLongevityInput()
	inflationIn = calc.DefaultInflationInput()
	iulIn       = calc.DefaultIULInput()
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run a standalone planning calculator",
	Long:  "Calculators take their inputs as flags. Out-of-range values are clamped.",
}

var calcDIMECmd = &cobra.Command{
	Use:   "dime",
	Short: "Life insurance need by the DIME method",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.DIME(dimeIn)
		return printCalc(r, "DIME INSURANCE NEED", cli.Table{
			Headers: []string{"Component", "Amount"},
			Rows: [][]string{
				{"Debt", cli.FormatCurrency(r.Debt)},
				{fmt.Sprintf("Income (%s)", cli.FormatYears(r.Input.YearsOfIncome)), cli.FormatCurrency(r.Income)},
				{"Mortgage", cli.FormatCurrency(r.Mortgage)},
				{"Education and final expenses", cli.FormatCurrency(r.Education)},
				{"---"},
				{"Total need", cli.FormatCurrency(r.Total)},
			},
		})
	},
}

var calcTaxFreeCmd = &cobra.Command{
	Use:   "taxfree",
	Short: "Compare tax-free, tax-deferred and taxable growth",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.TaxFreeEstimate(taxFreeIn)
		return printCalc(r, "TAX-FREE RETIREMENT", cli.Table{
			Title:   fmt.Sprintf("%s/mo for %s", cli.FormatCurrency(r.Input.MonthlyContribution), cli.FormatYears(r.YearsToRetirement)),
			Headers: []string{"Bucket", "Value at retirement", "Annual income"},
			Rows: [][]string{
				{"Tax-free", cli.FormatCurrency(r.TaxFreeValue), cli.FormatCurrency(r.TaxFreeIncome)},
				{"Tax-deferred", cli.FormatCurrency(r.TaxDeferredValue), cli.FormatCurrency(r.TaxDeferredIncome)},
				{"Taxable", cli.FormatCurrency(r.TaxableValue), cli.FormatCurrency(r.TaxableIncome)},
				{"---"},
				{"Contributed", cli.FormatCurrency(r.TotalContributed), ""},
				{"Lifetime tax savings", "", cli.FormatCurrency(r.LifetimeTaxSavings)},
			},
		})
	},
}

var calcAnnuityCmd = &cobra.Command{
	Use:   "annuity",
	Short: "Income from an immediate annuity",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.Annuity(annuityIn)
		return printCalc(r, "ANNUITY INCOME", cli.Table{
			Rows: [][]string{
				{"Annual income", cli.FormatCurrency(r.AnnualIncome)},
				{"Monthly income", cli.FormatCurrencyCents(r.MonthlyIncome)},
				{fmt.Sprintf("Payments to age %d", calc.LifeExpectancy), cli.FormatCurrency(r.TotalPayments)},
				{"Income in 10 years, inflation-adjusted", cli.FormatCurrency(r.InflationAdjustedIncome)},
				{"Break-even", fmt.Sprintf("%.1f years (age %d)", r.BreakEvenYears, r.BreakEvenAge)},
			},
		})
	},
}

var calcLongevityCmd = &cobra.Command{
	Use:   "longevity",
	Short: "How long savings last under inflating withdrawals",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.Longevity(longevityIn)
		risk := "on track"
		if r.AtRisk {
			risk = fmt.Sprintf("at risk: short %s", cli.FormatYears(r.YearsNeeded-r.YearsRemaining))
		}
		return printCalc(r, "LONGEVITY RISK", cli.Table{
			Rows: [][]string{
				{"Savings last", fmt.Sprintf("%s (to age %d)", cli.FormatYears(r.YearsRemaining), r.DepletionAge)},
				{fmt.Sprintf("Needed to age %d", calc.LifeExpectancy), cli.FormatYears(r.YearsNeeded)},
				{"Withdrawal rate", cli.FormatPercent(r.WithdrawalRate)},
				{"Safe withdrawal", fmt.Sprintf("%s (%s)", cli.FormatCurrency(r.SafeAnnualWithdrawal), cli.FormatPercent(r.SafeWithdrawalRate))},
				{"Over safe amount", cli.FormatCurrency(r.Shortfall)},
				{"Outlook", risk},
			},
		})
	},
}

var calcInflationCmd = &cobra.Command{
	Use:   "inflation",
	Short: "Stress retirement spending against inflation",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.InflationStress(inflationIn)
		return printCalc(r, "INFLATION STRESS", cli.Table{
			Headers: []string{"", fmt.Sprintf("At %.1f%%", r.Input.Inflation), fmt.Sprintf("At %.0f%%", calc.HighInflationRate)},
			Rows: [][]string{
				{"Final-year expenses", cli.FormatCurrency(r.FutureExpenses), cli.FormatCurrency(r.HighInflationExpenses)},
				{"Total needed", cli.FormatCurrency(r.TotalNeeded), cli.FormatCurrency(r.HighInflationTotal)},
				{"---"},
				{"Purchasing power lost", cli.FormatPercent(r.PurchasingPowerLoss), ""},
				{"Real return", cli.FormatPercent(r.RealReturn), ""},
				{"Shortfall vs savings", cli.FormatCurrency(r.Shortfall), ""},
				{"Extra needed at high inflation", "", cli.FormatCurrency(r.AdditionalNeeded)},
			},
		})
	},
}

var calcIULCmd = &cobra.Command{
	Use:   "iul",
	Short: "Compare an IUL with a 401(k)",
	RunE: func(_ *cobra.Command, _ []string) error {
		r := calc.IULComparison(iulIn)
		if flagCalcJSON {
			return printJSON(r)
		}
		fmt.Println()
		fmt.Println(cli.RenderTitle("IUL VS 401(K)"))
		fmt.Println()
		fmt.Print(renderIULResult(r))
		return nil
	},
}

func init() {
	calcCmd.PersistentFlags().BoolVar(&flagCalcJSON, "json", false, "Print the result as JSON")

	f := calcDIMECmd.Flags()
	f.Float64Var(&dimeIn.AnnualIncome, "income", dimeIn.AnnualIncome, "Annual income")
	f.IntVar(&dimeIn.YearsOfIncome, "years", dimeIn.YearsOfIncome, "Years of income to replace (5-30)")
	f.Float64Var(&dimeIn.MortgageBalance, "mortgage", dimeIn.MortgageBalance, "Mortgage balance")
	f.Float64Var(&dimeIn.CreditCardDebt, "credit-cards", dimeIn.CreditCardDebt, "Credit card debt")
	f.Float64Var(&dimeIn.AutoLoans, "auto-loans", dimeIn.AutoLoans, "Auto loans")
	f.Float64Var(&dimeIn.StudentLoans, "student-loans", dimeIn.StudentLoans, "Student loans")
	f.Float64Var(&dimeIn.OtherDebts, "other-debts", dimeIn.OtherDebts, "Other debts")
	f.IntVar(&dimeIn.Dependents, "dependents", dimeIn.Dependents, "Children to educate")
	f.Float64Var(&dimeIn.CollegePerChild, "college", dimeIn.CollegePerChild, "College cost per child")
	f.Float64Var(&dimeIn.FinalExpenses, "final-expenses", dimeIn.FinalExpenses, "Final expenses")

	f = calcTaxFreeCmd.Flags()
	f.IntVar(&taxFreeIn.CurrentAge, "age", taxFreeIn.CurrentAge, "Current age (18-70)")
	f.IntVar(&taxFreeIn.RetirementAge, "retire", taxFreeIn.RetirementAge, "Retirement age")
	f.Float64Var(&taxFreeIn.MonthlyContribution, "monthly", taxFreeIn.MonthlyContribution, "Monthly contribution")
	f.Float64Var(&taxFreeIn.TaxBracket, "bracket", taxFreeIn.TaxBracket, "Tax bracket percent (10-37)")
	f.Float64Var(&taxFreeIn.ExpectedReturn, "return", taxFreeIn.ExpectedReturn, "Expected return percent (3-12)")

	f = calcAnnuityCmd.Flags()
	f.Float64Var(&annuityIn.PurchaseAmount, "amount", annuityIn.PurchaseAmount, "Purchase amount")
	f.IntVar(&annuityIn.Age, "age", annuityIn.Age, "Age at purchase (50-80)")
	f.Float64Var(&annuityIn.PayoutRate, "payout", annuityIn.PayoutRate, "Payout rate percent (3-8)")
	f.Float64Var(&annuityIn.Inflation, "inflation", annuityIn.Inflation, "Inflation percent (0-3)")

	f = calcLongevityCmd.Flags()
	f.Float64Var(&longevityIn.CurrentSavings, "savings", longevityIn.CurrentSavings, "Current savings")
	f.IntVar(&longevityIn.CurrentAge, "age", longevityIn.CurrentAge, "Current age (50-80)")
	f.Float64Var(&longevityIn.AnnualWithdrawal, "withdrawal", longevityIn.AnnualWithdrawal, "First-year withdrawal")
	f.Float64Var(&longevityIn.ExpectedReturn, "return", longevityIn.ExpectedReturn, "Expected return percent (2-10)")
	f.Float64Var(&longevityIn.Inflation, "inflation", longevityIn.Inflation, "Inflation percent (1-5)")

	f = calcInflationCmd.Flags()
	f.Float64Var(&inflationIn.CurrentSavings, "savings", inflationIn.CurrentSavings, "Current savings")
	f.IntVar(&inflationIn.YearsInRetirement, "years", inflationIn.YearsInRetirement, "Years in retirement (10-40)")
	f.Float64Var(&inflationIn.AnnualExpenses, "expenses", inflationIn.AnnualExpenses, "Annual expenses today")
	f.Float64Var(&inflationIn.Inflation, "inflation", inflationIn.Inflation, "Inflation percent (1-6)")
	f.Float64Var(&inflationIn.PortfolioReturn, "return", inflationIn.PortfolioReturn, "Portfolio return percent (3-10)")

	f = calcIULCmd.Flags()
	f.IntVar(&iulIn.Age, "age", iulIn.Age, "Current age (25-60)")
	f.Float64Var(&iulIn.MonthlyContribution, "monthly", iulIn.MonthlyContribution, "Monthly contribution")
	f.IntVar(&iulIn.YearsContributing, "years", iulIn.YearsContributing, "Years contributing (10-40)")
	f.Float64Var(&iulIn.MarketReturn, "return", iulIn.MarketReturn, "Market return percent (4-12)")
	f.Float64Var(&iulIn.MarketVolatility, "volatility", iulIn.MarketVolatility, "Market volatility percent (5-30)")

	calcCmd.AddCommand(calcDIMECmd, calcTaxFreeCmd, calcAnnuityCmd, calcLongevityCmd, calcInflationCmd, calcIULCmd)
	rootCmd.AddCommand(calcCmd)
}

func printCalc(result any, title string, t cli.Table) error {
	if flagCalcJSON {
		return printJSON(result)
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(t))
	return nil
}
