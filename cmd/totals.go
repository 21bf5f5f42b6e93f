package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/pipeline"
)

var flagTotalsJSON bool

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show asset and liability totals for the session",
	RunE:  runTotals,
}

func init() {
	totalsCmd.Flags().BoolVar(&flagTotalsJSON, "json", false, "Print totals as JSON")
	rootCmd.AddCommand(totalsCmd)
}

func runTotals(_ *cobra.Command, _ []string) error {
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
	t := pipeline.Totals(p)
	if flagTotalsJSON {
		return printJSON(t)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TOTALS  %s", p.FullName())))
	fmt.Println()
	fmt.Print(cli.RenderTotals(t))
	return nil
}
