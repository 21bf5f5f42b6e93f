package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
	"github.com/guardianshield/shieldplan/internal/tui"
)

var (
	flagReportJSON        bool
	flagReportSection     string
	flagReportInteractive bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the risk assessment report for the session",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportJSON, "json", false, "Print the report as JSON")
	reportCmd.Flags().StringVar(&flagReportSection, "section", "all", "Section to show (summary, coverage, buckets, recommendations)")
	reportCmd.Flags().BoolVarP(&flagReportInteractive, "interactive", "i", false, "Open the report in the dashboard")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	section, err := cli.ParseReportSection(flagReportSection)
	if err != nil {
		return err
	}

	ctx := context.Background()
	e, err := openEnv(ctx, "")
	if err != nil {
		return err
	}
	defer e.Close()

	if flagReportInteractive {
		prepareTerminal(e.cfg.Appearance.Theme)
		app := tui.NewReportApp(ctx, tui.Options{
			Store:   e.session,
			Logger:  e.log,
			Now:     now,
			Session: e.session.ID(),
			Config:  &e.cfg,
		})
		return runProgram(app)
	}

	p, err := loadProfile(ctx, e)
	if err != nil {
		return err
	}
	r := pipeline.Derive(p, now())

	if flagReportJSON {
		return printJSON(r)
	}
	fmt.Println()
	fmt.Print(cli.RenderReport(r, section))
	return nil
}

// loadProfile loads the session's committed profile. A missing assessment
// exits with status 2.
func loadProfile(ctx context.Context, e *env) (model.Profile, error) {
	p, err := e.session.Load(ctx)
	if errors.Is(err, store.ErrAbsent) {
		return p, &exitError{code: 2, err: fmt.Errorf(
			"no assessment for session %q; run `shieldplan assess` first", e.session.ID())}
	}
	return p, err
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
