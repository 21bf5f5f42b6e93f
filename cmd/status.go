package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assessment and IUL flow state for the session",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	e, err := openEnv(ctx, "")
	if err != nil {
		return err
	}
	defer e.Close()

	completed, err := e.session.AssessmentCompleted(ctx)
	if err != nil {
		return err
	}
	entered, err := e.session.DerivedFlowEntered(ctx)
	if err != nil {
		return err
	}

	driver := e.cfg.Store.Driver
	if driver == "" {
		driver = "sqlite"
	}
	rows := [][]string{
		{"Session", e.session.ID()},
		{"Store", driver},
	}
	if sq, ok := e.backend.(*store.SQLite); ok {
		if n, err := sq.SessionCount(ctx); err == nil {
			rows = append(rows, []string{"Stored sessions", fmt.Sprintf("%d", n)})
		}
	}
	rows = append(rows, [][]string{
		{"Assessment", yesNo(completed, "completed", "not started")},
		{"IUL flow", yesNo(entered, "entered", "locked")},
	}...)

	if completed {
		p, err := e.session.Load(ctx)
		if err != nil && !errors.Is(err, store.ErrAbsent) {
			return err
		}
		if err == nil {
			r := pipeline.Derive(p, now())
			rows = append(rows,
				[]string{"---"},
				[]string{"Client", r.ClientName},
				[]string{"Suitability", fmt.Sprintf("%d/100 (%s)", r.Suitability.Score, r.Suitability.Fit)},
				[]string{"IUL", yesNo(r.Suitability.Recommend, "recommended", "not recommended")},
			)
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ASSESSMENT STATUS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	return nil
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
