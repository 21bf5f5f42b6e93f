package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the session's assessment and IUL flow state",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	e, err := openEnv(ctx, "")
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.session.Clear(ctx); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Cleared session %s\n", e.session.ID())
	}
	return nil
}
