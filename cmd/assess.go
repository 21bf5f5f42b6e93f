package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/source"
	"github.com/guardianshield/shieldplan/internal/tui"
	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

var (
	flagAssessFrom   string
	flagAssessSubmit bool
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run the five-section assessment",
	Long: "Walk through the assessment interactively. With --from, prefill it from a " +
		"JSON, JSONL intake log or TOML profile; with --submit (or a directory) import " +
		"without the interactive screens.",
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVarP(&flagAssessFrom, "from", "f", "", "Profile file or directory to import")
	assessCmd.Flags().BoolVar(&flagAssessSubmit, "submit", false, "Commit the imported profile without the TUI")
	rootCmd.Flags().AddFlagSet(assessCmd.Flags())
	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	var files []source.DiscoveredFile
	if flagAssessFrom != "" {
		var err error
		files, err = source.Discover(flagAssessFrom)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no profile files found in %s", flagAssessFrom)
		}
	}

	if len(files) > 1 || (len(files) == 1 && flagAssessSubmit) {
		return importFiles(ctx, files)
	}

	e, err := openEnv(ctx, "")
	if err != nil {
		return err
	}
	defer e.Close()

	// The setup form saves this copy, so flag overrides stay out of the file.
	saved, _ := config.Load()
	opts := tui.Options{
		Store:     e.session,
		Logger:    e.log,
		Now:       now,
		Session:   e.session.ID(),
		Config:    &saved,
		NeedSetup: !config.Exists(),
	}
	if len(files) == 1 {
		res := source.ParseFile(files[0])
		if res.Err != nil {
			return res.Err
		}
		opts.Seed = &res.Profile
	}

	prepareTerminal(e.cfg.Appearance.Theme)
	return runProgram(tui.NewApp(ctx, opts))
}

// prepareTerminal must run before the app is built; styles read the theme
// at construction.
func prepareTerminal(themeName string) {
	theme.SetActive(themeName)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func runProgram(app tui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// importFiles replays each file through the wizard gates and commits it. A
// single file goes to the selected session; several files each get the
// session named by their content or file name.
func importFiles(ctx context.Context, files []source.DiscoveredFile) error {
	var (
		rows   [][]string
		failed int
	)

	for _, df := range files {
		res := source.ParseFile(df)
		if res.Err != nil {
			failed++
			rows = append(rows, []string{df.Path, "-", res.Err.Error(), "-"})
			continue
		}

		sessionID := ""
		if len(files) > 1 {
			sessionID = res.SessionID
		}
		e, err := openEnv(ctx, sessionID)
		if err != nil {
			return err
		}

		result, score := "imported", "-"
		wiz := assessment.New(assessment.WithClock(now))
		if err := wiz.Replay(ctx, res.Profile, e.session); err != nil {
			result = err.Error()
			failed++
			e.log.Warn("import failed", "file", df.Path, "error", err)
		} else {
			score = fmt.Sprintf("%d", pipeline.Derive(res.Profile, now()).Suitability.Score)
			e.log.Info("profile imported", "file", df.Path, "session", e.session.ID(), "snapshots", res.Snapshots)
		}
		rows = append(rows, []string{df.Path, e.session.ID(), result, score})
		e.Close()
	}

	if !flagQuiet {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Import",
			Headers: []string{"File", "Session", "Result", "Score"},
			Rows:    rows,
		}))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}
