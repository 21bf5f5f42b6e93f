package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/remote"
	"github.com/guardianshield/shieldplan/internal/source"
)

var (
	flagRemoteURL  string
	flagRemoteJSON bool
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Work with an assessment on a running shieldplan server",
	Long: "Talks to `shieldplan serve` over HTTP. The session cookie is kept " +
		"under the data directory so later commands reuse the same assessment.",
}

var remoteSubmitCmd = &cobra.Command{
	Use:   "submit FILE",
	Short: "Submit a profile file to the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemoteSubmit,
}

var remoteReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the report for the remote session",
	RunE:  runRemoteReport,
}

var remoteStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the remote session's assessment state",
	RunE:  runRemoteStatus,
}

var remoteIULCmd = &cobra.Command{
	Use:   "iul",
	Short: "Enter the IUL flow on the server and show the illustration",
	RunE:  runRemoteIUL,
}

var remoteClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the remote session's assessment",
	RunE:  runRemoteClear,
}

var remoteEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent server activity",
	RunE:  runRemoteEvents,
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&flagRemoteURL, "url", "", "Server base URL (default from config)")
	remoteCmd.PersistentFlags().BoolVar(&flagRemoteJSON, "json", false, "Print responses as JSON")

	remoteCmd.AddCommand(remoteSubmitCmd, remoteReportCmd, remoteStatusCmd, remoteIULCmd, remoteClearCmd, remoteEventsCmd)
	rootCmd.AddCommand(remoteCmd)
}

func tokenPath() string {
	return filepath.Join(config.DataDir(), "remote-tokens.json")
}

// loadTokens reads the saved session tokens, keyed by base URL.
func loadTokens() map[string]string {
	tokens := map[string]string{}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return tokens
	}
	_ = json.Unmarshal(data, &tokens)
	return tokens
}

func saveToken(baseURL, token string) error {
	tokens := loadTokens()
	if tokens[baseURL] == token {
		return nil
	}
	tokens[baseURL] = token
	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath()), 0o750); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), append(data, '\n'), 0o600)
}

// withRemote runs fn with a client resuming the saved session, then saves
// whatever token the server left in place.
func withRemote(fn func(ctx context.Context, c *remote.Client) error) error {
	base := flagRemoteURL
	if base == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		base = "http://" + cfg.Server.Addr
	}

	c, err := remote.NewClient(base, loadTokens()[base])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runErr := fn(ctx, c)
	if tok := c.Token(); tok != "" {
		if err := saveToken(base, tok); err != nil {
			fmt.Fprintf(os.Stderr, "  could not save session token: %v\n", err)
		}
	}
	return remoteErr(runErr)
}

func remoteErr(err error) error {
	var se *remote.SectionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, remote.ErrNoAssessment):
		return &exitError{code: 2, err: errors.New("no assessment on the server; run `shieldplan remote submit FILE` first")}
	case errors.Is(err, remote.ErrNotRecommended):
		return &exitError{code: 3, err: err}
	case errors.As(err, &se):
		return &exitError{code: 4, err: err}
	}
	return err
}

func runRemoteSubmit(_ *cobra.Command, args []string) error {
	p, err := source.ReadFile(args[0])
	if err != nil {
		return err
	}
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		if err := c.Submit(ctx, p); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("  Submitted assessment for %s\n", p.FullName())
		}
		return nil
	})
}

func runRemoteReport(_ *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		r, err := c.Report(ctx)
		if err != nil {
			return err
		}
		if flagRemoteJSON {
			return printJSON(r)
		}
		fmt.Println()
		fmt.Print(cli.RenderReport(r, cli.SectionAll))
		return nil
	})
}

func runRemoteStatus(_ *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		st, err := c.Status(ctx)
		if err != nil {
			return err
		}
		if flagRemoteJSON {
			return printJSON(st)
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{Rows: [][]string{
			{"Assessment", yesNo(st.AssessmentCompleted, "completed", "not started")},
			{"IUL flow", yesNo(st.DerivedFlowEntered, "entered", "locked")},
		}}))
		return nil
	})
}

func runRemoteIUL(_ *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		if _, err := c.EnterIUL(ctx); err != nil {
			return err
		}
		b, err := c.IULBanking(ctx)
		if err != nil {
			return err
		}
		if flagRemoteJSON {
			return printJSON(b)
		}
		fmt.Println()
		fmt.Println(cli.RenderTitle("IUL BANKING  " + b.ClientName))
		fmt.Println()
		fmt.Print(renderIULResult(b.Illustration))
		return nil
	})
}

func runRemoteClear(_ *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		if err := c.Clear(ctx); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Println("  Cleared remote assessment")
		}
		return nil
	})
}

func runRemoteEvents(_ *cobra.Command, _ []string) error {
	return withRemote(func(ctx context.Context, c *remote.Client) error {
		events, err := c.Events(ctx)
		if err != nil {
			return err
		}
		if flagRemoteJSON {
			return printJSON(events)
		}
		rows := make([][]string, 0, len(events))
		for _, ev := range events {
			rows = append(rows, []string{
				ev.Timestamp.Local().Format(time.DateTime),
				ev.Type,
				ev.Session,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Server activity",
			Headers: []string{"Time", "Event", "Session"},
			Rows:    rows,
		}))
		return nil
	})
}
