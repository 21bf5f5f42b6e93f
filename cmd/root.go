package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/logger"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/store"
)

var (
	flagDB      string
	flagSession string
	flagQuiet   bool
	flagVerbose bool
	flagNow     string
)

var rootCmd = &cobra.Command{
	Use:   "shieldplan",
	Short: "Financial risk assessment for advisors",
	Long: "Collect a client's financial profile, then report insurance need, " +
		"coverage gap, tax diversification and IUL suitability.",
	SilenceUsage: true,
	RunE:         runAssess,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite store path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagSession, "session", "s", "", "Session to read and write (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	_ = rootCmd.PersistentFlags().MarkHidden("now")
}

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.Path = flagDB
	}
	if flagSession != "" {
		cfg.General.Session = flagSession
	}
	switch {
	case flagVerbose:
		cfg.Log.Level = "debug"
	case flagQuiet:
		cfg.Log.Level = "error"
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *logger.Logger {
	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %v, using defaults\n", err)
		l, _ = logger.New("warn", "console")
	}
	return l
}

// now returns the evaluation time, honoring --now.
func now() time.Time {
	if flagNow == "" {
		return time.Now()
	}
	t, err := time.Parse(model.DateLayout, flagNow)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ignoring --now %q: want YYYY-MM-DD\n", flagNow)
		return time.Now()
	}
	return t
}

// env is what most commands need: config, logger and the session store.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	backend store.Backend
	session *store.Session
}

func (e *env) Close() {
	if e.backend != nil {
		_ = e.backend.Close()
	}
	e.log.Sync()
}

// openEnv loads config and opens the configured store for sessionID, or for
// the configured session when sessionID is blank.
func openEnv(ctx context.Context, sessionID string) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	backend, err := store.Open(ctx, store.Options{
		Driver:      cfg.Store.Driver,
		Path:        cfg.Store.Path,
		DatabaseURL: cfg.Store.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if sessionID == "" {
		sessionID = cfg.General.Session
	}
	log.Debug("store opened", "driver", cfg.Store.Driver, "session", sessionID)

	return &env{
		cfg:     cfg,
		log:     log,
		backend: backend,
		session: store.NewSession(backend, sessionID, store.WithLogger(log), store.WithClock(now)),
	}, nil
}
