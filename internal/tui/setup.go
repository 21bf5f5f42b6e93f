package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/store"
	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

// SetupValues holds the first-run answers bound to the setup form.
type SetupValues struct {
	Session     string
	Driver      string
	Path        string
	DatabaseURL string
	Theme       string
	LogLevel    string
}

// SetupValuesFrom prefills the setup form from cfg.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Session:     cfg.General.Session,
		Driver:      cfg.Store.Driver,
		Path:        cfg.Store.Path,
		DatabaseURL: cfg.Store.DatabaseURL,
		Theme:       cfg.Appearance.Theme,
		LogLevel:    cfg.Log.Level,
	}
}

// Apply writes the answers into cfg and activates the chosen theme.
func (v SetupValues) Apply(cfg *config.Config) {
	if s := strings.TrimSpace(v.Session); s != "" {
		cfg.General.Session = s
	}
	cfg.Store.Driver = v.Driver
	cfg.Store.Path = strings.TrimSpace(v.Path)
	cfg.Store.DatabaseURL = strings.TrimSpace(v.DatabaseURL)
	cfg.Appearance.Theme = v.Theme
	cfg.Log.Level = v.LogLevel
	theme.SetActive(v.Theme)
}

// NewSetupForm builds the first-run configuration form.
func NewSetupForm(v *SetupValues) *huh.Form {
	drivers := make([]huh.Option[string], 0, 4)
	for _, d := range store.Drivers() {
		drivers = append(drivers, huh.NewOption(d, d))
	}
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themes = append(themes, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to shieldplan").
				Description("A few settings before the first assessment.\nRun `shieldplan setup` anytime to change them."),
			huh.NewInput().
				Title("Session name").
				Description("Assessments are stored per session.").
				Value(&v.Session).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("session name is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage").
				Options(drivers...).
				Value(&v.Driver),
			huh.NewInput().
				Title("SQLite path").
				Placeholder(config.DefaultDBPath()).
				Value(&v.Path),
			huh.NewInput().
				Title("Database URL").
				Description("Only used by network drivers.").
				Placeholder("postgres://user@host/db").
				Value(&v.DatabaseURL),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithShowHelp(true)
}
