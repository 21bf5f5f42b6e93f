// Package cmd implements the shieldplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Session: %s\n", cfg.General.Session)
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Driver:  %s (available: %v)\n", cfg.Store.Driver, store.Drivers())
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Store.DatabaseURL != "" {
			fmt.Printf("    URL:     %s\n", maskSecret(cfg.Store.DatabaseURL))
		} else {
			fmt.Println("    URL:     not configured")
		}
	case "memory":
	default:
		fmt.Printf("    Path:    %s\n", cfg.Store.Path)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:        %s\n", cfg.Server.Addr)
	fmt.Printf("    Session TTL:    %d minutes\n", cfg.Server.SessionTTLMinutes)
	if cfg.Server.SessionSecret != "" {
		fmt.Printf("    Session secret: %s\n", maskSecret(cfg.Server.SessionSecret))
	} else {
		fmt.Println("    Session secret: random per run")
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", cfg.Log.Level)
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  Run `shieldplan setup` to reconfigure.")
	return nil
}

func maskSecret(s string) string {
	if len(s) > 16 {
		return s[:8] + "..." + s[len(s)-4:]
	}
	if len(s) > 4 {
		return s[:4] + "..."
	}
	return "****"
}
