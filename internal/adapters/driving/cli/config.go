package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marginote/shelfsync/internal/adapters/driven/config/file"
	"github.com/marginote/shelfsync/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local settings",
	Long: `View and set local application settings: the WeRead session cookie,
the Notion token and database IDs, and sync pacing.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Long: `Sets a settings value and persists it immediately.

Known keys:
  ` + file.KeyWereadCookie + `            WeRead session cookie (full Cookie header)
  ` + file.KeyNotionToken + `             Notion integration token
  ` + file.KeyNotionBookDB + `  Notion database for book pages
  ` + file.KeyNotionConfigDB + `  Notion database for sync configuration (optional)
  ` + file.KeyDataDir + `            directory for the local state database
  ` + file.KeyPaceMillis + `        delay between books in milliseconds`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the default sync configuration",
	Long: `Creates the default configuration rows in the Notion configuration
database: no status or author restriction, incremental mode. Does
nothing if a configuration already exists.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	cmd.Printf("Settings file: %s\n\n", settingsStore.Path())

	cmd.Println("[weread]")
	cmd.Printf("  cookie: %s\n", maskSecret(settingsStore.GetString(file.KeyWereadCookie)))

	cmd.Println("[notion]")
	cmd.Printf("  token: %s\n", maskSecret(settingsStore.GetString(file.KeyNotionToken)))
	cmd.Printf("  book database: %s\n", orUnset(settingsStore.GetString(file.KeyNotionBookDB)))
	cmd.Printf("  config database: %s\n", orUnset(settingsStore.GetString(file.KeyNotionConfigDB)))

	cmd.Println("[sync]")
	cmd.Printf("  data dir: %s\n", orUnset(settingsStore.GetString(file.KeyDataDir)))
	if ms := settingsStore.GetInt(file.KeyPaceMillis); ms > 0 {
		cmd.Printf("  pace: %dms\n", ms)
	} else {
		cmd.Printf("  pace: default\n")
	}

	return nil
}

// knownKeys guards against silently storing a misspelled key.
var knownKeys = map[string]bool{
	file.KeyWereadCookie:   true,
	file.KeyWereadBaseURL:  true,
	file.KeyNotionToken:    true,
	file.KeyNotionBookDB:   true,
	file.KeyNotionConfigDB: true,
	file.KeyDataDir:        true,
	file.KeyPaceMillis:     true,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if !knownKeys[key] {
		return fmt.Errorf("%w: unknown settings key %q", domain.ErrInvalidInput, key)
	}

	// Numeric keys are stored typed so GetInt sees them.
	var typed any = value
	if key == file.KeyPaceMillis {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		typed = n
	}

	if err := settingsStore.Set(key, typed); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		if err := initConfigStore(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()

	exists, err := configStore.Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking configuration: %w", err)
	}
	if exists {
		cmd.Println("Sync configuration already provisioned.")
		return nil
	}

	if err := configStore.CreateDefault(ctx); err != nil {
		return fmt.Errorf("creating default configuration: %w", err)
	}

	cmd.Println("Created default sync configuration: no status or author restriction, incremental mode.")
	return nil
}

// maskSecret hides all but a short prefix of a credential.
func maskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "****"
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
