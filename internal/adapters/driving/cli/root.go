// Package cli implements the shelfsync command line interface.
//
// Commands talk to the core through package-level service variables.
// They are wired lazily from local settings on first use; tests inject
// mocks directly.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marginote/shelfsync/internal/adapters/driven/config/file"
	"github.com/marginote/shelfsync/internal/adapters/driven/notion"
	"github.com/marginote/shelfsync/internal/adapters/driven/storage/sqlite"
	"github.com/marginote/shelfsync/internal/adapters/driven/transfer"
	"github.com/marginote/shelfsync/internal/adapters/driven/weread"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
	"github.com/marginote/shelfsync/internal/core/ports/driving"
	"github.com/marginote/shelfsync/internal/core/services"
	"github.com/marginote/shelfsync/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services used by the commands.
var (
	settingsStore driven.SettingsStore
	sourceClient  driven.SourceClient
	stateStore    driven.SyncStateStore
	configStore   driven.SyncConfigStore
	syncRunner    driving.SyncRunner

	wereadClient *weread.Client
	sqliteStore  *sqlite.Store
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shelfsync",
	Short: "Sync WeRead books, highlights and notes to Notion",
	Long: `shelfsync mirrors your WeRead library into a Notion database.

Each book becomes a page with its metadata, cover, highlights and
notes. Repeated runs are incremental: only books with new content are
touched.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	defer closeStores()
	return rootCmd.Execute()
}

func closeStores() {
	if sqliteStore != nil {
		sqliteStore.Close()
		sqliteStore = nil
	}
}

// initSettings opens the local settings store.
func initSettings() error {
	if settingsStore != nil {
		return nil
	}

	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	settingsStore = store
	return nil
}

// initSource builds the WeRead client from the stored session cookie.
func initSource() error {
	if sourceClient != nil {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	cookie := settingsStore.GetString(file.KeyWereadCookie)
	if cookie == "" {
		return fmt.Errorf("WeRead cookie not set, run: shelfsync config set %s '<cookie>'", file.KeyWereadCookie)
	}

	var opts []weread.Option
	if base := settingsStore.GetString(file.KeyWereadBaseURL); base != "" {
		opts = append(opts, weread.WithBaseURL(base))
	}

	wereadClient = weread.NewClient(cookie, opts...)
	sourceClient = wereadClient
	return nil
}

// initStateStore opens the local sync state database.
func initStateStore() error {
	if stateStore != nil {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	store, err := sqlite.NewStore(settingsStore.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	sqliteStore = store
	stateStore = store.SyncStateStore()
	return nil
}

// initConfigStore wires the Notion configuration store. Unlike the
// other services it is not optional here: the caller explicitly asked
// for the configuration database.
func initConfigStore() error {
	if configStore != nil {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	token := settingsStore.GetString(file.KeyNotionToken)
	if token == "" {
		return fmt.Errorf("Notion token not set, run: shelfsync config set %s <token>", file.KeyNotionToken)
	}
	configDB := settingsStore.GetString(file.KeyNotionConfigDB)
	if configDB == "" {
		return fmt.Errorf("config database not set, run: shelfsync config set %s <database-id>", file.KeyNotionConfigDB)
	}

	configStore = notion.NewConfigStore(token, configDB)
	return nil
}

// initRunner wires the full sync pipeline.
func initRunner() error {
	if syncRunner != nil {
		return nil
	}
	if err := initSource(); err != nil {
		return err
	}
	if err := initStateStore(); err != nil {
		return err
	}

	token := settingsStore.GetString(file.KeyNotionToken)
	if token == "" {
		return fmt.Errorf("Notion token not set, run: shelfsync config set %s <token>", file.KeyNotionToken)
	}
	bookDB := settingsStore.GetString(file.KeyNotionBookDB)
	if bookDB == "" {
		return fmt.Errorf("Notion book database not set, run: shelfsync config set %s <database-id>", file.KeyNotionBookDB)
	}

	dest := notion.NewClient(token, bookDB)
	syncer := transfer.NewSyncer(wereadClient, dest)
	reconciler := services.NewReconciler(sourceClient, dest, syncer, stateStore)

	// The configuration database is optional; without one the runner
	// uses the permissive default configuration.
	if configStore == nil {
		if configDB := settingsStore.GetString(file.KeyNotionConfigDB); configDB != "" {
			configStore = notion.NewConfigStore(token, configDB)
		}
	}

	runner := services.NewRunner(sourceClient, configStore, reconciler)
	if ms := settingsStore.GetInt(file.KeyPaceMillis); ms > 0 {
		runner.SetPace(time.Duration(ms) * time.Millisecond)
	}
	syncRunner = runner
	return nil
}
