package driven

import (
	"context"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// SyncConfigStore provides access to the declarative sync configuration.
//
// The reference implementation keeps the configuration in a Notion
// database so it can be edited where the synced pages live. Exists and
// CreateDefault form an unguarded check-then-create pair: the runner
// provisions a permissive default on first use.
type SyncConfigStore interface {
	// Exists reports whether a configuration has been provisioned.
	Exists(ctx context.Context) (bool, error)

	// CreateDefault provisions the permissive default configuration.
	CreateDefault(ctx context.Context) error

	// Load reads the current configuration.
	Load(ctx context.Context) (domain.SyncConfig, error)
}

// SettingsStore provides access to local application settings.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type SettingsStore interface {
	// GetString retrieves a string setting.
	// Returns empty string if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer setting.
	// Returns 0 if the key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean setting.
	// Returns false if the key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a setting value.
	Set(key string, value any) error

	// Save persists the current settings to storage.
	Save() error

	// Load reads settings from storage.
	Load() error

	// Path returns the settings file path.
	Path() string
}
