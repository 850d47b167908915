// Package file provides a TOML file-based implementation of the
// SettingsStore port. Local application settings (credentials, database
// IDs, pacing) are stored in ~/.shelfsync/config.toml with restricted
// permissions.
package file
