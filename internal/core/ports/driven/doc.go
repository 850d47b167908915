// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceClient: Reads the library from the source service (WeRead)
//   - DestinationClient: Page existence check and metadata writes (Notion)
//   - ContentSyncer: Transfers highlights/notes to a destination page
//   - SyncStateStore: Per-book cursor persistence
//
// # Optional Interfaces
//
//   - SyncConfigStore: Remote sync configuration. When nil, the runner
//     synthesises the permissive default configuration in memory.
//   - SettingsStore: Local application settings (credentials, paths)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
