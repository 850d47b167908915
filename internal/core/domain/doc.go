// Package domain defines the core business entities for shelfsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: A library entry tracked across source and destination
//   - BookDetail: Supplementary bibliographic data from a detail lookup
//   - SyncConfig: Declarative scope and behaviour for a sync run
//   - SyncState: Per-book cursor record for incremental sync
//   - Outcome: Per-book reconciliation result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
