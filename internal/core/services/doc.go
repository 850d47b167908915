// Package services implements the driving port interfaces.
// Services contain the core reconciliation logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external service dependencies.
package services
