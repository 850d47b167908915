// Package notion implements the DestinationClient and SyncConfigStore
// ports against the Notion API. Book pages live in one database; the
// run configuration lives as key/value rows in a second database so it
// can be edited alongside the synced pages.
package notion
