package notion

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

// Config database property names and row keys.
const (
	configPropKey   = "Key"
	configPropValue = "Value"

	configKeyStatuses  = "statuses"
	configKeyAuthors   = "authors"
	configKeyMode      = "mode"
	configKeyByChapter = "organize_by_chapter"
)

// listSeparator joins multi-value config rows.
const listSeparator = ","

// Ensure ConfigStore implements the interface.
var _ driven.SyncConfigStore = (*ConfigStore)(nil)

// ConfigStore reads the sync configuration from key/value rows in a
// Notion database.
type ConfigStore struct {
	api      *notionapi.Client
	configDB notionapi.DatabaseID
}

// NewConfigStore creates a config store over the given database.
func NewConfigStore(token, configDatabaseID string) *ConfigStore {
	return &ConfigStore{
		api:      notionapi.NewClient(notionapi.Token(token)),
		configDB: notionapi.DatabaseID(configDatabaseID),
	}
}

// Exists reports whether any configuration rows have been provisioned.
func (s *ConfigStore) Exists(ctx context.Context) (bool, error) {
	resp, err := s.api.Database.Query(ctx, s.configDB, &notionapi.DatabaseQueryRequest{
		PageSize: 1,
	})
	if err != nil {
		return false, fmt.Errorf("querying config database: %w", err)
	}
	return len(resp.Results) > 0, nil
}

// CreateDefault provisions the permissive default configuration rows.
func (s *ConfigStore) CreateDefault(ctx context.Context) error {
	for key, value := range encodeSyncConfig(domain.DefaultSyncConfig()) {
		_, err := s.api.Page.Create(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: s.configDB,
			},
			Properties: notionapi.Properties{
				configPropKey:   notionapi.TitleProperty{Title: richText(key)},
				configPropValue: notionapi.RichTextProperty{RichText: richText(value)},
			},
		})
		if err != nil {
			return fmt.Errorf("creating config row %q: %w", key, err)
		}
	}
	return nil
}

// Load reads all configuration rows and decodes them.
func (s *ConfigStore) Load(ctx context.Context) (domain.SyncConfig, error) {
	rows := make(map[string]string)

	var cursor notionapi.Cursor
	for {
		resp, err := s.api.Database.Query(ctx, s.configDB, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
		})
		if err != nil {
			return domain.SyncConfig{}, fmt.Errorf("querying config database: %w", err)
		}

		for _, page := range resp.Results {
			key, value := configRow(page)
			if key != "" {
				rows[key] = value
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return decodeSyncConfig(rows), nil
}

// configRow extracts the key/value pair from one config page.
func configRow(page notionapi.Page) (key, value string) {
	if title, ok := page.Properties[configPropKey].(*notionapi.TitleProperty); ok {
		key = strings.TrimSpace(plainText(title.Title))
	}
	if rich, ok := page.Properties[configPropValue].(*notionapi.RichTextProperty); ok {
		value = strings.TrimSpace(plainText(rich.RichText))
	}
	return key, value
}

// encodeSyncConfig flattens a config into storable key/value rows.
func encodeSyncConfig(cfg domain.SyncConfig) map[string]string {
	statuses := make([]string, 0, len(cfg.Statuses))
	for _, s := range cfg.Statuses {
		statuses = append(statuses, string(s))
	}

	return map[string]string{
		configKeyStatuses:  strings.Join(statuses, listSeparator),
		configKeyAuthors:   strings.Join(cfg.Authors, listSeparator),
		configKeyMode:      string(cfg.Mode),
		configKeyByChapter: strconv.FormatBool(cfg.OrganizeByChapter),
	}
}

// decodeSyncConfig rebuilds a config from key/value rows. Unknown keys
// are ignored; missing keys fall back to permissive defaults.
func decodeSyncConfig(rows map[string]string) domain.SyncConfig {
	cfg := domain.SyncConfig{
		Mode: domain.SyncModeIncremental,
	}

	for _, s := range splitList(rows[configKeyStatuses]) {
		cfg.Statuses = append(cfg.Statuses, domain.ReadStatus(s))
	}
	cfg.Authors = splitList(rows[configKeyAuthors])

	if mode := rows[configKeyMode]; mode == string(domain.SyncModeFull) {
		cfg.Mode = domain.SyncModeFull
	}

	cfg.OrganizeByChapter, _ = strconv.ParseBool(rows[configKeyByChapter])

	return cfg
}

// splitList splits a separator-joined row value, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
