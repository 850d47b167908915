package notion

import (
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"

	"github.com/marginote/shelfsync/internal/core/domain"
)

func TestEncodeSyncConfig_Default(t *testing.T) {
	rows := encodeSyncConfig(domain.DefaultSyncConfig())

	assert.Equal(t, "", rows[configKeyStatuses])
	assert.Equal(t, "", rows[configKeyAuthors])
	assert.Equal(t, "incremental", rows[configKeyMode])
	assert.Equal(t, "false", rows[configKeyByChapter])
}

func TestDecodeSyncConfig(t *testing.T) {
	tests := []struct {
		name string
		rows map[string]string
		want domain.SyncConfig
	}{
		{
			name: "empty rows give permissive defaults",
			rows: map[string]string{},
			want: domain.SyncConfig{Mode: domain.SyncModeIncremental},
		},
		{
			name: "full set",
			rows: map[string]string{
				configKeyStatuses:  "读完, 在读",
				configKeyAuthors:   "余华",
				configKeyMode:      "full",
				configKeyByChapter: "true",
			},
			want: domain.SyncConfig{
				Statuses:          []domain.ReadStatus{domain.StatusFinished, domain.StatusReading},
				Authors:           []string{"余华"},
				Mode:              domain.SyncModeFull,
				OrganizeByChapter: true,
			},
		},
		{
			name: "unknown mode falls back to incremental",
			rows: map[string]string{configKeyMode: "sometimes"},
			want: domain.SyncConfig{Mode: domain.SyncModeIncremental},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeSyncConfig(tt.rows))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := domain.SyncConfig{
		Statuses:          []domain.ReadStatus{domain.StatusFinished},
		Authors:           []string{"余华", "兰小欢"},
		Mode:              domain.SyncModeFull,
		OrganizeByChapter: true,
	}

	assert.Equal(t, cfg, decodeSyncConfig(encodeSyncConfig(cfg)))
}

func TestConfigRow(t *testing.T) {
	page := notionapi.Page{
		Properties: notionapi.Properties{
			configPropKey: &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: " mode "}},
			},
			configPropValue: &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{PlainText: "full"}},
			},
		},
	}

	key, value := configRow(page)
	assert.Equal(t, "mode", key)
	assert.Equal(t, "full", value)
}

func TestConfigRow_MissingProperties(t *testing.T) {
	key, value := configRow(notionapi.Page{Properties: notionapi.Properties{}})
	assert.Empty(t, key)
	assert.Empty(t, value)
}
