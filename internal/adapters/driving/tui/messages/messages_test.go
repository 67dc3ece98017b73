package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

func TestQueryCompleted(t *testing.T) {
	t.Run("with results", func(t *testing.T) {
		results := []domain.QueryResult{
			{QueryID: domain.UnnamedQueryID, Divergence: 1, NumHits: 6},
			{QueryID: domain.UnnamedQueryID, Divergence: 1, NumHits: 2},
		}
		msg := QueryCompleted{Sequence: "ACG", Results: results}

		assert.Equal(t, "ACG", msg.Sequence)
		require.Len(t, msg.Results, 2)
		assert.Equal(t, 6, msg.Results[0].NumHits)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := QueryCompleted{Err: errors.New("query failed")}

		assert.Nil(t, msg.Results)
		assert.EqualError(t, msg.Err, "query failed")
	})
}

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewMenu, "menu"},
		{ViewQuery, "query"},
		{ViewDatabase, "database"},
		{ViewHelp, "help"},
		{ViewSettings, "settings"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewQuery, ViewDatabase, ViewHelp, ViewSettings}

	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestDatabaseLoaded(t *testing.T) {
	db := domain.NewSequenceDatabase([]domain.OtuEntry{{Marker: "m", Sequence: "ACG"}})
	msg := DatabaseLoaded{Database: db, Info: &domain.DatabaseInfo{Entries: 1}}

	assert.Equal(t, 1, msg.Database.Len())
	assert.Equal(t, 1, msg.Info.Entries)
	assert.NoError(t, msg.Err)
}

func TestSettingsMessages(t *testing.T) {
	s := domain.DefaultAppSettings()
	loaded := SettingsLoaded{Settings: &s}
	saved := SettingsSaved{Err: errors.New("disk full")}

	assert.Equal(t, domain.OutputFormatTSV, loaded.Settings.Query.Format)
	assert.EqualError(t, saved.Err, "disk full")
}
